package handlers

import (
	"net/http"

	"lostfound/internal/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

// currentUser resolves the session identity, if any, into the request
// context. A session pointing at a deleted user resolves to anonymous.
func (h *Handler) currentUser(c *gin.Context) {
	s := h.session(c)
	if id, ok := s.Values[sessionUserKey].(int); ok {
		u, err := h.services.UserByID(c.Request.Context(), id)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("session_user_lookup_failed", "err", err, "user_id", id)
			}
		} else if u != nil {
			c.Set(ctxUserKey, u)
		}
	}
	c.Next()
}

// requireUser redirects unauthenticated requests to the login page.
func (h *Handler) requireUser(c *gin.Context) {
	if userFrom(c) == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

// userFrom returns the resolved user for this request, or nil if anonymous.
func userFrom(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
