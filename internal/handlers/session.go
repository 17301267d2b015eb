package handlers

import (
	"encoding/gob"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName    = "lostfound_session"
	sessionUserKey = "user_id"
)

// Flash is a one-shot notice rendered on the next page view.
type Flash struct {
	Category string // success | danger | info
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// session returns the request's session, a fresh one if the cookie is
// missing or no longer decodes.
func (h *Handler) session(c *gin.Context) *sessions.Session {
	s, _ := h.store.Get(c.Request, sessionName)
	return s
}

func (h *Handler) setSessionUser(c *gin.Context, userID int) error {
	s := h.session(c)
	s.Values[sessionUserKey] = userID
	return s.Save(c.Request, c.Writer)
}

func (h *Handler) clearSession(c *gin.Context) {
	s := h.session(c)
	delete(s.Values, sessionUserKey)
	s.Options.MaxAge = -1
	_ = s.Save(c.Request, c.Writer)
}

// flash queues a notice for the next rendered page.
func (h *Handler) flash(c *gin.Context, category, message string) {
	s := h.session(c)
	s.AddFlash(Flash{Category: category, Message: message})
	if err := s.Save(c.Request, c.Writer); err != nil && h.log != nil {
		h.log.Errorw("session_save_failed", "err", err)
	}
}

// takeFlashes pops all queued notices, clearing them from the session.
func (h *Handler) takeFlashes(c *gin.Context) []Flash {
	s := h.session(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save(c.Request, c.Writer)
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}

// render wraps c.HTML, attaching the current user and pending flashes.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = userFrom(c)
	data["Flashes"] = h.takeFlashes(c)
	c.HTML(status, name, data)
}
