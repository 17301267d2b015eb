package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

// isAJAX reports whether the client asked for a machine-readable response.
func isAJAX(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := userFrom(c)

	mine, err := h.services.ListMine(ctx, user.ID)
	if err != nil {
		h.renderServerError(c, "dashboard_list_mine_failed", err)
		return
	}
	recent, err := h.services.ListRecent(ctx)
	if err != nil {
		h.renderServerError(c, "dashboard_list_recent_failed", err)
		return
	}
	stats, err := h.services.Stats(ctx, user.ID)
	if err != nil {
		h.renderServerError(c, "dashboard_stats_failed", err)
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Items":    mine,
		"AllItems": recent,
		"Stats":    stats,
	})
}

func (h *Handler) addItemForm(c *gin.Context) {
	h.render(c, http.StatusOK, "post_item.html", nil)
}

func (h *Handler) addItem(c *gin.Context) {
	params := service.CreateItemParams{
		Title:       c.PostForm("title"),
		Type:        c.PostForm("type"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		OwnerID:     userFrom(c).ID,
	}
	// Image is optional; any other multipart error surfaces on Save.
	if fh, err := c.FormFile("image"); err == nil {
		params.Image = fh
	}

	_, err := h.services.Create(c.Request.Context(), params)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.flash(c, flashDanger, "Title, type, location and description are required.")
		c.Redirect(http.StatusFound, "/add_item")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("add_item_failed", "err", err, "user_id", params.OwnerID)
		}
		h.flash(c, flashDanger, "Could not save the item, please try again.")
		c.Redirect(http.StatusFound, "/add_item")
	default:
		h.flash(c, flashSuccess, "Item reported successfully.")
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

func (h *Handler) itemDetail(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	item, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		h.renderServerError(c, "item_detail_failed", err)
		return
	}
	h.render(c, http.StatusOK, "item_detail.html", gin.H{"Item": item})
}

// @Summary      Toggle item resolution
// @Description  Owner-only. With "X-Requested-With: XMLHttpRequest" returns JSON, otherwise redirects with a notice.
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "Item ID"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /update_status/{id} [post]
func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		h.statusNotFound(c)
		return
	}
	requester := userFrom(c)

	resolved, err := h.services.ToggleResolved(c.Request.Context(), id, requester.ID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.statusNotFound(c)
	case errors.Is(err, service.ErrForbidden):
		if isAJAX(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
			return
		}
		h.flash(c, flashDanger, "You are not allowed to update this item.")
		c.Redirect(http.StatusFound, "/dashboard")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("update_status_failed", "err", err, "item_id", id)
		}
		if isAJAX(c) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
			return
		}
		h.flash(c, flashDanger, "Could not update the item status.")
		c.Redirect(http.StatusFound, "/dashboard")
	default:
		if isAJAX(c) {
			c.JSON(http.StatusOK, gin.H{"is_resolved": resolved})
			return
		}
		h.flash(c, flashSuccess, "Item status updated.")
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	requester := userFrom(c)

	err := h.services.Delete(c.Request.Context(), id, requester.ID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "404 page not found")
	case errors.Is(err, service.ErrForbidden):
		h.flash(c, flashDanger, "You are not allowed to delete this item.")
		c.Redirect(http.StatusFound, "/dashboard")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("delete_item_failed", "err", err, "item_id", id)
		}
		h.flash(c, flashDanger, "Could not delete the item.")
		c.Redirect(http.StatusFound, "/dashboard")
	default:
		h.flash(c, flashSuccess, "Item deleted successfully.")
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

func (h *Handler) statusNotFound(c *gin.Context) {
	if isAJAX(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}

// renderServerError logs the cause and redirects home with a generic notice.
func (h *Handler) renderServerError(c *gin.Context, logKey string, err error) {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	h.flash(c, flashDanger, "Something went wrong, please try again.")
	c.Redirect(http.StatusFound, "/login")
}
