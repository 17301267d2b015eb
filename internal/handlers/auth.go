package handlers

import (
	"errors"
	"net/http"

	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

// Flash categories, matching the template styling hooks.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.services.Register(c.Request.Context(), name, email, password)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		h.flash(c, flashDanger, "Email already registered!")
		c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, service.ErrInvalidInput):
		h.flash(c, flashDanger, "All fields are required.")
		c.Redirect(http.StatusFound, "/register")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("register_failed", "err", err, "email", email)
		}
		h.flash(c, flashDanger, "Registration failed, please try again.")
		c.Redirect(http.StatusFound, "/register")
	default:
		h.flash(c, flashSuccess, "Registration successful! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	id, err := h.services.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) && h.log != nil {
			h.log.Errorw("login_failed", "err", err, "email", email)
		}
		h.flash(c, flashDanger, "Invalid credentials")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.setSessionUser(c, id); err != nil {
		if h.log != nil {
			h.log.Errorw("session_establish_failed", "err", err, "user_id", id)
		}
		h.flash(c, flashDanger, "Could not start a session, please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) forgotPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot_password.html", nil)
}

func (h *Handler) forgotPassword(c *gin.Context) {
	email := c.PostForm("email")

	token, err := h.services.IssueResetToken(c.Request.Context(), email)
	switch {
	case errors.Is(err, service.ErrEmailNotFound):
		h.flash(c, flashDanger, "Email not found!")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("reset_token_issue_failed", "err", err, "email", email)
		}
		h.flash(c, flashDanger, "Could not generate a reset link, please try again.")
	default:
		// Out-of-band delivery: the link goes to the log, never the page.
		if h.log != nil {
			h.log.Infow("password_reset_token_issued", "email", email, "link", "/reset_password/"+token)
		}
		h.flash(c, flashInfo, "Password reset link has been generated (check server log).")
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) resetPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "reset_password.html", gin.H{"Token": c.Param("token")})
}

func (h *Handler) resetPassword(c *gin.Context) {
	token := c.Param("token")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	err := h.services.ConsumeResetToken(c.Request.Context(), token, password, confirm)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		h.flash(c, flashDanger, "Passwords do not match!")
		c.Redirect(http.StatusFound, "/reset_password/"+token)
	case errors.Is(err, service.ErrTokenExpired), errors.Is(err, service.ErrTokenInvalid):
		h.flash(c, flashDanger, "Invalid or expired reset link!")
		c.Redirect(http.StatusFound, "/login")
	case err != nil:
		if h.log != nil {
			h.log.Errorw("reset_password_failed", "err", err)
		}
		h.flash(c, flashDanger, "Password reset failed, please try again.")
		c.Redirect(http.StatusFound, "/login")
	default:
		h.flash(c, flashSuccess, "Password reset successful! Please log in.")
		c.Redirect(http.StatusFound, "/login")
	}
}
