package handlers

import (
	"net/http"

	"lostfound/internal/logger"
	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries handler-level settings resolved in main.
type Config struct {
	TemplatesGlob string // e.g. "templates/*.html"
	UploadsDir    string // served under /uploads
}

// Handler wires the HTTP layer to services, sessions and logging.
type Handler struct {
	services *service.Service
	store    *sessions.CookieStore
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, store *sessions.CookieStore, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, store: store, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob(h.cfg.TemplatesGlob)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Uploaded images
	if h.cfg.UploadsDir != "" {
		router.Static("/uploads", h.cfg.UploadsDir)
	}

	// Everything below resolves the session identity first.
	router.Use(h.currentUser)

	router.GET("/", h.home)
	h.registerAccountRoutes(router)
	h.registerItemRoutes(router)

	return router
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.requireUser, h.logout)
	r.GET("/forgot_password", h.forgotPasswordForm)
	r.POST("/forgot_password", h.forgotPassword)
	r.GET("/reset_password/:token", h.resetPasswordForm)
	r.POST("/reset_password/:token", h.resetPassword)
}

func (h *Handler) registerItemRoutes(r *gin.Engine) {
	items := r.Group("/", h.requireUser)
	{
		items.GET("/dashboard", h.dashboard)
		items.GET("/add_item", h.addItemForm)
		items.POST("/add_item", h.addItem)
		items.GET("/item/:id", h.itemDetail)
		items.POST("/update_status/:id", h.updateStatus)
		items.POST("/delete_item/:id", h.deleteItem)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}
