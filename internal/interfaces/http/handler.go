package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"botdash/internal/interfaces"
	"botdash/internal/usecases"
)

type Handler struct {
	dashboardUsecase *usecases.DashboardUsecase
	log              zerolog.Logger
}

func NewHandler(dashboard *usecases.DashboardUsecase, log zerolog.Logger) *Handler {
	return &Handler{
		dashboardUsecase: dashboard,
		log:              log,
	}
}

// RouterOptions carries the transport knobs SetupRoutes applies.
type RouterOptions struct {
	MaxBodyBytes int64
}

func SetupRoutes(r *gin.Engine, dashboard *usecases.DashboardUsecase, middleware *Middleware, log zerolog.Logger, opts RouterOptions) {
	h := NewHandler(dashboard, log)

	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(opts.MaxBodyBytes))
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitPerClient())
	{
		api.GET("/tenants", h.ListTenants)

		tenant := api.Group("/tenants/:tenant")
		tenant.Use(h.requireTenantSlug())
		{
			tenant.GET("", h.GetTenant)
			tenant.GET("/dashboard", h.GetDashboard)
			tenant.GET("/analytics", h.GetAnalytics)

			// Conversations
			tenant.GET("/conversations", h.ListConversations)
			tenant.GET("/conversations/:id", h.GetConversation)

			// Orders (grocery)
			tenant.GET("/orders", h.ListOrders)
			tenant.GET("/orders/export", h.ExportOrders)
			tenant.PUT("/orders/:id/status", h.UpdateOrderStatus)

			// Viewings (property)
			tenant.GET("/viewings", h.ListViewings)
			tenant.GET("/viewings/export", h.ExportViewings)
			tenant.PUT("/viewings/:id/status", h.UpdateViewingStatus)

			// Settings
			tenant.GET("/settings", h.GetSettings)
			tenant.PUT("/settings", h.UpdateSettings)
			tenant.GET("/settings/qr.png", h.GetChatQR)
		}
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"tenants": len(h.dashboardUsecase.Tenants()),
	})
}

func (h *Handler) ListTenants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tenants": h.dashboardUsecase.Tenants()})
}

func (h *Handler) GetTenant(c *gin.Context) {
	view, err := h.dashboardUsecase.Tenant(c.Param("tenant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// requireTenantSlug rejects malformed tenant slugs before any lookup.
func (h *Handler) requireTenantSlug() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ValidSlug(c.Param("tenant")) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid tenant slug"})
			return
		}
		c.Next()
	}
}

// respondError maps usecase errors onto status codes. Unknown errors are
// logged and reported as 500 without detail.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		transition *usecases.TransitionError
		invalid    validator.ValidationErrors
	)
	switch {
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, interfaces.ErrNotFound), errors.Is(err, usecases.ErrUnsupported):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecases.ErrInvalidInput), errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
