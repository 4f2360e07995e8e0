package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"botdash/internal/entities"
)

// GetDashboard returns metric cards, the activity feed and the main chart
func (h *Handler) GetDashboard(c *gin.Context) {
	view, err := h.dashboardUsecase.Dashboard(c.Param("tenant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	view, err := h.dashboardUsecase.Analytics(c.Param("tenant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Settings
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.dashboardUsecase.Settings(c.Param("tenant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var payload entities.Settings
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	payload.BusinessName = SanitizeString(payload.BusinessName)
	payload.Phone = SanitizeString(payload.Phone)
	payload.Location = SanitizeString(payload.Location)
	payload.Email = SanitizeString(payload.Email)

	saved, err := h.dashboardUsecase.UpdateSettings(c.Param("tenant"), payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info().Str("tenant", c.Param("tenant")).Msg("settings updated")
	c.JSON(http.StatusOK, saved)
}

// GetChatQR renders the business number's click-to-chat link as a PNG
func (h *Handler) GetChatQR(c *gin.Context) {
	link, err := h.dashboardUsecase.ChatLink(c.Param("tenant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}
