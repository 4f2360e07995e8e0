package http

import (
	"bytes"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"botdash/internal/entities"
	"botdash/internal/usecases"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// listQuery reads ?q= and ?status=, defaulting status to "all".
func listQuery(c *gin.Context) (usecases.Query, bool) {
	q := SanitizeString(c.Query("q"))
	if !ValidateLength(q, 0, MaxQueryLength) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query too long"})
		return usecases.Query{}, false
	}
	status := c.Query("status")
	if status != "" && !ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return usecases.Query{}, false
	}
	return usecases.NewQuery(q, status), true
}

func recordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !ValidRecordID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return "", false
	}
	return id, true
}

// Conversations

func (h *Handler) ListConversations(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	list, err := h.dashboardUsecase.Conversations(c.Param("tenant"), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetConversation(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	detail, err := h.dashboardUsecase.Conversation(c.Param("tenant"), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Orders

func (h *Handler) ListOrders(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	list, err := h.dashboardUsecase.Orders(c.Param("tenant"), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	to := entities.PaymentStatus(req.Status)
	if !slices.Contains(entities.PaymentStatuses, to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status " + req.Status})
		return
	}
	order, err := h.dashboardUsecase.UpdateOrderStatus(c.Param("tenant"), id, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info().Str("tenant", c.Param("tenant")).Str("order", id).Str("status", req.Status).Msg("order status updated")
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ExportOrders(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.dashboardUsecase.ExportOrders(c.Param("tenant"), q, &buf); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+c.Param("tenant")+`-orders.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Viewings

func (h *Handler) ListViewings(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	list, err := h.dashboardUsecase.Viewings(c.Param("tenant"), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateViewingStatus(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	to := entities.ViewingStatus(req.Status)
	if !slices.Contains(entities.ViewingStatuses, to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown viewing status " + req.Status})
		return
	}
	viewing, err := h.dashboardUsecase.UpdateViewingStatus(c.Param("tenant"), id, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info().Str("tenant", c.Param("tenant")).Str("viewing", id).Str("status", req.Status).Msg("viewing status updated")
	c.JSON(http.StatusOK, viewing)
}

func (h *Handler) ExportViewings(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.dashboardUsecase.ExportViewings(c.Param("tenant"), q, &buf); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+c.Param("tenant")+`-viewings.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
