package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/interfaces/http/response"
	"piaas.backend/internal/usecases"
)

type WebhookHandler struct {
	delivery *usecases.WebhookDeliveryUsecase
}

func NewWebhookHandler(delivery *usecases.WebhookDeliveryUsecase) *WebhookHandler {
	return &WebhookHandler{delivery: delivery}
}

// ListEvents lists a vendor's webhook events newest-first
// GET /api/v1/webhooks/events/:vendorId
func (h *WebhookHandler) ListEvents(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendorId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vendor ID"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	events, err := h.delivery.ListEvents(c.Request.Context(), vendorID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// ProcessPending sweeps pending webhook events due for delivery
// POST /api/v1/webhooks/process
func (h *WebhookHandler) ProcessPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	processed, err := h.delivery.ProcessDue(c.Request.Context(), time.Now(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"processed": processed})
}

// Cleanup deletes webhook events older than the given number of days
// DELETE /api/v1/webhooks/cleanup
func (h *WebhookHandler) Cleanup(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		response.Error(c, domainerrors.BadRequest("invalid days parameter"))
		return
	}

	deleted, err := h.delivery.Cleanup(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}
