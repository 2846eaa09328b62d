package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"piaas.backend/internal/domain/entities"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/interfaces/http/response"
	"piaas.backend/internal/usecases"
)

type SubscriptionHandler struct {
	usecase *usecases.SubscriptionUsecase
}

func NewSubscriptionHandler(usecase *usecases.SubscriptionUsecase) *SubscriptionHandler {
	return &SubscriptionHandler{usecase: usecase}
}

type CreateSubscriptionRequest struct {
	VendorID        string `json:"vendorId" binding:"required"`
	ProductID       string `json:"productId" binding:"required"`
	PlanID          string `json:"planId" binding:"required"`
	CustomerEmail   string `json:"customerEmail"`
	SrcChainID      int64  `json:"srcChainId" binding:"required"`
	DestChainID     int64  `json:"destChainId" binding:"required"`
	BillingInterval string `json:"billingInterval" binding:"required"`
	AmountUSDCMinor int64  `json:"amountUsdcMinor"`
}

// CreateSubscription creates a recurring billing agreement
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vendor ID"))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product ID"))
		return
	}

	sub, err := h.usecase.CreateSubscription(c.Request.Context(), entities.CreateSubscriptionInput{
		VendorID:        vendorID,
		ProductID:       productID,
		PlanID:          req.PlanID,
		CustomerEmail:   req.CustomerEmail,
		SrcChainID:      req.SrcChainID,
		DestChainID:     req.DestChainID,
		BillingInterval: entities.BillingInterval(req.BillingInterval),
		AmountUSDCMinor: req.AmountUSDCMinor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// GetSubscription gets a subscription by its public identifier
// GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.usecase.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// RenewSubscription creates the next cycle's payment intent
// POST /api/v1/subscriptions/:id/renew
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	result, err := h.usecase.RenewSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// CancelSubscription cancels a subscription
// POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	sub, err := h.usecase.CancelSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}
