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

type PaymentIntentHandler struct {
	usecase *usecases.PaymentIntentUsecase
}

func NewPaymentIntentHandler(usecase *usecases.PaymentIntentUsecase) *PaymentIntentHandler {
	return &PaymentIntentHandler{usecase: usecase}
}

type CreatePaymentIntentRequest struct {
	VendorID        string `json:"vendorId" binding:"required"`
	ProductID       string `json:"productId" binding:"required"`
	SrcChainID      int64  `json:"srcChainId" binding:"required"`
	DestChainID     int64  `json:"destChainId" binding:"required"`
	AmountUSDCMinor *int64 `json:"amountUsdcMinor"`
	CustomerEmail   string `json:"customerEmail"`
}

type SubmitTransactionRequest struct {
	TxHash string `json:"txHash" binding:"required"`
}

type CompleteTransactionRequest struct {
	TxHash        string `json:"txHash" binding:"required"`
	Status        string `json:"status" binding:"required"`
	SrcChainID    int64  `json:"srcChainId"`
	SourceAddress string `json:"sourceAddress"`
}

// CreatePaymentIntent creates a payment intent and its router payload
// POST /api/v1/payment-intents
func (h *PaymentIntentHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
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

	result, err := h.usecase.CreateIntent(c.Request.Context(), entities.CreateIntentInput{
		VendorID:        vendorID,
		ProductID:       productID,
		SrcChainID:      req.SrcChainID,
		DestChainID:     req.DestChainID,
		AmountUSDCMinor: req.AmountUSDCMinor,
		CustomerEmail:   req.CustomerEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetPaymentIntent gets a payment intent by its public identifier
// GET /api/v1/payment-intents/:id
func (h *PaymentIntentHandler) GetPaymentIntent(c *gin.Context) {
	intent, err := h.usecase.GetIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

// SubmitTransaction records the user's source chain transaction hash
// POST /api/v1/payment-intents/:id/submit
func (h *PaymentIntentHandler) SubmitTransaction(c *gin.Context) {
	var req SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	intent, err := h.usecase.ReportSourceTx(c.Request.Context(), c.Param("id"), req.TxHash)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}

// CompleteTransaction records the settlement outcome
// POST /api/v1/payment-intents/:id/complete
func (h *PaymentIntentHandler) CompleteTransaction(c *gin.Context) {
	var req CompleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	intent, err := h.usecase.CompleteTransaction(c.Request.Context(), entities.CompleteIntentInput{
		IntentID:      c.Param("id"),
		TxHash:        req.TxHash,
		Outcome:       entities.IntentStatus(req.Status),
		SrcChainID:    req.SrcChainID,
		SourceAddress: req.SourceAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, intent)
}
