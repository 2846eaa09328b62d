package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/interfaces/http/response"
	"piaas.backend/internal/usecases"
)

type RouterHandler struct {
	usecase *usecases.RouterUsecase
}

func NewRouterHandler(usecase *usecases.RouterUsecase) *RouterHandler {
	return &RouterHandler{usecase: usecase}
}

type EstimateRequest struct {
	SrcChainID      int64 `json:"srcChainId" binding:"required"`
	DestChainID     int64 `json:"destChainId" binding:"required"`
	AmountUSDCMinor int64 `json:"amountUsdcMinor" binding:"required"`
}

// Estimate returns the fee and gas breakdown for a prospective payment
// POST /api/v1/router/estimate
func (h *RouterHandler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	est, err := h.usecase.Estimate(req.SrcChainID, req.DestChainID, req.AmountUSDCMinor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, est)
}
