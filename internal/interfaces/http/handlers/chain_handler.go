package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "piaas.backend/internal/domain/errors"
	"piaas.backend/internal/interfaces/http/response"
	"piaas.backend/internal/usecases"
)

type ChainHandler struct {
	registry *usecases.ChainRegistry
}

func NewChainHandler(registry *usecases.ChainRegistry) *ChainHandler {
	return &ChainHandler{registry: registry}
}

// ListChains lists all supported chains
// GET /api/v1/chains
func (h *ChainHandler) ListChains(c *gin.Context) {
	chains := h.registry.SupportedChains()
	response.Success(c, http.StatusOK, gin.H{
		"chains": chains,
		"count":  len(chains),
	})
}

// GetChain gets one chain's configuration
// GET /api/v1/chains/:id
func (h *ChainHandler) GetChain(c *gin.Context) {
	chainID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid chain ID"))
		return
	}

	cfg, ok := h.registry.GetConfig(chainID)
	if !ok {
		response.Error(c, domainerrors.NotFound("chain not supported"))
		return
	}
	response.Success(c, http.StatusOK, cfg)
}
