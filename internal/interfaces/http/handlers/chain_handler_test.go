package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"piaas.backend/internal/usecases"
)

func newChainRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChainHandler(usecases.NewChainRegistry())
	r.GET("/chains", h.ListChains)
	r.GET("/chains/:id", h.GetChain)
	return r
}

func TestChainHandler_ListChains(t *testing.T) {
	r := newChainRouter()

	req := httptest.NewRequest(http.MethodGet, "/chains", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Count  int `json:"count"`
		Chains []struct {
			ChainID int64  `json:"chainId"`
			Name    string `json:"name"`
		} `json:"chains"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Count != 6 || len(body.Chains) != 6 {
		t.Fatalf("expected 6 chains, got count=%d len=%d", body.Count, len(body.Chains))
	}
}

func TestChainHandler_GetChain(t *testing.T) {
	r := newChainRouter()

	req := httptest.NewRequest(http.MethodGet, "/chains/8453", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var cfg struct {
		Name     string `json:"name"`
		GasLimit uint64 `json:"gasLimit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.Name != "Base" || cfg.GasLimit != 250000 {
		t.Fatalf("unexpected chain config: %+v", cfg)
	}
}

func TestChainHandler_GetChain_Errors(t *testing.T) {
	r := newChainRouter()

	tests := []struct {
		path string
		want int
	}{
		{"/chains/abc", http.StatusBadRequest},
		{"/chains/999999", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tt.path, tt.want, w.Code, w.Body.String())
		}
	}
}
