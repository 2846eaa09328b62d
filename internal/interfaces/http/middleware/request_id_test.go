package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		if id, ok := c.Request.Context().Value("request_id").(string); ok {
			seen = id
		}
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequestIDMiddleware_GeneratesAndEchoes(t *testing.T) {
	r, seen := newRequestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected generated request id on response")
	}
	if *seen != id {
		t.Fatalf("context id %q does not match response header %q", *seen, id)
	}
}

func TestRequestIDMiddleware_HonorsCallerID(t *testing.T) {
	r, seen := newRequestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "caller-id-1")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-id-1" {
		t.Fatalf("expected caller id echoed, got %q", got)
	}
	if *seen != "caller-id-1" {
		t.Fatalf("expected caller id in context, got %q", *seen)
	}
}
