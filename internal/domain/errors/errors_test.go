package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	domainerrors "piaas.backend/internal/domain/errors"
)

func TestAppError_MessageWithoutWrapped(t *testing.T) {
	e := domainerrors.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "bad amount", nil)
	assert.Equal(t, "bad amount", e.Error())
}

func TestAppError_WrappedErrorWins(t *testing.T) {
	inner := stderrors.New("boom")
	e := domainerrors.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", inner)
	assert.Equal(t, "boom", e.Error())
}

func TestConstructors_StatusAndSentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      *domainerrors.AppError
		status   int
		sentinel error
	}{
		{"not found", domainerrors.NotFound("intent missing"), http.StatusNotFound, domainerrors.ErrNotFound},
		{"bad request", domainerrors.BadRequest("amount must be positive"), http.StatusBadRequest, domainerrors.ErrInvalidInput},
		{"conflict", domainerrors.Conflict("illegal transition"), http.StatusConflict, domainerrors.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}

func TestInternalError_OpaqueMessage(t *testing.T) {
	e := domainerrors.InternalError(stderrors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "internal server error", e.Message)
}
