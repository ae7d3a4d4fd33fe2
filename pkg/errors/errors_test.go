package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	withInner := &AppError{Code: "INTERNAL_ERROR", Message: "query failed", Err: fmt.Errorf("conn reset")}
	assert.Equal(t, "INTERNAL_ERROR: query failed: conn reset", withInner.Error())

	bare := &AppError{Code: "NOT_FOUND", Message: "product 3 not found"}
	assert.Equal(t, "NOT_FOUND: product 3 not found", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("product", int64(12)), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"invalid input", InvalidInput("bad sort"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"invalid fields", InvalidFields(map[string]string{"page": "must be positive"}), "VALIDATION_ERROR", http.StatusBadRequest, ErrInvalidInput},
		{"conflict", Conflict("duplicate"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"unavailable", Unavailable("orders down"), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrUnavailable},
		{"upstream", Upstream("order-service", errors.New("boom")), "UPSTREAM_ERROR", http.StatusBadGateway, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "product 12 not found", NotFound("product", 12).Message)
}

func TestUpstream_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("order-service", cause)
	assert.ErrorIs(t, err, cause)
}

func TestInternal(t *testing.T) {
	inner := errors.New("pool closed")
	err := Internal(inner)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, inner)
	assert.NotContains(t, err.Message, "pool closed")
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("get product: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("parse: %w", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("save: %w", ErrConflict), http.StatusConflict},
		{fmt.Errorf("ping: %w", ErrUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("call: %w", ErrUpstream), http.StatusBadGateway},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestHTTPStatus_AppErrorThroughWrap(t *testing.T) {
	err := fmt.Errorf("service: %w", NotFound("product", 1))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}
