package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
	"github.com/Divyeshhhh/steamy-sips/pkg/logger"
	"github.com/Divyeshhhh/steamy-sips/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]int{"id": 1}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":1}}`, rec.Body.String())
}

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, []string{"Coffee", "Tea"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["Coffee","Tea"]}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperrors.NotFound("product", 9), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped app error", fmt.Errorf("svc: %w", apperrors.InvalidInput("bad page")), http.StatusBadRequest, "INVALID_INPUT"},
		{"sentinel not found", fmt.Errorf("repo: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"sentinel invalid", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"upstream", apperrors.Upstream("order-service", errors.New("timeout")), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/products", nil)

			WriteError(rec, req, tt.err, slog.New(slog.DiscardHandler))

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(rec, req, apperrors.Internal(errors.New("password=hunter2")), slog.New(slog.DiscardHandler))

	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_ValidationFields(t *testing.T) {
	type query struct {
		Keyword string `query:"keyword" validate:"max=3"`
	}
	err := validator.Validate(query{Keyword: "espresso"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "keyword")
}

func TestWriteError_RequestIDAndScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	scoped := logger.NewWithWriter("test", "info", &buf)

	ctx := logger.WithCorrelationID(context.Background(), "corr-77")
	ctx = logger.NewContext(ctx, scoped)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, errors.New("db down"), slog.New(slog.DiscardHandler))

	resp := decode(t, rec)
	assert.Equal(t, "corr-77", resp.Error.RequestID)
	assert.Contains(t, buf.String(), "db down")
}

func TestParseID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseID(rec, "product id", "42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		rec := httptest.NewRecorder()
		_, ok := ParseID(rec, "product id", raw)
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_PARAMETER")
	}
}
