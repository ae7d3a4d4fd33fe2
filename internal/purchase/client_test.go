package purchase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Divyeshhhh/steamy-sips/pkg/errors"
	"github.com/Divyeshhhh/steamy-sips/pkg/httpclient"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	logger := slog.New(slog.DiscardHandler)
	cb := httpclient.NewCircuitBreakerClient(httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("order-service"),
		httpclient.NewBreakerMetrics(prometheus.NewRegistry()), logger)
	return NewClient(cb, srv.URL, logger)
}

func TestClient_Purchasers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/purchasers", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("product_id"))
		fmt.Fprint(w, `{"data":{"client_ids":[3,5,5]}}`)
	})

	buyers, err := c.Purchasers(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{3: true, 5: true}, buyers)
}

func TestClient_Purchasers_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"NOT_FOUND","message":"product 12 not found"}}`)
	})

	_, err := c.Purchasers(context.Background(), 12)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_Purchasers_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Purchasers(context.Background(), 12)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestClient_Purchasers_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Purchasers(ctx, 12)
	assert.Error(t, err)
}
