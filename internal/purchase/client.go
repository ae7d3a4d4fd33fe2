// Package purchase resolves which clients bought a product, used to mark
// reviews as verified.
package purchase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/Divyeshhhh/steamy-sips/pkg/httpclient"
)

const serviceName = "order-service"

// Client queries the order service for purchasers of a product.
type Client struct {
	doer    httpclient.Doer
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a client rooted at baseURL. The doer is normally a
// *httpclient.CircuitBreakerClient.
func NewClient(doer httpclient.Doer, baseURL string, logger *slog.Logger) *Client {
	return &Client{doer: doer, baseURL: baseURL, logger: logger}
}

type purchasersResponse struct {
	Data struct {
		ClientIDs []int64 `json:"client_ids"`
	} `json:"data"`
}

// Purchasers returns the set of client ids that ordered productID.
func (c *Client) Purchasers(ctx context.Context, productID int64) (map[int64]bool, error) {
	u := c.baseURL + "/api/v1/orders/purchasers?" + url.Values{
		"product_id": []string{strconv.FormatInt(productID, 10)},
	}.Encode()

	var resp purchasersResponse
	if err := httpclient.GetJSON(ctx, c.doer, u, serviceName, &resp); err != nil {
		return nil, fmt.Errorf("fetch purchasers of product %d: %w", productID, err)
	}

	buyers := make(map[int64]bool, len(resp.Data.ClientIDs))
	for _, id := range resp.Data.ClientIDs {
		buyers[id] = true
	}
	return buyers, nil
}
