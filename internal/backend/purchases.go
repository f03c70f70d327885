package backend

import (
	"context"
	"net/http"
)

// FetchCollaborativePurchases returns every collaborative purchase, in the
// backend's own order. Status filtering happens upstream.
func (c *Client) FetchCollaborativePurchases(ctx context.Context) ([]RawPurchase, error) {
	var out struct {
		CollaborativePurchases []RawPurchase `json:"collaborativePurchases"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/collaborative-purchases/all", nil, &out); err != nil {
		return nil, err
	}
	return out.CollaborativePurchases, nil
}
