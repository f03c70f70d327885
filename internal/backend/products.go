package backend

import (
	"context"
	"fmt"
	"net/http"

	"giftcommerce-admin/internal/logger"

	"go.uber.org/zap"
)

// GetProduct resolves full product detail by id, accepting both the
// enveloped and the bare response shape.
func (c *Client) GetProduct(ctx context.Context, productID string) (*RawProduct, error) {
	var out struct {
		Product *RawProduct `json:"product"`
		RawProduct
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+productID, nil, &out); err != nil {
		return nil, err
	}
	if out.Product != nil {
		return out.Product, nil
	}
	p := out.RawProduct
	return &p, nil
}

// ReduceStock decrements stock for the given items. Shortfalls come back as
// an *InsufficientStockError with per-product detail.
func (c *Client) ReduceStock(ctx context.Context, items []StockItem) error {
	log := logger.FromCtx(ctx).With(zap.Int("item_count", len(items)))

	var out statusUpdateResponse
	err := c.doJSON(ctx, http.MethodPut, "/products/reduce-stock",
		map[string]interface{}{"items": items}, &out)
	if err != nil {
		return err
	}

	if !out.Success {
		log.Warn("stock decrement declined", zap.String("message", out.Message))
		return fmt.Errorf("stock decrement declined: %s", out.Message)
	}

	log.Info("product stock reduced")
	return nil
}
