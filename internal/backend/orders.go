package backend

import (
	"context"
	"fmt"
	"net/http"

	"giftcommerce-admin/internal/logger"

	"go.uber.org/zap"
)

// FetchOrders returns every direct order the backend knows about.
func (c *Client) FetchOrders(ctx context.Context) ([]RawOrder, error) {
	var out struct {
		Orders []RawOrder `json:"orders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/orders/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

type statusUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) updateOrderStatus(ctx context.Context, path, orderID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("path", path),
	)

	var out statusUpdateResponse
	err := c.doJSON(ctx, http.MethodPut, path, map[string]string{"orderId": orderID}, &out)
	if err != nil {
		return err
	}

	if !out.Success {
		log.Warn("backend declined status update", zap.String("message", out.Message))
		return fmt.Errorf("status update declined: %s", out.Message)
	}

	log.Info("order status updated")
	return nil
}

// UpdateToPacking moves one order to the packing stage.
func (c *Client) UpdateToPacking(ctx context.Context, orderID string) error {
	return c.updateOrderStatus(ctx, "/orders/update-to-packing", orderID)
}

// UpdateToShipped moves one order to the shipped stage.
func (c *Client) UpdateToShipped(ctx context.Context, orderID string) error {
	return c.updateOrderStatus(ctx, "/orders/update-to-shipped", orderID)
}

// UpdateToDelivered moves one order to the delivered stage.
func (c *Client) UpdateToDelivered(ctx context.Context, orderID string) error {
	return c.updateOrderStatus(ctx, "/orders/update-to-delivered", orderID)
}
