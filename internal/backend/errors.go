package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-success backend response with its body kept verbatim.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, string(e.Body))
}

// InsufficientStockItem reports one shortfall from the stock-decrement
// endpoint, itemized as the backend states it.
type InsufficientStockItem struct {
	ProductName       string `json:"productName"`
	RequestedQuantity int    `json:"requestedQuantity"`
	AvailableStock    int    `json:"availableStock"`
}

type InsufficientStockError struct {
	Items []InsufficientStockItem
}

func (e *InsufficientStockError) Error() string {
	lines := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		lines = append(lines, fmt.Sprintf("%s: requested %d, available %d",
			it.ProductName, it.RequestedQuantity, it.AvailableStock))
	}
	return "insufficient stock for: " + strings.Join(lines, "; ")
}

// errorEnvelope mirrors the backend's failure body.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		InsufficientStockItems []InsufficientStockItem `json:"insufficientStockItems"`
	} `json:"data"`
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// newAPIError inspects a failure body and returns the most specific error
// it can: an itemized stock shortfall when the backend reports one,
// otherwise a plain APIError carrying the backend's message.
func newAPIError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Data.InsufficientStockItems) > 0 {
			return &InsufficientStockError{Items: env.Data.InsufficientStockItems}
		}
		if env.Message != "" {
			return &APIError{Status: status, Message: env.Message, Body: body}
		}
		if len(env.Errors) > 0 {
			msgs := make([]string, 0, len(env.Errors))
			for _, e := range env.Errors {
				msgs = append(msgs, e.Msg)
			}
			return &APIError{Status: status, Message: strings.Join(msgs, "; "), Body: body}
		}
	}
	return &APIError{Status: status, Body: body}
}
