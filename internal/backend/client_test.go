package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/all", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"orders":[{"_id":"o1","status":"Processing","total":42.5},{"_id":"o2","status":"Accepted"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	orders, err := c.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, 42.5, orders[0].Total)
}

func TestFetchCollaborativePurchases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collaborative-purchases/all", r.URL.Path)
		w.Write([]byte(`{"collaborativePurchases":[{"_id":"c1","status":"Processing","isMultiProduct":true,"products":[{"product":"p1","productName":"Gift","quantity":2}]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	purchases, err := c.FetchCollaborativePurchases(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.True(t, purchases[0].IsMultiProduct)
	require.Len(t, purchases[0].Products, 1)
	assert.Equal(t, "Gift", purchases[0].Products[0].ProductName)
}

func TestGetUser(t *testing.T) {
	t.Run("EnvelopedShape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/u1", r.URL.Path)
			w.Write([]byte(`{"user":{"_id":"u1","firstName":"Jane","lastName":"Doe"}}`))
		}))
		defer srv.Close()

		u, err := NewClient(srv.URL, "").GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Jane", u.FirstName)
	})

	t.Run("BareShape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"_id":"u1","firstName":"Sam","lastName":"Smith"}`))
		}))
		defer srv.Close()

		u, err := NewClient(srv.URL, "").GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "Sam", u.FirstName)
	})
}

func TestGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		w.Write([]byte(`{"product":{"_id":"p1","name":"Teddy Bear","sku":"TB-01","categories":["Toys"],"price":19.99,"stock":4}}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, "").GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Teddy Bear", p.Name)
	assert.Equal(t, []string{"Toys"}, p.Categories)
	assert.Equal(t, 19.99, p.Price)
}

func TestUpdateToPacking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/orders/update-to-packing", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "o1", body["orderId"])

			w.Write([]byte(`{"success":true,"message":"ok"}`))
		}))
		defer srv.Close()

		assert.NoError(t, NewClient(srv.URL, "").UpdateToPacking(context.Background(), "o1"))
	})

	t.Run("DeclinedWithSuccessFalse", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"order already packed"}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").UpdateToPacking(context.Background(), "o1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order already packed")
	})

	t.Run("HTTPErrorCarriesBackendMessage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"invalid order id"}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").UpdateToPacking(context.Background(), "o1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "invalid order id", apiErr.Message)
	})
}

func TestReduceStock(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/reduce-stock", r.URL.Path)

			var body struct {
				Items []StockItem `json:"items"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Items, 1)
			assert.Equal(t, "p1", body.Items[0].ProductID)
			assert.Equal(t, 3, body.Items[0].Quantity)

			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").ReduceStock(context.Background(), []StockItem{{ProductID: "p1", Quantity: 3}})
		assert.NoError(t, err)
	})

	t.Run("InsufficientStockItemized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"insufficient stock","data":{"insufficientStockItems":[{"productName":"Teddy Bear","requestedQuantity":5,"availableStock":2}]}}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").ReduceStock(context.Background(), []StockItem{{ProductID: "p1", Quantity: 5}})
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Len(t, stockErr.Items, 1)
		assert.Equal(t, "Teddy Bear", stockErr.Items[0].ProductName)
		assert.Equal(t, 5, stockErr.Items[0].RequestedQuantity)
		assert.Equal(t, 2, stockErr.Items[0].AvailableStock)
		assert.Contains(t, err.Error(), "requested 5, available 2")
	})
}

func TestNewAPIError(t *testing.T) {
	t.Run("ValidatorErrorsJoined", func(t *testing.T) {
		err := newAPIError(422, []byte(`{"errors":[{"msg":"orderId is required"},{"msg":"status is invalid"}]}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "orderId is required; status is invalid", apiErr.Message)
	})

	t.Run("NonJSONBodyKeptVerbatim", func(t *testing.T) {
		err := newAPIError(502, []byte("Bad Gateway"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Contains(t, apiErr.Error(), "Bad Gateway")
	})
}
