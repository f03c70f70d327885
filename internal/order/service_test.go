package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"giftcommerce-admin/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) FetchOrders(ctx context.Context) ([]backend.RawOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.RawOrder), args.Error(1)
}

func (m *MockBackend) FetchCollaborativePurchases(ctx context.Context) ([]backend.RawPurchase, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.RawPurchase), args.Error(1)
}

func (m *MockBackend) GetUser(ctx context.Context, userID string) (*backend.RawUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RawUser), args.Error(1)
}

func (m *MockBackend) GetProduct(ctx context.Context, productID string) (*backend.RawProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.RawProduct), args.Error(1)
}

func (m *MockBackend) UpdateToPacking(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockBackend) UpdateToShipped(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockBackend) UpdateToDelivered(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockBackend) ReduceStock(ctx context.Context, items []backend.StockItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func newTestService(api *MockBackend) (*Service, *Store) {
	store := NewStore()
	return NewService(api, store, nil), store
}

func TestReconcile(t *testing.T) {
	t.Run("DirectOrdersRankFirst", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)

		api.On("FetchOrders", mock.Anything).Return([]backend.RawOrder{
			{ID: "order-1", Status: "Processing", Total: 10, OrderedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)
		api.On("FetchCollaborativePurchases", mock.Anything).Return([]backend.RawPurchase{
			{ID: "collab-1", Status: "Processing", TotalAmount: 50, Product: "p1", ProductName: "Gift", Quantity: 1, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)
		api.On("GetProduct", mock.Anything, "p1").Return(nil, errors.New("lookup down"))

		err := svc.Reconcile(context.Background())
		require.NoError(t, err)

		list := store.List()
		require.Len(t, list, 2)
		// the collaborative purchase is newer, the direct order still ranks first
		assert.Equal(t, "order-1", list[0].ID)
		assert.Equal(t, "collab-1", list[1].ID)
	})

	t.Run("HiddenPurchaseStatusesExcluded", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)

		api.On("FetchOrders", mock.Anything).Return([]backend.RawOrder{}, nil)
		api.On("FetchCollaborativePurchases", mock.Anything).Return([]backend.RawPurchase{
			{ID: "collab-done", Status: "Completed", Product: "p1", ProductName: "Gift"},
			{ID: "collab-open", Status: "accepted", Product: "p2", ProductName: "Box"},
		}, nil)
		api.On("GetProduct", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

		require.NoError(t, svc.Reconcile(context.Background()))

		list := store.List()
		require.Len(t, list, 1)
		assert.Equal(t, "collab-open", list[0].ID)
	})

	t.Run("SourceFailurePreservesPreviousList", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		store.Replace([]*View{{ID: "existing", Items: []Item{{ID: "i"}}}})

		api.On("FetchOrders", mock.Anything).Return([]backend.RawOrder{}, nil)
		api.On("FetchCollaborativePurchases", mock.Anything).Return(nil, errors.New("503"))

		err := svc.Reconcile(context.Background())
		var srcErr *SourceUnavailableError
		require.ErrorAs(t, err, &srcErr)
		assert.Equal(t, "collaborative-purchases", srcErr.Source)

		list := store.List()
		require.Len(t, list, 1)
		assert.Equal(t, "existing", list[0].ID)
	})

	t.Run("MalformedRecordsDroppedPassContinues", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)

		api.On("FetchOrders", mock.Anything).Return([]backend.RawOrder{
			{Status: "Processing"}, // no id
			{ID: "good", Status: "Processing"},
		}, nil)
		api.On("FetchCollaborativePurchases", mock.Anything).Return([]backend.RawPurchase{}, nil)

		require.NoError(t, svc.Reconcile(context.Background()))

		list := store.List()
		require.Len(t, list, 1)
		assert.Equal(t, "good", list[0].ID)
	})

	t.Run("EnrichmentAppliedWhenLookupsSucceed", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)

		api.On("FetchOrders", mock.Anything).Return([]backend.RawOrder{}, nil)
		api.On("FetchCollaborativePurchases", mock.Anything).Return([]backend.RawPurchase{
			{ID: "collab-1", Status: "Processing", CreatedBy: "u1", Product: "p1", ProductName: "Stored", ProductPrice: 5, Quantity: 2},
		}, nil)
		api.On("GetUser", mock.Anything, "u1").Return(&backend.RawUser{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, nil)
		api.On("GetProduct", mock.Anything, "p1").Return(&backend.RawProduct{Name: "Fresh Name", SKU: "SKU-REAL", Price: 7}, nil)

		require.NoError(t, svc.Reconcile(context.Background()))

		list := store.List()
		require.Len(t, list, 1)
		assert.Equal(t, "Jane Doe", list[0].CustomerName)
		assert.Equal(t, "Fresh Name", list[0].Items[0].Name)
		assert.Equal(t, "SKU-REAL", list[0].Items[0].SKU)
		assert.Equal(t, 7.0, list[0].Items[0].Price)
		assert.Equal(t, 2, list[0].Items[0].Quantity)
	})
}

func TestAccept(t *testing.T) {
	hexID := "64a1f0c2e5b73a0012abcdef"

	seed := func(store *Store, items []Item) {
		store.Replace([]*View{
			{ID: "order-1", Status: StatusProcessing, Items: items},
			{ID: "order-2", Status: StatusProcessing, Items: []Item{{ID: "i"}}},
		})
	}

	t.Run("Success", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		seed(store, []Item{{ID: hexID, ProductRef: hexID, Quantity: 3}})

		api.On("UpdateToPacking", mock.Anything, "order-1").Return(nil)
		api.On("ReduceStock", mock.Anything, []backend.StockItem{{ProductID: hexID, Quantity: 3}}).Return(nil)

		res, err := svc.Accept(context.Background(), "order-1")
		require.NoError(t, err)
		assert.False(t, res.StockSkipped)
		assert.NoError(t, res.StockErr)

		v, _ := store.Get("order-1")
		assert.Equal(t, StatusPacking, v.Status)
		// the other order is untouched
		other, _ := store.Get("order-2")
		assert.Equal(t, StatusProcessing, other.Status)
		api.AssertExpectations(t)
	})

	t.Run("InvalidProductIDsFiltered", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		seed(store, []Item{
			{ID: hexID, ProductRef: hexID, Quantity: 1},
			{ID: "abc", ProductRef: "abc", Quantity: 5},
		})

		api.On("UpdateToPacking", mock.Anything, "order-1").Return(nil)
		api.On("ReduceStock", mock.Anything, []backend.StockItem{{ProductID: hexID, Quantity: 1}}).Return(nil)

		_, err := svc.Accept(context.Background(), "order-1")
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("NoValidProductIDsSkipsDecrement", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		seed(store, []Item{{ID: "collab-item-1", Quantity: 2}})

		api.On("UpdateToPacking", mock.Anything, "order-1").Return(nil)

		res, err := svc.Accept(context.Background(), "order-1")
		require.NoError(t, err)
		assert.True(t, res.StockSkipped)
		assert.NotEmpty(t, res.StockWarning)

		v, _ := store.Get("order-1")
		assert.Equal(t, StatusPacking, v.Status)
		api.AssertNotCalled(t, "ReduceStock", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientStockDoesNotRevertTransition", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		seed(store, []Item{{ID: hexID, ProductRef: hexID, Quantity: 10}})

		stockErr := &backend.InsufficientStockError{Items: []backend.InsufficientStockItem{
			{ProductName: "Teddy Bear", RequestedQuantity: 10, AvailableStock: 2},
		}}
		api.On("UpdateToPacking", mock.Anything, "order-1").Return(nil)
		api.On("ReduceStock", mock.Anything, mock.Anything).Return(stockErr)

		res, err := svc.Accept(context.Background(), "order-1")
		require.NoError(t, err)

		var got *backend.InsufficientStockError
		require.ErrorAs(t, res.StockErr, &got)
		assert.Equal(t, "Teddy Bear", got.Items[0].ProductName)

		v, _ := store.Get("order-1")
		assert.Equal(t, StatusPacking, v.Status)
	})

	t.Run("RemoteRejectionLeavesStatusUnchanged", func(t *testing.T) {
		api := new(MockBackend)
		svc, store := newTestService(api)
		seed(store, []Item{{ID: hexID, ProductRef: hexID, Quantity: 1}})

		api.On("UpdateToPacking", mock.Anything, "order-1").Return(errors.New("backend said no"))

		_, err := svc.Accept(context.Background(), "order-1")
		var rejected *TransitionRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "order-1", rejected.OrderID)

		v, _ := store.Get("order-1")
		assert.Equal(t, StatusProcessing, v.Status)
		api.AssertNotCalled(t, "ReduceStock", mock.Anything, mock.Anything)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		api := new(MockBackend)
		svc, _ := newTestService(api)

		_, err := svc.Accept(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestConfirmPackedAndMarkDelivered(t *testing.T) {
	api := new(MockBackend)
	svc, store := newTestService(api)
	store.Replace([]*View{{ID: "order-1", Status: StatusPacking, Items: []Item{{ID: "i"}}}})

	api.On("UpdateToShipped", mock.Anything, "order-1").Return(nil)
	require.NoError(t, svc.ConfirmPacked(context.Background(), "order-1"))
	v, _ := store.Get("order-1")
	assert.Equal(t, StatusShipped, v.Status)

	api.On("UpdateToDelivered", mock.Anything, "order-1").Return(nil)
	require.NoError(t, svc.MarkDelivered(context.Background(), "order-1"))
	v, _ = store.Get("order-1")
	assert.Equal(t, StatusDelivered, v.Status)
}

func TestTransitionInFlightGuard(t *testing.T) {
	api := new(MockBackend)
	svc, store := newTestService(api)
	store.Replace([]*View{{ID: "order-1", Status: StatusPacking, Items: []Item{{ID: "i"}}}})

	started := make(chan struct{})
	proceed := make(chan struct{})
	api.On("UpdateToShipped", mock.Anything, "order-1").Run(func(args mock.Arguments) {
		close(started)
		<-proceed
	}).Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- svc.ConfirmPacked(context.Background(), "order-1")
	}()

	<-started
	// a second transition for the same order is refused while the first holds
	err := svc.ConfirmPacked(context.Background(), "order-1")
	assert.ErrorIs(t, err, ErrTransitionInFlight)

	close(proceed)
	require.NoError(t, <-done)

	// the guard releases once the first transition settles
	api.On("UpdateToDelivered", mock.Anything, "order-1").Return(nil)
	assert.NoError(t, svc.MarkDelivered(context.Background(), "order-1"))
}

func TestStats(t *testing.T) {
	api := new(MockBackend)
	svc, store := newTestService(api)
	item := []Item{{ID: "i"}}
	store.Replace([]*View{
		{ID: "a", Status: StatusProcessing, Items: item},
		{ID: "b", Status: StatusProcessing, Items: item},
		{ID: "c", Status: StatusPacking, Items: item},
		{ID: "d", Status: StatusDelivered}, // no items, not counted
	})

	stats := svc.Stats()
	assert.Equal(t, 2, stats[StatusProcessing])
	assert.Equal(t, 1, stats[StatusPacking])
	assert.Zero(t, stats[StatusDelivered])
}
