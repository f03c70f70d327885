package order

import (
	"context"
	"sync"

	"giftcommerce-admin/internal/backend"
	"giftcommerce-admin/internal/logger"
	"giftcommerce-admin/internal/metrics"
	"giftcommerce-admin/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Backend is the remote commerce API surface the service depends on.
type Backend interface {
	FetchOrders(ctx context.Context) ([]backend.RawOrder, error)
	FetchCollaborativePurchases(ctx context.Context) ([]backend.RawPurchase, error)
	GetUser(ctx context.Context, userID string) (*backend.RawUser, error)
	GetProduct(ctx context.Context, productID string) (*backend.RawProduct, error)
	UpdateToPacking(ctx context.Context, orderID string) error
	UpdateToShipped(ctx context.Context, orderID string) error
	UpdateToDelivered(ctx context.Context, orderID string) error
	ReduceStock(ctx context.Context, items []backend.StockItem) error
}

type Service struct {
	api     Backend
	store   *Store
	metrics *metrics.Registry

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewService(api Backend, store *Store, reg *metrics.Registry) *Service {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Service{
		api:      api,
		store:    store,
		metrics:  reg,
		inFlight: make(map[string]struct{}),
	}
}

// Orders returns the filtered unified list.
func (s *Service) Orders(q Query) []*View {
	return Filter(s.store.List(), q)
}

// Get returns one order from the unified list.
func (s *Service) Get(id string) (*View, error) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return v, nil
}

// Stats counts orders per status bucket for the dashboard header.
func (s *Service) Stats() map[Status]int {
	stats := make(map[Status]int)
	for _, o := range s.store.List() {
		if len(o.Items) == 0 {
			continue
		}
		stats[o.Status]++
	}
	return stats
}

// Reconcile rebuilds the unified list from both remote sources. A
// whole-source fetch failure aborts the pass and the previous list is
// retained unchanged. Per-record enrichment failures degrade locally and
// never abort the pass.
func (s *Service) Reconcile(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(zap.String("method", "Reconcile"))
	timer := metrics.StartTimer()

	rawOrders, err := s.api.FetchOrders(ctx)
	if err != nil {
		s.metrics.ReconcileFailures.Inc()
		log.Error("direct order fetch failed", zap.Error(err))
		return &SourceUnavailableError{Source: "orders", Err: err}
	}

	rawPurchases, err := s.api.FetchCollaborativePurchases(ctx)
	if err != nil {
		s.metrics.ReconcileFailures.Inc()
		log.Error("collaborative purchase fetch failed", zap.Error(err))
		return &SourceUnavailableError{Source: "collaborative-purchases", Err: err}
	}

	direct := make([]*View, 0, len(rawOrders))
	for _, raw := range rawOrders {
		v, err := MapDirectOrder(raw)
		if err != nil {
			s.metrics.DroppedRecords.Inc()
			log.Warn("dropping malformed order record", zap.Error(err))
			continue
		}
		direct = append(direct, v)
	}

	retained := make([]backend.RawPurchase, 0, len(rawPurchases))
	for _, p := range rawPurchases {
		if PurchaseVisible(p.Status) {
			retained = append(retained, p)
		}
	}

	// Enrichment lookups are independent; a failure affects only its own
	// purchase or item. Index-addressed results preserve source ordering.
	collab := make([]*View, len(retained))
	var wg sync.WaitGroup
	for i, p := range retained {
		wg.Add(1)
		go func(i int, p backend.RawPurchase) {
			defer wg.Done()
			enr := s.enrichPurchase(ctx, p)
			v, err := MapCollaborativePurchase(p, enr)
			if err != nil {
				s.metrics.DroppedRecords.Inc()
				log.Warn("dropping malformed purchase record", zap.Error(err))
				return
			}
			collab[i] = v
		}(i, p)
	}
	wg.Wait()

	// Direct orders rank first in the unified list regardless of date.
	unified := make([]*View, 0, len(direct)+len(collab))
	unified = append(unified, direct...)
	for _, v := range collab {
		if v != nil {
			unified = append(unified, v)
		}
	}

	s.store.Replace(unified)
	s.metrics.ReconcilePasses.Inc()

	log.Info("reconciliation pass complete",
		zap.Int("direct_orders", len(direct)),
		zap.Int("collaborative_purchases", len(retained)),
		zap.Int("unified_total", len(unified)),
		zap.Duration("duration", timer.Duration()),
	)
	return nil
}

// enrichPurchase resolves the creating user and the product detail for each
// line of one purchase. Lookups fan out and settle independently; a failed
// lookup degrades to the purchase-time snapshot.
func (s *Service) enrichPurchase(ctx context.Context, p backend.RawPurchase) PurchaseEnrichment {
	log := logger.FromCtx(ctx).With(zap.String("purchase_id", p.ID))

	enr := PurchaseEnrichment{
		Products: make(map[string]*backend.RawProduct),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	if p.CreatedBy != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := s.api.GetUser(ctx, p.CreatedBy)
			if err != nil {
				s.metrics.DegradedEnrichments.Inc()
				log.Warn("user lookup failed, using placeholder details",
					zap.String("user_id", p.CreatedBy), zap.Error(err))
				return
			}
			mu.Lock()
			enr.User = user
			mu.Unlock()
		}()
	}

	productIDs := make([]string, 0, len(p.Products)+1)
	if p.IsMultiProduct && len(p.Products) > 0 {
		for _, line := range p.Products {
			if line.Product != "" {
				productIDs = append(productIDs, line.Product)
			}
		}
	} else if p.Product != "" {
		productIDs = append(productIDs, p.Product)
	}

	for _, id := range productIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			detail, err := s.api.GetProduct(ctx, id)
			if err != nil {
				s.metrics.DegradedEnrichments.Inc()
				log.Warn("product lookup failed, using stored snapshot",
					zap.String("product_id", id), zap.Error(err))
				return
			}
			mu.Lock()
			enr.Products[id] = detail
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return enr
}

// AcceptResult reports the outcome of the inventory-decrement side effect of
// an accept transition. The transition itself has already committed when a
// stock problem is reported here.
type AcceptResult struct {
	StockSkipped bool
	StockWarning string
	StockErr     error
}

// Accept moves a processing/accepted order to packing and then decrements
// stock for its line items. Stock failures are non-fatal to the transition.
func (s *Service) Accept(ctx context.Context, orderID string) (*AcceptResult, error) {
	release, err := s.acquire(orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	view, ok := s.store.Get(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}

	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	if err := s.api.UpdateToPacking(ctx, orderID); err != nil {
		s.metrics.TransitionFailures.Inc()
		return nil, &TransitionRejectedError{OrderID: orderID, Err: err}
	}
	s.store.PatchStatus(orderID, StatusPacking)
	s.metrics.Transitions.Inc()
	log.Info("order accepted", zap.String("status", string(StatusPacking)))

	result := &AcceptResult{}

	stockItems := validStockItems(view.Items)
	if len(stockItems) == 0 {
		result.StockSkipped = true
		result.StockWarning = "no valid product IDs found; stock reduction skipped"
		log.Warn("stock reduction skipped: no valid product ids")
		return result, nil
	}

	if err := s.api.ReduceStock(ctx, stockItems); err != nil {
		result.StockErr = err
		log.Error("stock reduction failed", zap.Error(err))
	}
	return result, nil
}

// ConfirmPacked moves a packing order to shipped.
func (s *Service) ConfirmPacked(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, StatusShipped, s.api.UpdateToShipped)
}

// MarkDelivered moves a shipped order to delivered.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, StatusDelivered, s.api.UpdateToDelivered)
}

func (s *Service) transition(ctx context.Context, orderID string, to Status, call func(context.Context, string) error) error {
	release, err := s.acquire(orderID)
	if err != nil {
		return err
	}
	defer release()

	if _, ok := s.store.Get(orderID); !ok {
		return ErrOrderNotFound
	}

	if err := call(ctx, orderID); err != nil {
		s.metrics.TransitionFailures.Inc()
		return &TransitionRejectedError{OrderID: orderID, Err: err}
	}

	s.store.PatchStatus(orderID, to)
	s.metrics.Transitions.Inc()
	logger.FromCtx(ctx).Info("order transitioned",
		zap.String("order_id", orderID),
		zap.String("status", string(to)),
	)
	return nil
}

// acquire guards one order against overlapping transitions for the duration
// of the remote call; the returned release runs in a defer regardless of
// outcome.
func (s *Service) acquire(orderID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[orderID]; busy {
		return nil, ErrTransitionInFlight
	}
	s.inFlight[orderID] = struct{}{}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.inFlight, orderID)
	}, nil
}

// validStockItems keeps only items whose product identifier is a well-formed
// 24-character hex object id.
func validStockItems(items []Item) []backend.StockItem {
	out := make([]backend.StockItem, 0, len(items))
	for _, it := range items {
		id := utils.FirstNonEmpty(it.ProductRef, it.ID)
		if !primitive.IsValidObjectID(id) {
			continue
		}
		out = append(out, backend.StockItem{ProductID: id, Quantity: it.Quantity})
	}
	return out
}
