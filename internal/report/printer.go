package report

import (
	"context"
	"io"
	"time"

	"giftcommerce-admin/internal/logger"
	"giftcommerce-admin/internal/order"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultPrintInterval is the fixed delay between documents in a batch, a
// rate-limiting discipline to avoid overwhelming the host's print subsystem.
const DefaultPrintInterval = 1500 * time.Millisecond

// BatchPrinter renders a sequence of documents one at a time, pacing with a
// fixed inter-document delay.
type BatchPrinter struct {
	renderer *Renderer
	limiter  *rate.Limiter
}

func NewBatchPrinter(renderer *Renderer, interval time.Duration) *BatchPrinter {
	if interval <= 0 {
		interval = DefaultPrintInterval
	}
	return &BatchPrinter{
		renderer: renderer,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// PrintInvoices writes every order's invoice to w, serialized with the
// configured pacing. A render failure aborts the batch; completed documents
// have already been emitted.
func (p *BatchPrinter) PrintInvoices(ctx context.Context, w io.Writer, orders []*order.View) error {
	log := logger.FromCtx(ctx).With(zap.Int("batch_size", len(orders)))

	for i, o := range orders {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		log.Info("printing order",
			zap.Int("position", i+1),
			zap.String("reference_code", o.ReferenceCode),
		)
		if err := p.renderer.RenderInvoice(w, o); err != nil {
			return err
		}
	}

	log.Info("batch print complete")
	return nil
}

// PrintDeliverySlips writes every order's delivery slip to w with the same
// pacing as PrintInvoices.
func (p *BatchPrinter) PrintDeliverySlips(ctx context.Context, w io.Writer, orders []*order.View) error {
	for _, o := range orders {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := p.renderer.RenderDeliverySlip(w, o); err != nil {
			return err
		}
	}
	return nil
}
