// Package server exposes the admin dashboard REST surface over the unified
// order list.
package server

import (
	"time"

	"giftcommerce-admin/internal/config"
	"giftcommerce-admin/internal/logger"
	"giftcommerce-admin/internal/middleware"
	"giftcommerce-admin/internal/order"
	"giftcommerce-admin/internal/report"
	"giftcommerce-admin/internal/session"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg      *config.Config
	svc      *order.Service
	session  *session.State
	renderer *report.Renderer
	printer  *report.BatchPrinter
	engine   *gin.Engine
}

func New(cfg *config.Config, svc *order.Service) (*Server, error) {
	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		svc:      svc,
		session:  session.NewState(),
		renderer: renderer,
		printer:  report.NewBatchPrinter(renderer, report.DefaultPrintInterval),
		engine:   gin.New(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(logger.RequestIDMiddleware())
	s.engine.Use(logger.LoggingMiddleware())
	s.engine.Use(middleware.RateLimit())

	s.engine.POST("/api/auth/login", s.handleLogin)

	admin := s.engine.Group("/api", middleware.AdminAuth())
	{
		admin.GET("/orders", s.handleListOrders)
		admin.POST("/orders/refresh", s.handleRefresh)
		admin.GET("/orders/export", s.handleExportCSV)
		admin.POST("/orders/print", s.handlePrintFiltered)
		admin.POST("/orders/print-packed", s.handlePrintPacked)

		admin.GET("/orders/:id", s.handleGetOrder)
		admin.PUT("/orders/:id/accept", s.handleAccept)
		admin.PUT("/orders/:id/packed", s.handleConfirmPacked)
		admin.PUT("/orders/:id/delivered", s.handleMarkDelivered)
		admin.GET("/orders/:id/invoice", s.handleInvoice)
		admin.GET("/orders/:id/delivery-slip", s.handleDeliverySlip)
		admin.PUT("/orders/:id/notes", s.handleSaveNotes)
		admin.POST("/orders/:id/expand", s.handleToggleExpand)
	}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.AppPort)
}

// Handler exposes the underlying engine for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// queryFromRequest builds a filter query from request parameters. Dates are
// date-only (2006-01-02) and inclusive; either bound alone is valid.
func queryFromRequest(c *gin.Context) (order.Query, error) {
	q := order.Query{
		Tab:    order.Tab(c.DefaultQuery("tab", string(order.TabAll))),
		Search: c.Query("search"),
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return q, err
		}
		q.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return q, err
		}
		// include the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		q.To = &t
	}
	return q, nil
}
