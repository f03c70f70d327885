package server

import (
	"errors"
	"net/http"

	"giftcommerce-admin/internal/auth"
	"giftcommerce-admin/internal/backend"
	"giftcommerce-admin/internal/export"
	"giftcommerce-admin/internal/logger"
	"giftcommerce-admin/internal/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != s.cfg.AdminEmail || !auth.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := auth.GenerateJWT(req.Email)
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type orderPayload struct {
	*order.View
	InternalNotes string `json:"internalNotes"`
	Expanded      bool   `json:"expanded"`
}

func (s *Server) orderPayload(v *order.View) orderPayload {
	return orderPayload{
		View:          v,
		InternalNotes: s.session.Note(v.ID),
		Expanded:      s.session.IsExpanded(v.ID),
	}
}

func (s *Server) handleListOrders(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date filter: " + err.Error()})
		return
	}

	views := s.svc.Orders(q)
	payload := make([]orderPayload, 0, len(views))
	for _, v := range views {
		payload = append(payload, s.orderPayload(v))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": payload,
		"count":  len(payload),
		"stats":  s.svc.Stats(),
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.svc.Reconcile(c.Request.Context()); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetOrder(c *gin.Context) {
	v, err := s.svc.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": s.orderPayload(v)})
}

func (s *Server) handleAccept(c *gin.Context) {
	result, err := s.svc.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := gin.H{"success": true, "status": order.StatusPacking}
	if result.StockSkipped {
		resp["warning"] = result.StockWarning
	}
	if result.StockErr != nil {
		var stockErr *backend.InsufficientStockError
		if errors.As(result.StockErr, &stockErr) {
			resp["insufficientStockItems"] = stockErr.Items
		}
		resp["stockError"] = result.StockErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleConfirmPacked(c *gin.Context) {
	if err := s.svc.ConfirmPacked(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": order.StatusShipped})
}

func (s *Server) handleMarkDelivered(c *gin.Context) {
	if err := s.svc.MarkDelivered(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": order.StatusDelivered})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date filter: " + err.Error()})
		return
	}
	if q.Tab != order.TabAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "export is only available on the 'all' tab"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	if err := export.WriteOrders(c.Writer, s.svc.Orders(q)); err != nil {
		logger.FromCtx(c.Request.Context()).Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) handlePrintFiltered(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date filter: " + err.Error()})
		return
	}

	views := s.svc.Orders(q)
	if len(views) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no orders available to print"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.printer.PrintInvoices(c.Request.Context(), c.Writer, views); err != nil {
		logger.FromCtx(c.Request.Context()).Error("batch print failed", zap.Error(err))
	}
}

func (s *Server) handlePrintPacked(c *gin.Context) {
	views := s.svc.Orders(order.Query{Tab: order.TabPacked})
	if len(views) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no packed orders available to print"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.printer.PrintDeliverySlips(c.Request.Context(), c.Writer, views); err != nil {
		logger.FromCtx(c.Request.Context()).Error("packed batch print failed", zap.Error(err))
	}
}

func (s *Server) handleInvoice(c *gin.Context) {
	v, err := s.svc.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	// draft notes are local-only; stamp them onto the printed copy
	if note := s.session.Note(v.ID); note != "" {
		v = v.Clone()
		v.InternalNotes = note
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderInvoice(c.Writer, v); err != nil {
		logger.FromCtx(c.Request.Context()).Error("invoice render failed", zap.Error(err))
	}
}

func (s *Server) handleDeliverySlip(c *gin.Context) {
	v, err := s.svc.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderDeliverySlip(c.Writer, v); err != nil {
		logger.FromCtx(c.Request.Context()).Error("delivery slip render failed", zap.Error(err))
	}
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleSaveNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := s.svc.Get(id); err != nil {
		s.respondError(c, err)
		return
	}

	s.session.SaveNote(id, req.Notes)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleToggleExpand(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.svc.Get(id); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expanded": s.session.ToggleExpanded(id)})
}

// respondError maps domain errors onto HTTP statuses. Nothing is silently
// retried; failures surface to the operator.
func (s *Server) respondError(c *gin.Context, err error) {
	var srcErr *order.SourceUnavailableError
	var rejected *order.TransitionRejectedError
	var stockErr *backend.InsufficientStockError

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrTransitionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":                  stockErr.Error(),
			"insufficientStockItems": stockErr.Items,
		})
	case errors.As(err, &srcErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": srcErr.Error()})
	case errors.As(err, &rejected):
		c.JSON(http.StatusBadGateway, gin.H{"error": rejected.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
