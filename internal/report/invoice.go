// Package report renders printable order documents: the full invoice and the
// delivery-slip variant handed to couriers.
package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"giftcommerce-admin/internal/order"
	"giftcommerce-admin/internal/utils"
)

type Renderer struct {
	invoiceTpl *template.Template
	slipTpl    *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("£%.2f", v) },
		"lineTotal": func(it order.Item) string {
			return fmt.Sprintf("£%.2f", it.Price*float64(it.Quantity))
		},
	}

	invoiceTpl, err := template.New("invoice").Funcs(funcs).Parse(invoiceHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %w", err)
	}
	slipTpl, err := template.New("slip").Funcs(funcs).Parse(deliverySlipHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse delivery slip template: %w", err)
	}

	return &Renderer{invoiceTpl: invoiceTpl, slipTpl: slipTpl}, nil
}

type invoiceData struct {
	Order         *order.View
	InvoiceNumber string
	GeneratedAt   time.Time
	Subtotal      float64
	TotalItems    int
	TotalWeight   float64
	StatusLabel   string
	Collaborative bool
}

// RenderInvoice writes the full invoice document for one order.
func (r *Renderer) RenderInvoice(w io.Writer, v *order.View) error {
	var weight float64
	for _, it := range v.Items {
		weight += utils.ParseWeight(it.Weight)
	}

	return r.invoiceTpl.Execute(w, invoiceData{
		Order:         v,
		InvoiceNumber: utils.GenerateInvoiceNumber(),
		GeneratedAt:   time.Now(),
		Subtotal:      v.Subtotal(),
		TotalItems:    v.TotalItems(),
		TotalWeight:   weight,
		StatusLabel:   v.Status.Display(),
		Collaborative: v.OrderSource == order.SourceCollaborative,
	})
}

// RenderDeliverySlip writes the courier-facing delivery document.
func (r *Renderer) RenderDeliverySlip(w io.Writer, v *order.View) error {
	return r.slipTpl.Execute(w, invoiceData{
		Order:       v,
		GeneratedAt: time.Now(),
		StatusLabel: v.Status.Display(),
	})
}

const invoiceHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Gift Commerce - Order Invoice {{.Order.ReferenceCode}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.4; color: #333; }
    .header { text-align: center; padding: 20px; border-bottom: 2px solid #333; margin-bottom: 20px; }
    .section { margin-bottom: 25px; }
    .label { font-weight: bold; color: #333; }
    .items { border-collapse: collapse; width: 100%; margin-top: 10px; }
    .items th, .items td { border: 1px solid #ddd; padding: 10px; text-align: left; }
    .items th { background-color: #f8f9fa; font-weight: bold; }
    .summary { background: #f8f9fa; padding: 15px; border-radius: 5px; }
    .footer { margin-top: 40px; border-top: 1px solid #ddd; padding-top: 20px; font-size: 12px; color: #666; text-align: center; }
  </style>
</head>
<body>
  <div class="header">
    <h1>GIFT COMMERCE</h1>
    <h2>INVOICE</h2>
    <p>Order Reference: {{.Order.ReferenceCode}} | Invoice: {{.InvoiceNumber}}</p>
  </div>

  <div class="section">
    <h3>Order Information</h3>
    <p><span class="label">Order ID:</span> {{.Order.ID}}</p>
    <p><span class="label">Order Date:</span> {{.Order.OrderDate.Format "02 Jan 2006 15:04"}}</p>
    <p><span class="label">Status:</span> {{.StatusLabel}}</p>
    <p><span class="label">Order Source:</span> {{.Order.OrderSource}}</p>
    <p><span class="label">Payment Method:</span> {{.Order.PaymentMethod}}</p>
    <p><span class="label">Estimated Delivery:</span> {{.Order.EstimatedTime}}</p>
  </div>

  <div class="section">
    <h3>Customer Information</h3>
    <p><span class="label">Name:</span> {{.Order.CustomerName}}</p>
    <p><span class="label">Phone:</span> {{.Order.CustomerPhone}}</p>
    <p><span class="label">Email:</span> {{.Order.CustomerEmail}}</p>
    <p><span class="label">Delivery Address:</span> {{.Order.Address}}</p>
    <p><span class="label">Billing Address:</span> {{.Order.BillingAddress}}</p>
  </div>

  <div class="section">
    <h3>Order Items ({{len .Order.Items}} products, {{.TotalItems}} total items)</h3>
    <table class="items">
      <tr>
        <th>Product Name</th><th>SKU</th><th>Category</th>
        <th>Qty</th><th>Unit Price</th><th>Total</th>
      </tr>
      {{range .Order.Items}}
      <tr>
        <td><strong>{{.Name}}</strong></td>
        <td>{{.SKU}}</td>
        <td>{{.Category}}</td>
        <td>{{.Quantity}}</td>
        <td>{{money .Price}}</td>
        <td><strong>{{lineTotal .}}</strong></td>
      </tr>
      {{end}}
    </table>
  </div>

  <div class="section summary">
    <h3>Payment Summary</h3>
    <p><span class="label">Subtotal ({{.TotalItems}} items):</span> {{money .Subtotal}}</p>
    <p><span class="label">Total Amount:</span> <strong>{{money .Order.TotalAmount}}</strong></p>
    {{if gt .Order.CODAmount 0.0}}
    <p><span class="label">COD Amount:</span> {{money .Order.CODAmount}} (collect cash on delivery)</p>
    {{else}}
    <p><span class="label">Payment Status:</span> Paid Online</p>
    {{end}}
  </div>

  {{if .Order.IsGift}}
  <div class="section">
    <h3>Gift Details</h3>
    <p><span class="label">Gift Wrap:</span> {{if .Order.GiftWrap}}Yes{{else}}No{{end}}</p>
    {{if .Order.GiftMessage}}<p><span class="label">Gift Message:</span> {{.Order.GiftMessage}}</p>{{end}}
  </div>
  {{end}}

  {{if .Order.InternalNotes}}
  <div class="section">
    <h3>Internal Notes</h3>
    <p>{{.Order.InternalNotes}}</p>
  </div>
  {{end}}

  <div class="footer">
    <p>Gift Commerce Admin System</p>
    <p>Total Weight: {{printf "%.1f" .TotalWeight}} lbs | Printed: {{.GeneratedAt.Format "02 Jan 2006 15:04"}}</p>
    <p>Order Type: {{if .Collaborative}}Collaborative Purchase{{else}}Regular Order{{end}}</p>
    <p>This is a computer-generated invoice. No signature required.</p>
  </div>
</body>
</html>
`

const deliverySlipHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Delivery Information - {{.Order.ReferenceCode}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
    .header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #333; padding-bottom: 20px; }
    .section { margin-bottom: 25px; }
    .label { font-weight: bold; color: #333; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Delivery Information</h1>
    <h2>Order: {{.Order.ReferenceCode}}</h2>
  </div>

  <div class="section">
    <h3>Customer Information</h3>
    <p><span class="label">Name:</span> {{.Order.CustomerName}}</p>
    <p><span class="label">Phone:</span> {{.Order.CustomerPhone}}</p>
    <p><span class="label">Email:</span> {{.Order.CustomerEmail}}</p>
  </div>

  <div class="section">
    <h3>Delivery Address</h3>
    <p>{{.Order.Address}}</p>
  </div>

  <div class="section">
    <h3>Order Details</h3>
    <p><span class="label">Order Date:</span> {{.Order.OrderDate.Format "02 Jan 2006"}}</p>
    <p><span class="label">Total Amount:</span> {{money .Order.TotalAmount}}</p>
  </div>
</body>
</html>
`
