// Package export renders the filtered order list as a downloadable CSV with
// UK VAT breakdown columns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"giftcommerce-admin/internal/order"
)

// Filename is the download name for the exported report.
const Filename = "filtered_orders_with_tax.csv"

// VATRate is the UK VAT rate applied to the order total.
const VATRate = 0.20

var headers = []string{
	"Order ID", "Customer Name", "Status", "Total Amount",
	"Order Date", "Tax Amount", "VAT (20%)", "Net Amount",
}

// WriteOrders writes one row per order, with tax computed as total x 0.2 and
// net as total minus tax.
func WriteOrders(w io.Writer, orders []*order.View) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range orders {
		tax := o.TotalAmount * VATRate
		net := o.TotalAmount - tax

		row := []string{
			o.ID,
			o.CustomerName,
			string(o.Status),
			fmt.Sprintf("%.2f", o.TotalAmount),
			o.OrderDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", tax),
			fmt.Sprintf("%.2f%%", VATRate*100),
			fmt.Sprintf("%.2f", net),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for order %s: %w", o.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
