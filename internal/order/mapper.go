package order

import (
	"fmt"
	"strings"

	"giftcommerce-admin/internal/backend"
	"giftcommerce-admin/internal/utils"
)

// NormalizeStatus canonicalizes a raw status: lowercase, spaces replaced
// with underscores ("Accepted" -> "accepted").
func NormalizeStatus(raw string) Status {
	return Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
}

// PurchaseVisible reports whether a collaborative purchase belongs in the
// unified view. Only processing and accepted purchases are orders.
func PurchaseVisible(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "processing" || s == "accepted"
}

// MapDirectOrder normalizes one raw direct-order record into a View. It only
// fails when the record has no id; absent optional data degrades to safe
// placeholders.
func MapDirectOrder(raw backend.RawOrder) (*View, error) {
	if raw.ID == "" {
		return nil, &MalformedRecordError{Source: "order", Field: "_id"}
	}

	items := make([]Item, 0, len(raw.Items))
	for i, it := range raw.Items {
		sku := fmt.Sprintf("SKU-ITEM%d", i+1)
		if it.Product != "" {
			sku = "SKU-" + utils.Last6(it.Product)
		}

		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}

		items = append(items, Item{
			ID:          utils.FirstNonEmpty(it.Product, fmt.Sprintf("item-%d", i)),
			ProductRef:  it.Product,
			Name:        utils.FirstNonEmpty(it.Name, "Unknown Product"),
			Price:       it.Price,
			Quantity:    qty,
			Image:       utils.FirstNonEmpty(it.Image, "/placeholder.svg"),
			SKU:         sku,
			Category:    "General",
			Weight:      "1.0 lbs",
			StockStatus: "in_stock",
		})
	}

	var user *UserDetails
	var firstName, lastName, email, phone, address string
	if raw.User != nil {
		user = &UserDetails{
			FirstName: raw.User.FirstName,
			LastName:  raw.User.LastName,
			Email:     raw.User.Email,
			Phone:     raw.User.Phone,
			Address:   raw.User.Address,
		}
		firstName, lastName = raw.User.FirstName, raw.User.LastName
		email, phone, address = raw.User.Email, raw.User.Phone, raw.User.Address
	}

	orderDate := raw.OrderedAt
	if orderDate.IsZero() {
		orderDate = raw.CreatedAt
	}

	return &View{
		ID:             raw.ID,
		ReferenceCode:  "REF-" + utils.Last6(raw.ID),
		Status:         NormalizeStatus(raw.Status),
		PackingStatus:  PackingNotPacked,
		Priority:       PriorityNormal,
		OrderSource:    SourceWeb,
		PaymentMethod:  "online_payment",
		OrderDate:      orderDate,
		CreatedAt:      raw.CreatedAt,
		CustomerName:   utils.FirstNonEmpty(strings.TrimSpace(firstName+" "+lastName), "Unknown Customer"),
		CustomerPhone:  utils.FirstNonEmpty(phone, "N/A"),
		CustomerEmail:  utils.FirstNonEmpty(email, "N/A"),
		User:           user,
		Items:          items,
		TotalAmount:    raw.Total,
		CODAmount:      0,
		Address:        utils.FirstNonEmpty(address, "N/A"),
		BillingAddress: utils.FirstNonEmpty(address, "N/A"),
		EstimatedTime:  "2-3 days",
		ShippingMethod: "standard",
		TrackingNumber: raw.TrackingNumber,
		DeliveryNotes:  raw.DeliveryNotes,
	}, nil
}

// PurchaseEnrichment carries the detail lookups resolved for one
// collaborative purchase. A nil User or a missing product entry means the
// lookup failed and the stored snapshot is used instead.
type PurchaseEnrichment struct {
	User     *backend.RawUser
	Products map[string]*backend.RawProduct
}

// MapCollaborativePurchase normalizes one retained collaborative purchase,
// plus whatever enrichment settled, into a View. Freshly fetched product
// data wins over the purchase-time snapshot; purchase-time quantity always
// wins.
func MapCollaborativePurchase(raw backend.RawPurchase, enr PurchaseEnrichment) (*View, error) {
	if raw.ID == "" {
		return nil, &MalformedRecordError{Source: "collaborative purchase", Field: "_id"}
	}

	user := UserDetails{
		FirstName: "Collaborative",
		LastName:  "Purchase",
		Email:     "N/A",
		Phone:     "N/A",
		Address:   "N/A",
	}
	if enr.User != nil {
		user = UserDetails{
			FirstName: enr.User.FirstName,
			LastName:  enr.User.LastName,
			Email:     enr.User.Email,
			Phone:     enr.User.Phone,
			Address:   enr.User.Address,
		}
	}

	var items []Item
	if raw.IsMultiProduct && len(raw.Products) > 0 {
		items = make([]Item, 0, len(raw.Products))
		for i, p := range raw.Products {
			fallbackSKU := fmt.Sprintf("FALLBACK-SKU-%d", i)
			if p.Product != "" {
				fallbackSKU = "FALLBACK-SKU-" + utils.Last6(p.Product)
			}
			items = append(items, buildPurchaseItem(
				utils.FirstNonEmpty(p.ID, fmt.Sprintf("collab-product-%d", i)),
				p.Product,
				p.ProductName, p.ProductPrice, p.Quantity, p.Image,
				fallbackSKU,
				enr.Products[p.Product],
			))
		}
	} else {
		items = []Item{buildPurchaseItem(
			utils.FirstNonEmpty(raw.Product, "collab-item-"+raw.ID),
			raw.Product,
			raw.ProductName, raw.ProductPrice, raw.Quantity, "",
			"COLLAB-"+utils.Last6(raw.ID),
			enr.Products[raw.Product],
		)}
	}

	customerName := utils.FirstNonEmpty(
		strings.TrimSpace(user.FirstName+" "+user.LastName),
		"Collaborative Purchase",
	)

	return &View{
		ID:             raw.ID,
		ReferenceCode:  "COLLAB-" + utils.Last6(raw.ID),
		Status:         NormalizeStatus(raw.Status),
		PackingStatus:  PackingNotPacked,
		Priority:       PriorityNormal,
		OrderSource:    SourceCollaborative,
		PaymentMethod:  "collaborative_payment",
		OrderDate:      raw.CreatedAt,
		CreatedAt:      raw.CreatedAt,
		CustomerName:   customerName,
		CustomerPhone:  utils.FirstNonEmpty(user.Phone, "N/A"),
		CustomerEmail:  utils.FirstNonEmpty(user.Email, "N/A"),
		User:           &user,
		Items:          items,
		TotalAmount:    raw.TotalAmount,
		CODAmount:      0,
		Address:        utils.FirstNonEmpty(user.Address, "N/A"),
		BillingAddress: utils.FirstNonEmpty(user.Address, "N/A"),
		EstimatedTime:  "2-3 days",
		ShippingMethod: "standard",
	}, nil
}

// buildPurchaseItem merges the purchase-time snapshot of one product line
// with its product-database record, when that resolved.
func buildPurchaseItem(id, productRef, storedName string, storedPrice float64, storedQty int, storedImage, fallbackSKU string, db *backend.RawProduct) Item {
	qty := storedQty
	if qty <= 0 {
		qty = 1
	}

	item := Item{
		ID:          id,
		ProductRef:  productRef,
		Name:        utils.FirstNonEmpty(storedName, "Unknown Product"),
		Price:       storedPrice,
		Quantity:    qty,
		Image:       utils.FirstNonEmpty(storedImage, "/placeholder.svg"),
		SKU:         fallbackSKU,
		Category:    "Collaborative",
		Weight:      "1.0 lbs",
		StockStatus: "in_stock",
	}

	if db == nil {
		return item
	}

	item.Name = utils.FirstNonEmpty(db.Name, storedName, "Unknown Product")
	item.SKU = utils.FirstNonEmpty(db.SKU, fallbackSKU)
	item.Category = utils.FirstNonEmpty(categoryLabel(db), "Collaborative")
	item.Image = utils.FirstNonEmpty(db.Image, storedImage, "/placeholder.svg")
	if db.Price > 0 {
		item.Price = db.Price
	}

	return item
}

func categoryLabel(db *backend.RawProduct) string {
	if len(db.Categories) > 0 {
		return strings.Join(db.Categories, ", ")
	}
	return db.Category
}
