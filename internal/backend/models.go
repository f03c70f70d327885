package backend

import "time"

// RawUser is the account record nested in orders and resolved per purchase.
type RawUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type RawOrderItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// RawOrder is one direct order as the backend returns it.
type RawOrder struct {
	ID             string         `json:"_id"`
	Status         string         `json:"status"`
	Total          float64        `json:"total"`
	OrderedAt      time.Time      `json:"orderedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	User           *RawUser       `json:"user"`
	Items          []RawOrderItem `json:"items"`
	DeliveryNotes  string         `json:"deliveryNotes"`
	TrackingNumber string         `json:"trackingNumber"`
}

// RawPurchaseProduct is one product line inside a multi-product purchase.
type RawPurchaseProduct struct {
	ID           string  `json:"_id"`
	Product      string  `json:"product"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	Quantity     int     `json:"quantity"`
	Image        string  `json:"image"`
}

type Participant struct {
	Email         string `json:"email"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentLink   string `json:"paymentLink"`
}

// RawPurchase is a collaborative purchase. Single-product purchases keep
// their line inline (Product/ProductName/...); multi-product ones carry a
// Products slice. Both are the same wire shape with different field use.
type RawPurchase struct {
	ID             string               `json:"_id"`
	Status         string               `json:"status"`
	TotalAmount    float64              `json:"totalAmount"`
	ShareAmount    float64              `json:"shareAmount"`
	IsMultiProduct bool                 `json:"isMultiProduct"`
	Products       []RawPurchaseProduct `json:"products"`
	Product        string               `json:"product"`
	ProductName    string               `json:"productName"`
	ProductPrice   float64              `json:"productPrice"`
	Quantity       int                  `json:"quantity"`
	CreatedBy      string               `json:"createdBy"`
	CreatedAt      time.Time            `json:"createdAt"`
	Deadline       time.Time            `json:"deadline"`
	Participants   []Participant        `json:"participants"`
}

// RawProduct is the product-database detail record used for enrichment.
type RawProduct struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Categories  []string `json:"categories"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Quantity    int      `json:"quantity"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
}

type StockItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
