package order

import (
	"strings"
	"time"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusAccepted   Status = "accepted"
	StatusPacking    Status = "packing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Known reports whether the status is one of the enumerated values.
func (s Status) Known() bool {
	switch s {
	case StatusProcessing, StatusAccepted, StatusPacking,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Display renders the status for operators. Unrecognized values render as
// "Unknown" rather than failing.
func (s Status) Display() string {
	if !s.Known() {
		return "Unknown"
	}
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

type PackingStatus string

const (
	PackingNotPacked  PackingStatus = "not_packed"
	PackingInProgress PackingStatus = "packing_in_progress"
	PackingPacked     PackingStatus = "packed"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Order sources. SourceCollaborative is a recognized special value that
// alters downstream styling and payment semantics.
const (
	SourceWeb           = "web"
	SourceCollaborative = "Collaborative Purchase"
)

// UserDetails is the canonical account record, when resolvable.
type UserDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type Item struct {
	ID          string  `json:"id"`
	ProductRef  string  `json:"product"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Weight      string  `json:"weight"`
	StockStatus string  `json:"status"`
}

// View is the unified order shape the dashboard operates on, built fresh on
// every reconciliation pass. Local mutations live only in the in-memory list.
type View struct {
	ID                  string        `json:"id"`
	ReferenceCode       string        `json:"referenceCode"`
	Status              Status        `json:"status"`
	PackingStatus       PackingStatus `json:"packingStatus"`
	Priority            Priority      `json:"priority"`
	OrderSource         string        `json:"orderSource"`
	PaymentMethod       string        `json:"paymentMethod"`
	OrderDate           time.Time     `json:"orderDate"`
	CreatedAt           time.Time     `json:"createdAt"`
	CustomerName        string        `json:"customerName"`
	CustomerPhone       string        `json:"customerPhone"`
	CustomerEmail       string        `json:"customerEmail"`
	User                *UserDetails  `json:"user,omitempty"`
	Items               []Item        `json:"items"`
	TotalAmount         float64       `json:"totalAmount"`
	CODAmount           float64       `json:"codAmount"`
	IsGift              bool          `json:"isGift"`
	GiftWrap            bool          `json:"giftWrap"`
	GiftMessage         string        `json:"giftMessage"`
	Address             string        `json:"address"`
	BillingAddress      string        `json:"billingAddress"`
	EstimatedTime       string        `json:"estimatedTime"`
	ShippingMethod      string        `json:"shippingMethod"`
	SpecialInstructions string        `json:"specialInstructions"`
	CustomerNotes       string        `json:"customerNotes"`
	InternalNotes       string        `json:"internalNotes"`
	AssignedStaff       string        `json:"assignedStaff"`
	TrackingNumber      string        `json:"trackingNumber"`
	DeliveryNotes       string        `json:"deliveryNotes"`
}

// Subtotal sums item price times quantity.
func (v *View) Subtotal() float64 {
	var sum float64
	for _, it := range v.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// TotalItems sums item quantities.
func (v *View) TotalItems() int {
	var sum int
	for _, it := range v.Items {
		sum += it.Quantity
	}
	return sum
}

// Clone returns a copy of the view with its own items slice.
func (v *View) Clone() *View {
	cp := *v
	if v.User != nil {
		u := *v.User
		cp.User = &u
	}
	cp.Items = make([]Item, len(v.Items))
	copy(cp.Items, v.Items)
	return &cp
}
