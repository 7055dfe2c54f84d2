package order

import "time"

// Unknown is the display default for customer fields the upstream never sent.
// Downstream must treat it as "no data", never as an empty-but-valid value.
const Unknown = "N/A"

// Record is the canonical in-memory order. It is rebuilt wholesale on every
// refresh; nothing mutates a stored record in place except the local Deleted
// toggle used by the delete/restore flows.
type Record struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	Address  Address   `json:"address"`
	Items    []Item    `json:"items"`
	Payments []Payment `json:"payments"`

	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingCost   float64 `json:"shippingCost"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`

	IsCancelled bool   `json:"isCancelled"`
	IsDelivered bool   `json:"isDelivered"`
	IsShipped   bool   `json:"isShipped"`
	CancelledAt string `json:"cancelledAt,omitempty"`
	DeliveredAt string `json:"deliveredAt,omitempty"`
	ShippedAt   string `json:"shippedAt,omitempty"`

	// Deleted is set optimistically ahead of refetch confirmation.
	Deleted bool `json:"deleted,omitempty"`
}

type Address struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Line            string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	ApartmentSuite  string `json:"apartmentSuite"`
	AddressType     string `json:"addressType"`
	AdditionalNotes string `json:"additionalNotes"`
}

type Item struct {
	Name               string  `json:"name"`
	Quantity           int     `json:"quantity"`
	Price              float64 `json:"price"`
	TotalPrice         float64 `json:"totalPrice"`
	Size               string  `json:"size,omitempty"`
	Color              string  `json:"color,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	OriginalPrice      float64 `json:"originalPrice,omitempty"`
	Image              string  `json:"image,omitempty"`
}

type Payment struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Status Status  `json:"status"`
	Method string  `json:"method"`
}

// ItemsTotal is the fallback total used when the upstream omits the financial
// breakdown: the sum of price x quantity across line items.
func (r Record) ItemsTotal() float64 {
	var sum float64
	for _, it := range r.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
