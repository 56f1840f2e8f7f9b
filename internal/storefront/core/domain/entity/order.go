package entity

import "github.com/shopspring/decimal"

// DeliveryStatus is the lifecycle state of a single delivery line.
type DeliveryStatus string

const (
	StatusPending        DeliveryStatus = "pending"
	StatusConfirmed      DeliveryStatus = "confirmed"
	StatusProcessing     DeliveryStatus = "processing"
	StatusShipped        DeliveryStatus = "shipped"
	StatusOutForDelivery DeliveryStatus = "out_for_delivery"
	StatusDelivered      DeliveryStatus = "delivered"
	StatusCancelled      DeliveryStatus = "cancelled"
	StatusReturned       DeliveryStatus = "returned"
)

// DeliveryStatuses lists every status the shop dashboard may transition
// an order to, in display order.
var DeliveryStatuses = []DeliveryStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

func (s DeliveryStatus) IsValid() bool {
	for _, known := range DeliveryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Delivery is the customer-facing projection of a single fulfillment
// line. AddressSnapshot is captured at order time and stays frozen even
// if the user later edits their profile address.
type Delivery struct {
	ID              int64           `json:"id"`
	OrderName       string          `json:"order_name"`
	Product         int64           `json:"product"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	AddressSnapshot string          `json:"address_snapshot"`
	Status          DeliveryStatus  `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

// ProductRef is the embedded product summary on a dashboard order row.
type ProductRef struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ShopOrder is the shopkeeper-facing projection of a delivery: the same
// record as Delivery but joined with customer fields by the backend.
type ShopOrder struct {
	ID              int64           `json:"id"`
	UserFirstName   string          `json:"user_first_name"`
	UserLastName    string          `json:"user_last_name"`
	UserEmail       string          `json:"user_email"`
	Product         ProductRef      `json:"product"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	AddressSnapshot string          `json:"address_snapshot"`
	Status          DeliveryStatus  `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

// Invoice aggregates one or more deliveries billed together. Customer
// fields are snapshots taken at invoicing time.
type Invoice struct {
	ID              int64           `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	Deliveries      []Delivery      `json:"deliveries,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerEmail   string          `json:"customer_email,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	UserFirstName   string          `json:"user_first_name,omitempty"`
	UserLastName    string          `json:"user_last_name,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}
