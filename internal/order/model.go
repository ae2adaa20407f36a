package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// paymentTransitions is the allowed payment-status graph. Failed payments
// may be retried; refunds only follow a successful payment.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentFailed:  {PaymentPending, PaymentPaid},
	PaymentPaid:    {PaymentRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// statusTransitions is the fulfillment graph. Delivered and Cancelled are
// terminal.
var statusTransitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customerId"`
	Total      decimal.Decimal  `json:"total"`
	Status     Status           `json:"status"`
	Payment    PaymentStatus    `json:"payment"`
	DueDate    time.Time        `json:"duedate"`
	CreatedBy  string           `json:"createdby"`
	CreatedAt  time.Time        `json:"createdAt"`
	ShippingID string           `json:"shippingId"`
	Shipping   *ShippingAddress `json:"shipping,omitempty"`
	Items      []OrderItem      `json:"items,omitempty"`
}

// OrderItem holds a weak product reference and an immutable unit-price
// snapshot taken at order time.
type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type ShippingAddress struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// Line is a requested {product, quantity} pair. The wire format also
// carries a client price which is never trusted.
type Line struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	Lines    []Line
	Shipping ShippingInput
}

type ShippingInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

type UpdateOrderInput struct {
	Status  *string
	Payment *string
	DueDate *string
}
