package models

import (
	"errors"
	"fmt"
)

// OrderStatus is the processing state of an order.
type OrderStatus string

const (
	OrderStatusWaitingToProcess OrderStatus = "waiting_to_process"
	OrderStatusProcessed        OrderStatus = "processed"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus accepts only the three known status tokens.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusWaitingToProcess, OrderStatusProcessed, OrderStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, s)
	}
}

// Order is a purchase placed by a visitor through an affiliate link.
type Order struct {
	ID           int64       `json:"id"`
	ProductID    int64       `json:"product_id"`
	BloggerID    int64       `json:"blogger_id"`
	Quantity     int         `json:"quantity"`
	PricePerItem float64     `json:"price_per_item"`
	ClientPhone  string      `json:"client_phone"`
	Status       OrderStatus `json:"status"`
	CreatedAt    Timestamp   `json:"created_at"`
	UpdatedAt    *Timestamp  `json:"updated_at"`
}

// Total is the order amount.
func (o Order) Total() float64 {
	return float64(o.Quantity) * o.PricePerItem
}

func (o Order) String() string {
	return fmt.Sprintf("#%d blogger=%d qty=%d total=$%.2f phone=%s [%s]",
		o.ID, o.BloggerID, o.Quantity, o.Total(), o.ClientPhone, o.Status)
}

// OrderCreate is the payload of an anonymous order.
type OrderCreate struct {
	ProductID    int64   `json:"product_id" validate:"gt=0"`
	BloggerID    int64   `json:"blogger_id" validate:"gt=0"`
	Quantity     int     `json:"quantity" validate:"gte=1"`
	PricePerItem float64 `json:"price_per_item" validate:"gte=0"`
	ClientPhone  string  `json:"client_phone" validate:"required"`
}
