package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type OrderType string

const (
	OrderTypeCart   OrderType = "cart"
	OrderTypeCustom OrderType = "custom"
)

// Location is a GPS fix shared by the customer.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapURL links to the location on Google Maps.
func (l Location) MapURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", l.Lat, l.Lng)
}

// Order is either a cart checkout (items and total set) or a custom delivery
// request (no items, total 0, address and note set).
type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId,omitempty"`
	CustomerName string          `json:"customerName"`
	Contact      string          `json:"contact"`
	Items        []CartItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	Type         OrderType       `json:"type"`
	Address      string          `json:"address,omitempty"`
	Note         string          `json:"note,omitempty"`
	Location     *Location       `json:"location,omitempty"`
	ShipperID    string          `json:"shipperId,omitempty"`
}
