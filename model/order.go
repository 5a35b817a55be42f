package model

import (
	"fmt"
	"strings"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every known status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

// ParseOrderStatus validates s against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range OrderStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID string  `json:"productId" yaml:"productId"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Price     float64 `json:"price" yaml:"price"`
	Subtotal  float64 `json:"subtotal" yaml:"subtotal"`
}

// Order is a placed order.
type Order struct {
	ID        string      `json:"id" yaml:"id"`
	UserID    string      `json:"userId" yaml:"userId"`
	Items     []OrderItem `json:"items" yaml:"items"`
	Total     float64     `json:"total" yaml:"total"`
	Status    OrderStatus `json:"status" yaml:"status"`
	CreatedAt Timestamp   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt Timestamp   `json:"updatedAt" yaml:"updatedAt"`
}

// OrderFilters narrows an order listing.
type OrderFilters struct {
	Statuses []OrderStatus
}

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Orders []Order `json:"orders" yaml:"orders"`
	Total  int     `json:"total" yaml:"total"`
	Page   int     `json:"page" yaml:"page"`
	Limit  int     `json:"limit" yaml:"limit"`
}

// CreateOrderRequest is the body of the create-order call.
type CreateOrderRequest struct {
	Items []CartItem `json:"items" validate:"required,min=1,dive"`
}
