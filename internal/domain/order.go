package domain

import "time"

// OrderStatus is the canonical upper-snake enum. Every writer goes through
// CanTransition; there is no other spelling.
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "PLACED"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderStatusRank = map[OrderStatus]int{
	OrderPlaced:         0,
	OrderConfirmed:      1,
	OrderShipped:        2,
	OrderOutForDelivery: 3,
	OrderDelivered:      4,
}

// ValidOrderStatus reports whether s is a member of the enum.
func ValidOrderStatus(s OrderStatus) bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Any forward move along PLACED..DELIVERED is legal, as is CANCELLED from any
// pre-delivery state. Re-asserting the current status is a no-op, not an error.
func CanTransition(from, to OrderStatus) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == OrderCancelled {
		return false
	}
	if to == OrderCancelled {
		return from != OrderDelivered
	}
	return orderStatusRank[to] > orderStatusRank[from]
}

// Order is the immutable terminal effect of a verified payment. Total and
// estimated delivery date are fixed at creation; shipping timestamps are
// stamped the first time a stage is reached and never overwritten.
type Order struct {
	ID                    string      `json:"id"`
	OrderID               string      `json:"orderId"`
	UserID                string      `json:"userId"`
	AddressID             *string     `json:"addressId,omitempty"`
	TotalCents            int64       `json:"totalCents"`
	Status                OrderStatus `json:"status"`
	Items                 []OrderItem `json:"items"`
	CreatedAt             time.Time   `json:"createdAt"`
	ShippedAt             *time.Time  `json:"shippedAt,omitempty"`
	OutForDeliveryAt      *time.Time  `json:"outForDeliveryAt,omitempty"`
	DeliveredAt           *time.Time  `json:"deliveredAt,omitempty"`
	EstimatedDeliveryDate time.Time   `json:"estimatedDeliveryDate"`
}

// OrderItem snapshots a cart item at materialization time. PriceCents is the
// product price captured once; later catalog changes do not touch it.
type OrderItem struct {
	ID         string   `json:"id"`
	OrderID    string   `json:"-"`
	ProductID  string   `json:"productId"`
	Size       string   `json:"size,omitempty"`
	Quantity   int      `json:"quantity"`
	PriceCents int64    `json:"priceCents"`
	Product    *Product `json:"product,omitempty"`
}
