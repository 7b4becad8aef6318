package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusProcessed OrderStatus = "processed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// validNext drives the order lifecycle. Transitions happen only through
// explicit status-update requests; nothing auto-advances.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusProcessed: true, OrderStatusShipped: true, OrderStatusDelivered: true, OrderStatusCanceled: true},
	OrderStatusProcessed: {OrderStatusShipped: true, OrderStatusDelivered: true, OrderStatusCanceled: true},
	OrderStatusShipped:   {OrderStatusDelivered: true},
	OrderStatusDelivered: {},
	OrderStatusCanceled:  {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// HoldsStock reports whether an order in status s still holds its reserved
// quantity against the product. Canceled orders have released it; delivered
// orders have consumed it.
func (s OrderStatus) HoldsStock() bool {
	return s == OrderStatusPending || s == OrderStatusProcessed || s == OrderStatusShipped
}

type Order struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	ProductID  uuid.UUID
	CustomerID uuid.UUID
	Quantity   int
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Mutable reports whether quantity/status edits are still allowed.
// Shipped orders are locked even though shipped is not terminal.
func (o Order) Mutable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessed
}
