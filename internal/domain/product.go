package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanReserve reports whether amount units can be taken from stock.
func (p Product) CanReserve(amount int) bool {
	return amount > 0 && p.StockQuantity >= amount
}

// TotalFor is the order total for qty units at the product's current price.
func (p Product) TotalFor(qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}
