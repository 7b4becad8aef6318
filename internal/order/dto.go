package order

import (
	"time"

	"vincula/internal/domain"
)

type CreateOrderRequest struct {
	ProductID  string `json:"product_id"`
	CustomerID string `json:"customer_id"`
	Quantity   int    `json:"quantity"`
}

type UpdateOrderRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderDTO struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	CustomerID string    `json:"customer_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type StatusDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func toDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID.String(),
		ProductID:  o.ProductID.String(),
		CustomerID: o.CustomerID.String(),
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
