package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	StripeSessionID string      `json:"stripeSessionId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type CreateOrderRequest struct {
	Items           []OrderItem `json:"items"`
	StripeSessionID string      `json:"stripeSessionId"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}
