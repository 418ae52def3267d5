package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/model"
)

var ErrInvalidOrder = errors.New("invalid order")

// OrderStore is the order storage collaborator.
type OrderStore interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, items []model.OrderItem, totalAmount float64, stripeSessionID string) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}

type OrderService struct {
	repo OrderStore
}

func NewOrderService(repo OrderStore) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrder stores an order for the user. The total is computed
// server-side from the submitted line items.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req model.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrInvalidOrder
	}

	var total float64
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Price < 0 {
			return nil, ErrInvalidOrder
		}
		total += float64(item.Quantity) * item.Price
	}

	return s.repo.CreateOrder(ctx, userID, req.Items, total, req.StripeSessionID)
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}
