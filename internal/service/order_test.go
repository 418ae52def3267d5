package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/model"
)

type fakeOrderStore struct {
	lastItems []model.OrderItem
	lastTotal float64
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, userID uuid.UUID, items []model.OrderItem, totalAmount float64, stripeSessionID string) (*model.Order, error) {
	f.lastItems = items
	f.lastTotal = totalAmount
	return &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		StripeSessionID: stripeSessionID,
	}, nil
}

func (f *fakeOrderStore) GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return []model.Order{}, nil
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{})
	userID := uuid.New()

	cases := []struct {
		name  string
		items []model.OrderItem
	}{
		{"no items", nil},
		{"zero quantity", []model.OrderItem{{ProductID: uuid.New(), Quantity: 0, Price: 10}}},
		{"negative quantity", []model.OrderItem{{ProductID: uuid.New(), Quantity: -1, Price: 10}}},
		{"negative price", []model.OrderItem{{ProductID: uuid.New(), Quantity: 1, Price: -0.01}}},
	}
	for _, tc := range cases {
		_, err := svc.CreateOrder(context.Background(), userID, model.CreateOrderRequest{Items: tc.items})
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("%s: expected ErrInvalidOrder, got %v", tc.name, err)
		}
	}
}

func TestCreateOrderComputesTotal(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store)

	req := model.CreateOrderRequest{
		Items: []model.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, Price: 10.50},
			{ProductID: uuid.New(), Quantity: 3, Price: 4.00},
		},
	}
	order, err := svc.CreateOrder(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// The total is computed server-side, never taken from the client.
	want := 2*10.50 + 3*4.00
	if order.TotalAmount != want || store.lastTotal != want {
		t.Fatalf("total = %v, want %v", order.TotalAmount, want)
	}
	if len(store.lastItems) != 2 {
		t.Fatalf("items not passed through to store")
	}
}

func TestCreateOrderFreeItemAllowed(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{})

	req := model.CreateOrderRequest{
		Items: []model.OrderItem{{ProductID: uuid.New(), Quantity: 1, Price: 0}},
	}
	order, err := svc.CreateOrder(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.TotalAmount != 0 {
		t.Fatalf("total = %v, want 0", order.TotalAmount)
	}
}
