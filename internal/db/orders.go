package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/model"
)

func (db *Postgres) EnsureOrderSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			items JSONB NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
			stripe_session_id TEXT UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) CreateOrder(ctx context.Context, userID uuid.UUID, items []model.OrderItem, totalAmount float64, stripeSessionID string) (*model.Order, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	// Empty Stripe session IDs are stored as NULL so the unique
	// constraint only binds real checkout sessions.
	var sessionID *string
	if stripeSessionID != "" {
		sessionID = &stripeSessionID
	}

	query := `
		INSERT INTO orders (user_id, items, total_amount, stripe_session_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, user_id, items, total_amount, COALESCE(stripe_session_id, ''), created_at
	`
	return db.scanOrder(db.Pool.QueryRow(ctx, query, userID, itemsJSON, totalAmount, sessionID))
}

func (db *Postgres) GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT id, user_id, items, total_amount, COALESCE(stripe_session_id, ''), created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var list []model.Order
	for rows.Next() {
		order, err := db.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Order{}
	}
	return list, nil
}

func (db *Postgres) scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var order model.Order
	var itemsJSON []byte
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&itemsJSON,
		&order.TotalAmount,
		&order.StripeSessionID,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}
