package cart

import (
	"context"
	"database/sql"
	"errors"

	"agrocampo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItem(ctx context.Context, clientID, productID int64) (*Item, error)
	CreateItem(ctx context.Context, params AddParams) (*Item, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, clientID, productID int64) error
	ClearCart(ctx context.Context, clientID int64) error
	GetCartRows(ctx context.Context, clientID int64) ([]Row, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, client_id, product_id, quantity, created_at, updated_at`

func scanItem(row *sql.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.ClientID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItem returns (nil, nil) when the client has no row for the product.
func (r *repository) GetItem(ctx context.Context, clientID, productID int64) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM cart_items
		WHERE client_id = $1 AND product_id = $2
	`, clientID, productID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repository) CreateItem(ctx context.Context, params AddParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateItem"),
		zap.Int64("client_id", params.ClientID),
		zap.Int64("product_id", params.ProductID),
	)

	it, err := scanItem(r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (client_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING `+itemColumns+`
	`, params.ClientID, params.ProductID, params.Quantity))
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	return it, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*Item, error) {
	return scanItem(r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+itemColumns+`
	`, quantity, itemID))
}

func (r *repository) RemoveItem(ctx context.Context, clientID, productID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE client_id = $1 AND product_id = $2
	`, clientID, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, clientID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE client_id = $1`, clientID)
	return err
}

func (r *repository) GetCartRows(ctx context.Context, clientID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.client_id, c.product_id, c.quantity, c.created_at, c.updated_at,
			p.name, p.price, p.stock, p.weight_kg
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.client_id = $1
		ORDER BY c.created_at
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID, &row.ClientID, &row.ProductID, &row.Quantity, &row.CreatedAt, &row.UpdatedAt,
			&row.ProductName, &row.UnitPrice, &row.Stock, &row.WeightKg,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
