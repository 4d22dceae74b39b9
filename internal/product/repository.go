package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) error
	ProducerOwns(ctx context.Context, producerID, farmID int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (farm_id, category_id, name, description, price, stock, weight_kg, status, imageurl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, p.FarmID, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.WeightKg, p.Status, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, farm_id, category_id, name, description, price, stock, weight_kg, status, imageurl, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.FarmID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.WeightKg, &p.Status, &p.ImageURL, &p.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	query := `
		SELECT id, farm_id, category_id, name, description, price, stock, weight_kg, status, imageurl, created_at
		FROM products
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if opts.OnlyActive {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, StatusActive)
		argIndex++
	}
	if opts.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIndex)
		args = append(args, *opts.CategoryID)
		argIndex++
	}
	if opts.FarmID != nil {
		query += fmt.Sprintf(" AND farm_id = $%d", argIndex)
		args = append(args, *opts.FarmID)
		argIndex++
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.FarmID, &p.CategoryID, &p.Name, &p.Description,
			&p.Price, &p.Stock, &p.WeightKg, &p.Status, &p.ImageURL, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *repository) UpdateStock(ctx context.Context, id int64, stock int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = $1 WHERE id = $2
	`, stock, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ProducerOwns(ctx context.Context, producerID, farmID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM farms WHERE id = $1 AND producer_id = $2)
	`, farmID, producerID).Scan(&ok)
	return ok, err
}
