package farm

import (
	"context"
	"database/sql"
	"errors"
)

var ErrFarmNotFound = errors.New("farm not found")

type Repository interface {
	Create(ctx context.Context, f *Farm) error
	GetByID(ctx context.Context, id int64) (*Farm, error)
	ListByProducer(ctx context.Context, producerID int64) ([]*Farm, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Farm) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO farms (producer_id, name, address, lat, lon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, f.ProducerID, f.Name, f.Address, f.Lat, f.Lon).
		Scan(&f.ID, &f.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Farm, error) {
	var f Farm
	err := r.db.QueryRowContext(ctx, `
		SELECT id, producer_id, name, address, lat, lon, created_at
		FROM farms
		WHERE id = $1
	`, id).Scan(&f.ID, &f.ProducerID, &f.Name, &f.Address, &f.Lat, &f.Lon, &f.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFarmNotFound
	}
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *repository) ListByProducer(ctx context.Context, producerID int64) ([]*Farm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, producer_id, name, address, lat, lon, created_at
		FROM farms
		WHERE producer_id = $1
		ORDER BY id
	`, producerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var farms []*Farm
	for rows.Next() {
		var f Farm
		if err := rows.Scan(&f.ID, &f.ProducerID, &f.Name, &f.Address, &f.Lat, &f.Lon, &f.CreatedAt); err != nil {
			return nil, err
		}
		farms = append(farms, &f)
	}

	return farms, rows.Err()
}
