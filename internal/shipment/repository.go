package shipment

import (
	"context"
	"database/sql"
	"errors"

	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/purchase"

	"go.uber.org/zap"
)

// LineInfo carries the per-line weight data a shipment derivation needs.
type LineInfo struct {
	Quantity int
	WeightKg float64
}

// PurchaseInfo is the slice of a purchase the factory reads: money fields,
// destination, lines, and the origin farm of the first line item.
type PurchaseInfo struct {
	ID              int64
	Status          purchase.Status
	Subtotal        float64
	Taxes           float64
	DeliveryAddress string
	Lines           []LineInfo

	OriginAddress string
	OriginLat     float64
	OriginLon     float64
}

type Repository interface {
	GetPurchaseInfo(ctx context.Context, purchaseID int64) (*PurchaseInfo, error)

	// CreateShipmentTx persists the shipment and, in the same transaction,
	// closes the purchase: status PAID_OUT, shipping value and total
	// overwritten with the definitive cost.
	CreateShipmentTx(ctx context.Context, s *Shipment, purchaseTotal float64) error

	GetByID(ctx context.Context, id int64) (*Shipment, error)
	ListByStatus(ctx context.Context, status Status) ([]*Shipment, error)

	// UpdateCostsTx overwrites the derived fields of an existing shipment and
	// keeps the purchase money fields in sync.
	UpdateCostsTx(ctx context.Context, s *Shipment, purchaseTotal float64) error

	UpdateAssignment(ctx context.Context, id, carrierID, vehicleID int64, from Status) error
	UpdateFinalized(ctx context.Context, id int64, from Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPurchaseInfo(ctx context.Context, purchaseID int64) (*PurchaseInfo, error) {
	var info PurchaseInfo
	err := r.db.QueryRowContext(ctx, `
		SELECT id, status, subtotal, taxes, delivery_address
		FROM purchases
		WHERE id = $1
	`, purchaseID).Scan(&info.ID, &info.Status, &info.Subtotal, &info.Taxes, &info.DeliveryAddress)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT dl.quantity, pr.weight_kg
		FROM detail_lines dl
		JOIN products pr ON pr.id = dl.product_id
		WHERE dl.purchase_id = $1
		ORDER BY dl.id
	`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l LineInfo
		if err := rows.Scan(&l.Quantity, &l.WeightKg); err != nil {
			return nil, err
		}
		info.Lines = append(info.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(info.Lines) == 0 {
		return &info, nil
	}

	// The farm of the first line item determines the origin.
	err = r.db.QueryRowContext(ctx, `
		SELECT f.address, f.lat, f.lon
		FROM detail_lines dl
		JOIN products pr ON pr.id = dl.product_id
		JOIN farms f ON f.id = pr.farm_id
		WHERE dl.purchase_id = $1
		ORDER BY dl.id
		LIMIT 1
	`, purchaseID).Scan(&info.OriginAddress, &info.OriginLat, &info.OriginLon)
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (r *repository) CreateShipmentTx(ctx context.Context, s *Shipment, purchaseTotal float64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateShipmentTx"),
		zap.Int64("purchase_id", s.PurchaseID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Closing the purchase first doubles as the 1:1 guard: a purchase that is
	// already PAID_OUT cannot receive a second shipment.
	res, err := tx.ExecContext(ctx, `
		UPDATE purchases
		SET status = $1, shipping_value = $2, total = $3, updated_at = NOW()
		WHERE id = $4 AND status <> $1
	`, purchase.StatusPaidOut, s.TotalCost, purchaseTotal, s.PurchaseID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyShipped
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO shipments (
			purchase_id, status, origin_address, dest_address,
			origin_lat, origin_lon, dest_lat, dest_lon,
			total_weight_kg, distance_km, base_cost, weight_cost, total_cost,
			tracking_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at
	`,
		s.PurchaseID, s.Status, s.OriginAddress, s.DestAddress,
		s.OriginLat, s.OriginLon, s.DestLat, s.DestLon,
		s.TotalWeightKg, s.DistanceKm, s.BaseCost, s.WeightCost, s.TotalCost,
		s.TrackingNumber,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("shipment created",
		zap.Int64("shipment_id", s.ID),
		zap.String("tracking_number", s.TrackingNumber),
	)

	return nil
}

const shipmentColumns = `
	id, purchase_id, carrier_id, vehicle_id, status,
	origin_address, dest_address, origin_lat, origin_lon, dest_lat, dest_lon,
	total_weight_kg, distance_km, base_cost, weight_cost, total_cost,
	departure_date, delivery_date, tracking_number, created_at
`

func scanShipment(row interface{ Scan(...any) error }) (*Shipment, error) {
	var s Shipment
	err := row.Scan(
		&s.ID, &s.PurchaseID, &s.CarrierID, &s.VehicleID, &s.Status,
		&s.OriginAddress, &s.DestAddress, &s.OriginLat, &s.OriginLon, &s.DestLat, &s.DestLon,
		&s.TotalWeightKg, &s.DistanceKm, &s.BaseCost, &s.WeightCost, &s.TotalCost,
		&s.DepartureDate, &s.DeliveryDate, &s.TrackingNumber, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Shipment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)

	s, err := scanShipment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repository) ListByStatus(ctx context.Context, status Status) ([]*Shipment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shipmentColumns+` FROM shipments WHERE status = $1 ORDER BY created_at
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []*Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, rows.Err()
}

func (r *repository) UpdateCostsTx(ctx context.Context, s *Shipment, purchaseTotal float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		UPDATE shipments
		SET dest_address = $1, dest_lat = $2, dest_lon = $3,
		    total_weight_kg = $4, distance_km = $5,
		    base_cost = $6, weight_cost = $7, total_cost = $8
		WHERE id = $9
	`, s.DestAddress, s.DestLat, s.DestLon,
		s.TotalWeightKg, s.DistanceKm,
		s.BaseCost, s.WeightCost, s.TotalCost, s.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE purchases
		SET shipping_value = $1, total = $2, updated_at = NOW()
		WHERE id = $3
	`, s.TotalCost, purchaseTotal, s.PurchaseID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

func (r *repository) UpdateAssignment(ctx context.Context, id, carrierID, vehicleID int64, from Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shipments
		SET status = $1, carrier_id = $2, vehicle_id = $3, departure_date = NOW()
		WHERE id = $4 AND status = $5
	`, StatusAssigned, carrierID, vehicleID, id, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) UpdateFinalized(ctx context.Context, id int64, from Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shipments
		SET status = $1, delivery_date = NOW()
		WHERE id = $2 AND status = $3
	`, StatusFinalized, id, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
