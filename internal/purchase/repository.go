package purchase

import (
	"context"
	"database/sql"
	"errors"

	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/shipping"

	"go.uber.org/zap"
)

type Repository interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, id int64) (*Purchase, error)
	ListByClient(ctx context.Context, clientID int64) ([]*Purchase, error)

	// AddLineTx decrements stock, inserts the line and recomputes the whole
	// purchase inside one transaction. No partial effect survives a failure.
	AddLineTx(ctx context.Context, purchaseID, productID int64, quantity int) (*DetailLine, error)

	// CancelPurchaseTx restores stock for every line, deletes the lines and
	// the purchase atomically. Missing purchases are a silent no-op.
	CancelPurchaseTx(ctx context.Context, purchaseID int64) error
}

type repository struct {
	db   *sql.DB
	calc *shipping.Calculator
}

func NewRepository(db *sql.DB, calc *shipping.Calculator) Repository {
	return &repository{db: db, calc: calc}
}

func (r *repository) CreatePurchase(ctx context.Context, p *Purchase) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO purchases (
			client_id, status, subtotal, taxes, shipping_value, total,
			delivery_address, payment_method
		) VALUES ($1, $2, 0, 0, 0, 0, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.ClientID, p.Status, p.DeliveryAddress, p.PaymentMethod).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) GetPurchase(ctx context.Context, id int64) (*Purchase, error) {
	var p Purchase
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, status, subtotal, taxes, shipping_value, total,
		       delivery_address, payment_method, created_at, updated_at
		FROM purchases
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.ClientID, &p.Status, &p.Subtotal, &p.Taxes, &p.ShippingValue,
		&p.Total, &p.DeliveryAddress, &p.PaymentMethod, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT dl.id, dl.product_id, pr.name, dl.quantity, dl.unit_price, dl.subtotal
		FROM detail_lines dl
		JOIN products pr ON pr.id = dl.product_id
		WHERE dl.purchase_id = $1
		ORDER BY dl.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := DetailLine{PurchaseID: p.ID}
		if err := rows.Scan(
			&line.ID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.UnitPrice, &line.Subtotal,
		); err != nil {
			return nil, err
		}
		p.Lines = append(p.Lines, line)
	}

	return &p, rows.Err()
}

func (r *repository) ListByClient(ctx context.Context, clientID int64) ([]*Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, status, subtotal, taxes, shipping_value, total,
		       delivery_address, payment_method, created_at, updated_at
		FROM purchases
		WHERE client_id = $1
		ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(
			&p.ID, &p.ClientID, &p.Status, &p.Subtotal, &p.Taxes, &p.ShippingValue,
			&p.Total, &p.DeliveryAddress, &p.PaymentMethod, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, &p)
	}

	return purchases, rows.Err()
}

func (r *repository) AddLineTx(ctx context.Context, purchaseID, productID int64, quantity int) (*DetailLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "AddLineTx"),
		zap.Int64("purchase_id", purchaseID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Lock the purchase row first, products second. Every writer takes locks
	// in this order.
	var status Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM purchases WHERE id = $1 FOR UPDATE
	`, purchaseID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	if status == StatusPaidOut {
		return nil, ErrPurchaseClosed
	}

	var price float64
	err = tx.QueryRowContext(ctx, `
		SELECT price FROM products WHERE id = $1 FOR UPDATE
	`, productID).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	// Conditional decrement: never drives stock below zero, even under
	// concurrent adds racing on the same product.
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, quantity, productID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		log.Warn("stock decrement rejected")
		return nil, ErrInsufficientStock
	}

	line := &DetailLine{
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  price,
		Subtotal:   shipping.Round2(float64(quantity) * price),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO detail_lines (purchase_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, line.PurchaseID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal).
		Scan(&line.ID)
	if err != nil {
		return nil, err
	}

	// Full recompute from every line of the purchase, not an incremental
	// update: totals stay consistent with the lines no matter what.
	lines, err := fetchLineTotals(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	totals := computeTotals(lines, r.calc)

	_, err = tx.ExecContext(ctx, `
		UPDATE purchases
		SET status = $1, subtotal = $2, taxes = $3, shipping_value = $4, total = $5, updated_at = NOW()
		WHERE id = $6
	`, StatusActive, totals.Subtotal, totals.Taxes, totals.ShippingValue, totals.Total, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	log.Info("line added",
		zap.Int64("line_id", line.ID),
		zap.Float64("purchase_total", totals.Total),
	)

	return line, nil
}

func (r *repository) CancelPurchaseTx(ctx context.Context, purchaseID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CancelPurchaseTx"),
		zap.Int64("purchase_id", purchaseID),
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

	var status Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM purchases WHERE id = $1 FOR UPDATE
	`, purchaseID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		// Cancelling something that is already gone succeeds silently.
		return nil
	}
	if err != nil {
		return err
	}
	if status == StatusPaidOut {
		return ErrPurchaseClosed
	}

	// Restitution: give every line's quantity back to its product. Lines are
	// aggregated per product first; a purchase can hold several lines for the
	// same product, and UPDATE ... FROM applies at most one join row per
	// target row.
	_, err = tx.ExecContext(ctx, `
		UPDATE products p
		SET stock = p.stock + dl.qty
		FROM (
			SELECT product_id, SUM(quantity) AS qty
			FROM detail_lines
			WHERE purchase_id = $1
			GROUP BY product_id
		) dl
		WHERE dl.product_id = p.id
	`, purchaseID)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM detail_lines WHERE purchase_id = $1
	`, purchaseID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM purchases WHERE id = $1
	`, purchaseID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true

	log.Info("purchase cancelled, stock restored")
	return nil
}

func fetchLineTotals(ctx context.Context, tx *sql.Tx, purchaseID int64) ([]lineTotals, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT dl.quantity, dl.subtotal, pr.weight_kg
		FROM detail_lines dl
		JOIN products pr ON pr.id = dl.product_id
		WHERE dl.purchase_id = $1
	`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []lineTotals
	for rows.Next() {
		var l lineTotals
		if err := rows.Scan(&l.Quantity, &l.Subtotal, &l.WeightKg); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}
