package purchase

import (
	"context"
	"database/sql"
	"testing"

	"agrocampo-be/internal/shipping"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db, shipping.NewCalculator(shipping.DefaultRates())), mock
}

func TestAddLineTx_Success(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("DRAFT"))
	mock.ExpectQuery(`SELECT price FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(4500.0))
	mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1\s+WHERE id = \$2 AND stock >= \$1`).
		WithArgs(2, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO detail_lines`).
		WithArgs(int64(1), int64(5), 2, 4500.0, 9000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT dl.quantity, dl.subtotal, pr.weight_kg`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "subtotal", "weight_kg"}).
			AddRow(2, 9000.0, 0.5))
	// subtotal 9000, taxes 720, shipping floor 20000, total 29720
	mock.ExpectExec(`UPDATE purchases`).
		WithArgs(StatusActive, 9000.0, 720.0, 20000.0, 29720.0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	line, err := repo.AddLineTx(ctx, 1, 5, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(10), line.ID)
	assert.Equal(t, 4500.0, line.UnitPrice)
	assert.Equal(t, 9000.0, line.Subtotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLineTx_InsufficientStockRollsBack(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
	mock.ExpectQuery(`SELECT price FROM products`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(4500.0))
	mock.ExpectExec(`UPDATE products`).
		WithArgs(50, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.AddLineTx(context.Background(), 1, 5, 50)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLineTx_PurchaseNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AddLineTx(context.Background(), 99, 5, 1)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestAddLineTx_ProductNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("DRAFT"))
	mock.ExpectQuery(`SELECT price FROM products`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.AddLineTx(context.Background(), 1, 404, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddLineTx_PaidOutPurchaseRejected(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PAID_OUT"))
	mock.ExpectRollback()

	_, err := repo.AddLineTx(context.Background(), 1, 5, 1)
	assert.ErrorIs(t, err, ErrPurchaseClosed)
}

func TestCancelPurchaseTx_RestoresStockAndDeletes(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
	mock.ExpectExec(`UPDATE products p\s+SET stock = p.stock \+ dl.qty\s+FROM \(\s+SELECT product_id, SUM\(quantity\) AS qty\s+FROM detail_lines\s+WHERE purchase_id = \$1\s+GROUP BY product_id\s+\) dl\s+WHERE dl.product_id = p.id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM detail_lines WHERE purchase_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM purchases WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelPurchaseTx(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A purchase may hold two lines for the same product (adding a product twice
// never merges lines). Restitution must sum quantities per product before the
// update, so the single product row gets the whole amount back.
func TestCancelPurchaseTx_SumsDuplicateProductLines(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
	// Two detail_lines rows for one product collapse into one updated row.
	mock.ExpectExec(`SET stock = p.stock \+ dl.qty\s+FROM \(\s+SELECT product_id, SUM\(quantity\) AS qty\s+FROM detail_lines\s+WHERE purchase_id = \$1\s+GROUP BY product_id`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM detail_lines WHERE purchase_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM purchases WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelPurchaseTx(context.Background(), 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPurchaseTx_MissingPurchaseIsNoop(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.CancelPurchaseTx(context.Background(), 42)
	assert.NoError(t, err)
}

func TestCancelPurchaseTx_PaidOutRejected(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM purchases`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PAID_OUT"))
	mock.ExpectRollback()

	err := repo.CancelPurchaseTx(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPurchaseClosed)
}

func TestGetPurchase_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, client_id, status`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPurchase(context.Background(), 7)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}
