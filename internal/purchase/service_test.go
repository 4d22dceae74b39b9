package purchase

import (
	"context"
	"testing"

	"agrocampo-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePurchase(ctx context.Context, p *Purchase) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *MockRepository) GetPurchase(ctx context.Context, id int64) (*Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Purchase), args.Error(1)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID int64) ([]*Purchase, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Purchase), args.Error(1)
}

func (m *MockRepository) AddLineTx(ctx context.Context, purchaseID, productID int64, quantity int) (*DetailLine, error) {
	args := m.Called(ctx, purchaseID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DetailLine), args.Error(1)
}

func (m *MockRepository) CancelPurchaseTx(ctx context.Context, purchaseID int64) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestCreatePurchase_Success(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	svc := NewService(repo, users)

	users.On("GetByID", mock.Anything, int64(9)).
		Return(&user.User{ID: 9, Role: user.RoleClient}, nil)
	repo.On("CreatePurchase", mock.Anything, mock.AnythingOfType("*purchase.Purchase")).
		Return(nil)

	p, err := svc.CreatePurchase(context.Background(), CreatePurchaseParams{
		ClientID:        9,
		PaymentMethod:   "CONTRA_ENTREGA",
		DeliveryAddress: "  Calle 10 #5-51, Bogotá  ",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, 0.0, p.Total)
	assert.Equal(t, "Calle 10 #5-51, Bogotá", p.DeliveryAddress)
	repo.AssertExpectations(t)
}

func TestCreatePurchase_ClientNotFound(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserRepository)
	svc := NewService(repo, users)

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, user.ErrUserNotFound)

	_, err := svc.CreatePurchase(context.Background(), CreatePurchaseParams{ClientID: 404})

	assert.ErrorIs(t, err, ErrClientNotFound)
	repo.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func TestAddLine_InvalidQuantity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockUserRepository))

	_, err := svc.AddLine(context.Background(), 1, 5, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddLine(context.Background(), 1, 5, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	repo.AssertNotCalled(t, "AddLineTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddLine_DelegatesToRepository(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockUserRepository))

	want := &DetailLine{ID: 3, PurchaseID: 1, ProductID: 5, Quantity: 2, UnitPrice: 4500, Subtotal: 9000}
	repo.On("AddLineTx", mock.Anything, int64(1), int64(5), 2).Return(want, nil)

	line, err := svc.AddLine(context.Background(), 1, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, want, line)
}

func TestCancelPurchase(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockUserRepository))

	repo.On("CancelPurchaseTx", mock.Anything, int64(1)).Return(nil)

	assert.NoError(t, svc.CancelPurchase(context.Background(), 1))
	repo.AssertExpectations(t)
}
