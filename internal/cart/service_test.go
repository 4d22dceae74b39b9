package cart

import (
	"context"
	"testing"

	"agrocampo-be/internal/product"
	"agrocampo-be/internal/purchase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetItem(ctx context.Context, clientID, productID int64) (*Item, error) {
	args := m.Called(ctx, clientID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, params AddParams) (*Item, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*Item, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) RemoveItem(ctx context.Context, clientID, productID int64) error {
	args := m.Called(ctx, clientID, productID)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, clientID int64) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockRepository) GetCartRows(ctx context.Context, clientID int64) ([]Row, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) UpdateStock(ctx context.Context, producerID, productID int64, stock int) (*product.Product, error) {
	args := m.Called(ctx, producerID, productID, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) CreatePurchase(ctx context.Context, params purchase.CreatePurchaseParams) (*purchase.Purchase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseService) AddLine(ctx context.Context, purchaseID, productID int64, quantity int) (*purchase.DetailLine, error) {
	args := m.Called(ctx, purchaseID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.DetailLine), args.Error(1)
}

func (m *MockPurchaseService) CancelPurchase(ctx context.Context, purchaseID int64) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseService) GetPurchase(ctx context.Context, purchaseID int64) (*purchase.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseService) ListByClient(ctx context.Context, clientID int64) ([]*purchase.Purchase, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*purchase.Purchase), args.Error(1)
}

func newTestService() (Service, *MockRepository, *MockProductService, *MockPurchaseService) {
	repo := new(MockRepository)
	products := new(MockProductService)
	purchases := new(MockPurchaseService)
	return NewService(repo, products, purchases), repo, products, purchases
}

func activeProduct() *product.Product {
	return &product.Product{ID: 5, Name: "Café de origen", Price: 32000, Stock: 10, Status: product.StatusActive}
}

func TestAddToCart_NewItem(t *testing.T) {
	svc, repo, products, _ := newTestService()

	products.On("GetByID", mock.Anything, int64(5)).Return(activeProduct(), nil)
	repo.On("GetItem", mock.Anything, int64(9), int64(5)).Return(nil, nil)
	repo.On("CreateItem", mock.Anything, AddParams{ClientID: 9, ProductID: 5, Quantity: 2}).
		Return(&Item{ID: 1, ClientID: 9, ProductID: 5, Quantity: 2}, nil)

	item, err := svc.AddToCart(context.Background(), AddParams{ClientID: 9, ProductID: 5, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	repo.AssertExpectations(t)
}

func TestAddToCart_AccumulatesQuantity(t *testing.T) {
	svc, repo, products, _ := newTestService()

	products.On("GetByID", mock.Anything, int64(5)).Return(activeProduct(), nil)
	repo.On("GetItem", mock.Anything, int64(9), int64(5)).
		Return(&Item{ID: 1, ClientID: 9, ProductID: 5, Quantity: 3}, nil)
	repo.On("UpdateItemQuantity", mock.Anything, int64(1), 5).
		Return(&Item{ID: 1, ClientID: 9, ProductID: 5, Quantity: 5}, nil)

	item, err := svc.AddToCart(context.Background(), AddParams{ClientID: 9, ProductID: 5, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	svc, repo, products, _ := newTestService()

	products.On("GetByID", mock.Anything, int64(5)).Return(activeProduct(), nil)
	repo.On("GetItem", mock.Anything, int64(9), int64(5)).
		Return(&Item{ID: 1, Quantity: 9}, nil)

	_, err := svc.AddToCart(context.Background(), AddParams{ClientID: 9, ProductID: 5, Quantity: 2})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddToCart_InactiveProductRejected(t *testing.T) {
	svc, _, products, _ := newTestService()

	p := activeProduct()
	p.Status = product.StatusDisable
	products.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	_, err := svc.AddToCart(context.Background(), AddParams{ClientID: 9, ProductID: 5, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	svc, _, products, _ := newTestService()

	_, err := svc.AddToCart(context.Background(), AddParams{ClientID: 9, ProductID: 5, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	svc, repo, _, _ := newTestService()

	repo.On("RemoveItem", mock.Anything, int64(9), int64(5)).Return(nil)

	err := svc.UpdateQuantity(context.Background(), UpdateParams{ClientID: 9, ProductID: 5, Quantity: 0})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCheckout_Success(t *testing.T) {
	svc, repo, _, purchases := newTestService()

	rows := []Row{
		{Item: Item{ProductID: 5, Quantity: 2}},
		{Item: Item{ProductID: 8, Quantity: 1}},
	}
	repo.On("GetCartRows", mock.Anything, int64(9)).Return(rows, nil)
	purchases.On("CreatePurchase", mock.Anything, purchase.CreatePurchaseParams{
		ClientID: 9, PaymentMethod: "CONTRA_ENTREGA", DeliveryAddress: "Calle 10 #5-51",
	}).Return(&purchase.Purchase{ID: 7, ClientID: 9, Status: purchase.StatusDraft}, nil)
	purchases.On("AddLine", mock.Anything, int64(7), int64(5), 2).Return(&purchase.DetailLine{}, nil)
	purchases.On("AddLine", mock.Anything, int64(7), int64(8), 1).Return(&purchase.DetailLine{}, nil)
	repo.On("ClearCart", mock.Anything, int64(9)).Return(nil)
	purchases.On("GetPurchase", mock.Anything, int64(7)).
		Return(&purchase.Purchase{ID: 7, Status: purchase.StatusActive, Total: 43220}, nil)

	p, err := svc.Checkout(context.Background(), CheckoutParams{
		ClientID: 9, PaymentMethod: "CONTRA_ENTREGA", DeliveryAddress: "Calle 10 #5-51",
	})
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusActive, p.Status)
	repo.AssertExpectations(t)
	purchases.AssertExpectations(t)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, repo, _, purchases := newTestService()

	repo.On("GetCartRows", mock.Anything, int64(9)).Return([]Row{}, nil)

	_, err := svc.Checkout(context.Background(), CheckoutParams{ClientID: 9})
	assert.ErrorIs(t, err, ErrEmptyCart)
	purchases.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func TestCheckout_LineFailureCancelsPurchase(t *testing.T) {
	svc, repo, _, purchases := newTestService()

	rows := []Row{
		{Item: Item{ProductID: 5, Quantity: 2}},
		{Item: Item{ProductID: 8, Quantity: 50}},
	}
	repo.On("GetCartRows", mock.Anything, int64(9)).Return(rows, nil)
	purchases.On("CreatePurchase", mock.Anything, mock.Anything).
		Return(&purchase.Purchase{ID: 7, ClientID: 9}, nil)
	purchases.On("AddLine", mock.Anything, int64(7), int64(5), 2).Return(&purchase.DetailLine{}, nil)
	purchases.On("AddLine", mock.Anything, int64(7), int64(8), 50).
		Return(nil, purchase.ErrInsufficientStock)
	purchases.On("CancelPurchase", mock.Anything, int64(7)).Return(nil)

	_, err := svc.Checkout(context.Background(), CheckoutParams{ClientID: 9})
	assert.ErrorIs(t, err, purchase.ErrInsufficientStock)
	purchases.AssertCalled(t, "CancelPurchase", mock.Anything, int64(7))
	repo.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
}
