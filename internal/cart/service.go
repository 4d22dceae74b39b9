package cart

import (
	"context"
	"errors"

	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/product"
	"agrocampo-be/internal/purchase"

	"go.uber.org/zap"
)

type Service interface {
	AddToCart(ctx context.Context, params AddParams) (*Item, error)
	GetCart(ctx context.Context, clientID int64) ([]Row, error)
	UpdateQuantity(ctx context.Context, params UpdateParams) error
	RemoveFromCart(ctx context.Context, clientID, productID int64) error
	ClearCart(ctx context.Context, clientID int64) error

	// Checkout converts the cart into a purchase: one detail line per cart
	// item, then the cart is emptied. If any line fails the purchase is
	// cancelled, which restores already-decremented stock.
	Checkout(ctx context.Context, params CheckoutParams) (*purchase.Purchase, error)
}

type service struct {
	repo        Repository
	productSvc  product.Service
	purchaseSvc purchase.Service
}

func NewService(repo Repository, productSvc product.Service, purchaseSvc purchase.Service) Service {
	return &service{repo: repo, productSvc: productSvc, purchaseSvc: purchaseSvc}
}

func (s *service) AddToCart(ctx context.Context, params AddParams) (*Item, error) {
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productSvc.GetByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if p.Status != product.StatusActive {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetItem(ctx, params.ClientID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	// Soft check only. The authoritative stock guard runs at checkout when
	// the detail line decrements stock.
	if p.Stock < finalQty {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, params)
	}
	return s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
}

func (s *service) GetCart(ctx context.Context, clientID int64) ([]Row, error) {
	return s.repo.GetCartRows(ctx, clientID)
}

func (s *service) UpdateQuantity(ctx context.Context, params UpdateParams) error {
	if params.Quantity <= 0 {
		return s.repo.RemoveItem(ctx, params.ClientID, params.ProductID)
	}

	existing, err := s.repo.GetItem(ctx, params.ClientID, params.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrItemNotFound
	}

	_, err = s.repo.UpdateItemQuantity(ctx, existing.ID, params.Quantity)
	return err
}

func (s *service) RemoveFromCart(ctx context.Context, clientID, productID int64) error {
	return s.repo.RemoveItem(ctx, clientID, productID)
}

func (s *service) ClearCart(ctx context.Context, clientID int64) error {
	return s.repo.ClearCart(ctx, clientID)
}

func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*purchase.Purchase, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Checkout"),
		zap.Int64("client_id", params.ClientID),
	)

	rows, err := s.repo.GetCartRows(ctx, params.ClientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCart
	}

	p, err := s.purchaseSvc.CreatePurchase(ctx, purchase.CreatePurchaseParams{
		ClientID:        params.ClientID,
		PaymentMethod:   params.PaymentMethod,
		DeliveryAddress: params.DeliveryAddress,
	})
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if _, err := s.purchaseSvc.AddLine(ctx, p.ID, row.ProductID, row.Quantity); err != nil {
			log.Warn("checkout line failed, cancelling purchase",
				zap.Int64("purchase_id", p.ID),
				zap.Int64("product_id", row.ProductID),
				zap.Error(err),
			)
			if cancelErr := s.purchaseSvc.CancelPurchase(ctx, p.ID); cancelErr != nil {
				log.Error("failed to cancel purchase after checkout failure",
					zap.Int64("purchase_id", p.ID),
					zap.Error(cancelErr),
				)
			}
			return nil, err
		}
	}

	if err := s.repo.ClearCart(ctx, params.ClientID); err != nil {
		log.Error("failed to clear cart after checkout", zap.Error(err))
	}

	final, err := s.purchaseSvc.GetPurchase(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	log.Info("checkout completed",
		zap.Int64("purchase_id", final.ID),
		zap.Float64("total", final.Total),
	)

	return final, nil
}
