package purchase

import (
	"context"
	"errors"
	"strings"

	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/user"

	"go.uber.org/zap"
)

type CreatePurchaseParams struct {
	ClientID        int64
	PaymentMethod   string
	DeliveryAddress string
}

type Service interface {
	CreatePurchase(ctx context.Context, params CreatePurchaseParams) (*Purchase, error)
	AddLine(ctx context.Context, purchaseID, productID int64, quantity int) (*DetailLine, error)
	CancelPurchase(ctx context.Context, purchaseID int64) error
	GetPurchase(ctx context.Context, purchaseID int64) (*Purchase, error)
	ListByClient(ctx context.Context, clientID int64) ([]*Purchase, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
}

func NewService(repo Repository, userRepo user.Repository) Service {
	return &service{repo: repo, userRepo: userRepo}
}

func (s *service) CreatePurchase(ctx context.Context, params CreatePurchaseParams) (*Purchase, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreatePurchase"),
		zap.Int64("client_id", params.ClientID),
	)

	// Guest purchases are rejected: every purchase is bound to a known client.
	u, err := s.userRepo.GetByID(ctx, params.ClientID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	p := &Purchase{
		ClientID:        u.ID,
		Status:          StatusDraft,
		DeliveryAddress: strings.TrimSpace(params.DeliveryAddress),
		PaymentMethod:   params.PaymentMethod,
	}

	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		log.Error("failed to create purchase", zap.Error(err))
		return nil, err
	}

	log.Info("purchase created", zap.Int64("purchase_id", p.ID))
	return p, nil
}

func (s *service) AddLine(ctx context.Context, purchaseID, productID int64, quantity int) (*DetailLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.AddLineTx(ctx, purchaseID, productID, quantity)
}

func (s *service) CancelPurchase(ctx context.Context, purchaseID int64) error {
	return s.repo.CancelPurchaseTx(ctx, purchaseID)
}

func (s *service) GetPurchase(ctx context.Context, purchaseID int64) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, purchaseID)
}

func (s *service) ListByClient(ctx context.Context, clientID int64) ([]*Purchase, error) {
	return s.repo.ListByClient(ctx, clientID)
}
