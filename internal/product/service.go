package product

import (
	"context"

	"agrocampo-be/internal/logger"

	"go.uber.org/zap"
)

type CreateParams struct {
	ProducerID  int64
	FarmID      int64
	CategoryID  int64
	Name        string
	Description *string
	Price       float64
	Stock       int
	WeightKg    float64
	ImageURL    *string
}

type Service interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	UpdateStock(ctx context.Context, producerID, productID int64, stock int) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateProduct"),
		zap.Int64("producer_id", params.ProducerID),
		zap.Int64("farm_id", params.FarmID),
	)

	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	owns, err := s.repo.ProducerOwns(ctx, params.ProducerID, params.FarmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrForbidden
	}

	weight := params.WeightKg
	if weight <= 0 {
		weight = 1.00
	}

	p := &Product{
		FarmID:      params.FarmID,
		CategoryID:  params.CategoryID,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Stock:       params.Stock,
		WeightKg:    weight,
		Status:      StatusActive,
		ImageURL:    params.ImageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateStock(ctx context.Context, producerID, productID int64, stock int) (*Product, error) {
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	owns, err := s.repo.ProducerOwns(ctx, producerID, p.FarmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateStock(ctx, productID, stock); err != nil {
		return nil, err
	}

	p.Stock = stock
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	return s.repo.List(ctx, opts)
}
