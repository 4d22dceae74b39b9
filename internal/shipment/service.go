package shipment

import (
	"context"
	"strings"

	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/purchase"
	"agrocampo-be/internal/shipping"
	"agrocampo-be/internal/utils"

	"go.uber.org/zap"
)

// DistanceResolver is satisfied by geocode.Resolver. Geocode never fails;
// DistanceKm fails only on invalid coordinates.
type DistanceResolver interface {
	DistanceKm(ctx context.Context, lat1, lon1, lat2, lon2 float64) (float64, error)
	Geocode(ctx context.Context, address string) (float64, float64)
}

type Service interface {
	CreateForPurchase(ctx context.Context, purchaseID int64) (*Shipment, error)
	Recompute(ctx context.Context, shipmentID int64) (*Shipment, error)
	Assign(ctx context.Context, shipmentID, carrierID, vehicleID int64) (*Shipment, error)
	Finalize(ctx context.Context, shipmentID int64) (*Shipment, error)
	GetByID(ctx context.Context, shipmentID int64) (*Shipment, error)
	ListByStatus(ctx context.Context, status Status) ([]*Shipment, error)
}

type service struct {
	repo     Repository
	resolver DistanceResolver
	calc     *shipping.Calculator
}

func NewService(repo Repository, resolver DistanceResolver, calc *shipping.Calculator) Service {
	return &service{repo: repo, resolver: resolver, calc: calc}
}

// derivation holds the recomputable part of a shipment.
type derivation struct {
	DestAddress   string
	DestLat       float64
	DestLon       float64
	TotalWeightKg float64
	DistanceKm    float64
	Breakdown     shipping.Breakdown
	PurchaseTotal float64
}

func (s *service) derive(ctx context.Context, info *PurchaseInfo) (*derivation, error) {
	dest := strings.TrimSpace(info.DeliveryAddress)
	if dest == "" {
		dest = PendingAddress
	}

	destLat, destLon := s.resolver.Geocode(ctx, strings.TrimSpace(info.DeliveryAddress))

	var weight float64
	for _, l := range info.Lines {
		weight += float64(l.Quantity) * l.WeightKg
	}

	distance, err := s.resolver.DistanceKm(ctx, info.OriginLat, info.OriginLon, destLat, destLon)
	if err != nil {
		return nil, err
	}

	bd := s.calc.Cost(distance, weight)

	return &derivation{
		DestAddress:   dest,
		DestLat:       destLat,
		DestLon:       destLon,
		TotalWeightKg: weight,
		DistanceKm:    distance,
		Breakdown:     bd,
		PurchaseTotal: shipping.Round2(info.Subtotal + info.Taxes + bd.TotalCost),
	}, nil
}

func (s *service) CreateForPurchase(ctx context.Context, purchaseID int64) (*Shipment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateForPurchase"),
		zap.Int64("purchase_id", purchaseID),
	)

	info, err := s.repo.GetPurchaseInfo(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if info.Status == purchase.StatusPaidOut {
		return nil, ErrAlreadyShipped
	}
	if len(info.Lines) == 0 {
		return nil, ErrEmptyPurchase
	}

	d, err := s.derive(ctx, info)
	if err != nil {
		return nil, err
	}

	sh := &Shipment{
		PurchaseID:     purchaseID,
		Status:         StatusSeekingCarrier,
		OriginAddress:  info.OriginAddress,
		DestAddress:    d.DestAddress,
		OriginLat:      info.OriginLat,
		OriginLon:      info.OriginLon,
		DestLat:        d.DestLat,
		DestLon:        d.DestLon,
		TotalWeightKg:  d.TotalWeightKg,
		DistanceKm:     d.DistanceKm,
		BaseCost:       d.Breakdown.BaseCost,
		WeightCost:     d.Breakdown.WeightCost,
		TotalCost:      d.Breakdown.TotalCost,
		TrackingNumber: utils.GenerateTrackingNumber(),
	}

	if err := s.repo.CreateShipmentTx(ctx, sh, d.PurchaseTotal); err != nil {
		log.Error("failed to create shipment", zap.Error(err))
		return nil, err
	}

	log.Info("shipment created",
		zap.Int64("shipment_id", sh.ID),
		zap.Float64("distance_km", sh.DistanceKm),
		zap.Float64("total_cost", sh.TotalCost),
	)

	return sh, nil
}

// Recompute re-runs the distance/cost derivation for an existing shipment and
// overwrites the derived fields. With unchanged inputs the result is
// identical, so the operation is safe to repeat.
func (s *service) Recompute(ctx context.Context, shipmentID int64) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	info, err := s.repo.GetPurchaseInfo(ctx, sh.PurchaseID)
	if err != nil {
		return nil, err
	}

	d, err := s.derive(ctx, info)
	if err != nil {
		return nil, err
	}

	sh.DestAddress = d.DestAddress
	sh.DestLat = d.DestLat
	sh.DestLon = d.DestLon
	sh.TotalWeightKg = d.TotalWeightKg
	sh.DistanceKm = d.DistanceKm
	sh.BaseCost = d.Breakdown.BaseCost
	sh.WeightCost = d.Breakdown.WeightCost
	sh.TotalCost = d.Breakdown.TotalCost

	if err := s.repo.UpdateCostsTx(ctx, sh, d.PurchaseTotal); err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *service) Assign(ctx context.Context, shipmentID, carrierID, vehicleID int64) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !sh.Status.CanTransitionTo(StatusAssigned) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateAssignment(ctx, shipmentID, carrierID, vehicleID, sh.Status); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, shipmentID)
}

func (s *service) Finalize(ctx context.Context, shipmentID int64) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !sh.Status.CanTransitionTo(StatusFinalized) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateFinalized(ctx, shipmentID, sh.Status); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, shipmentID)
}

func (s *service) GetByID(ctx context.Context, shipmentID int64) (*Shipment, error) {
	return s.repo.GetByID(ctx, shipmentID)
}

func (s *service) ListByStatus(ctx context.Context, status Status) ([]*Shipment, error) {
	return s.repo.ListByStatus(ctx, status)
}
