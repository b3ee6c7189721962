package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

type QueryService struct {
	chargeRepo application.ChargeRepository
	logger     *slog.Logger
}

func NewQueryService(chargeRepo application.ChargeRepository, logger *slog.Logger) *QueryService {
	return &QueryService{chargeRepo: chargeRepo, logger: logger}
}

// GetCharge retrieves a charge by id, returning (nil, nil) when absent.
func (s *QueryService) GetCharge(ctx context.Context, chargeID string) (*domain.Charge, error) {
	charge, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if charge == nil {
		s.logger.Warn("charge not found", "charge_id", chargeID)
	}
	return charge, nil
}

// ListCharges returns a page of charges sorted by creation time.
func (s *QueryService) ListCharges(ctx context.Context, query application.ListChargesQuery) (*application.ChargePage, error) {
	page, err := s.chargeRepo.List(ctx, query)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return page, nil
}
