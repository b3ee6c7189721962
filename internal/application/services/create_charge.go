package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

type CreateChargeService struct {
	chargeRepo   application.ChargeRepository
	orchestrator application.PaymentOrchestrator
	logger       *slog.Logger
}

func NewCreateChargeService(
	chargeRepo application.ChargeRepository,
	orchestrator application.PaymentOrchestrator,
	logger *slog.Logger,
) *CreateChargeService {
	return &CreateChargeService{
		chargeRepo:   chargeRepo,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// CreateCharge creates a charge idempotently, keyed on (merchantId, orderId).
// A retried request converges onto the existing record; a charge already
// bound to a provider or otherwise resolved is returned unchanged with no
// provider call.
func (s *CreateChargeService) CreateCharge(ctx context.Context, charge *domain.Charge) (*domain.Charge, error) {
	existing, err := s.chargeRepo.FindByMerchantOrder(ctx, charge.MerchantID, charge.OrderID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	if existing == nil {
		s.logger.Info("creating new charge", "charge_id", charge.ID)
		err := s.chargeRepo.Save(ctx, charge)
		if errors.Is(err, application.ErrDuplicateCharge) {
			// Lost the insert race to a concurrent duplicate request.
			// Re-read and fall into the already-exists path.
			existing, err = s.chargeRepo.FindByMerchantOrder(ctx, charge.MerchantID, charge.OrderID)
			if err != nil {
				return nil, application.NewInternalError(err)
			}
		} else if err != nil {
			return nil, application.NewInternalError(err)
		}
	}

	if existing != nil {
		s.logger.Info("charge already exists", "charge_id", existing.ID)
		charge.ID = existing.ID
		if !existing.IsReadyToProcess() {
			s.logger.Warn("charge is not ready to process", "charge_id", existing.ID)
			return existing, nil
		}
	}

	result, err := s.orchestrator.ProcessPayment(ctx, charge)
	if err != nil {
		// The charge stays pending/failed in storage for a future retry
		// through the same idempotency path.
		return nil, err
	}

	charge.SetProvider(result.Provider.ID, result.Provider.Name)
	if err := charge.SetPaymentSource(result.SourceID, result.Status); err != nil {
		return nil, err
	}
	if err := s.chargeRepo.Update(ctx, charge); err != nil {
		return nil, application.NewInternalError(err)
	}

	return charge, nil
}
