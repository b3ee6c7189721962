package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

type RefundService struct {
	chargeRepo   application.ChargeRepository
	orchestrator application.PaymentOrchestrator
	logger       *slog.Logger
}

func NewRefundService(
	chargeRepo application.ChargeRepository,
	orchestrator application.PaymentOrchestrator,
	logger *slog.Logger,
) *RefundService {
	return &RefundService{
		chargeRepo:   chargeRepo,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Refund applies a two-phase local-then-remote refund. The local ledger
// records the refund before the remote call; a remote Success=false is
// compensated by reversing the local state. Returns (nil, nil) when the
// charge does not exist.
func (s *RefundService) Refund(ctx context.Context, chargeID string, amountCents int64) (*domain.Charge, error) {
	charge, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if charge == nil {
		s.logger.Warn("charge not found", "charge_id", chargeID)
		return nil, nil
	}

	if !charge.AllowRefund() {
		s.logger.Warn("charge cannot be refunded",
			"charge_id", chargeID,
			"status", charge.Status,
			"current_amount", charge.CurrentAmount,
		)
		return charge, nil
	}

	if err := charge.Refund(amountCents); err != nil {
		return nil, err
	}
	if err := s.chargeRepo.Update(ctx, charge); err != nil {
		return nil, application.NewInternalError(err)
	}

	result, err := s.orchestrator.RefundPayment(ctx, *charge.ProviderID, *charge.ProviderName, amountCents)
	if err != nil {
		// Local state stays refunded; the remote side may or may not have
		// refunded. See DESIGN.md on this accepted divergence window.
		return nil, err
	}

	if !result.Success {
		s.logger.Warn("provider rejected refund, compensating",
			"charge_id", chargeID,
			"provider", *charge.ProviderName,
		)
		charge.CancelRefund(amountCents)
		if err := s.chargeRepo.Update(ctx, charge); err != nil {
			return nil, application.NewInternalError(err)
		}
	}

	return charge, nil
}
