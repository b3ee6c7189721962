// Package services implements the charge workflows on top of the
// repository and provider ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

// FallbackOrchestrator attempts providers sequentially in the configured
// priority order. First success wins; a provider failure, timeout or
// business decline moves on to the next provider.
type FallbackOrchestrator struct {
	providers []application.ProviderClient
	logger    *slog.Logger
}

func NewFallbackOrchestrator(providers []application.ProviderClient, logger *slog.Logger) *FallbackOrchestrator {
	return &FallbackOrchestrator{
		providers: providers,
		logger:    logger,
	}
}

var _ application.PaymentOrchestrator = (*FallbackOrchestrator)(nil)

// ProcessPayment runs the fallback loop. Providers are never attempted
// concurrently: first-success-wins depends on sequential short-circuit, and
// firing providers in parallel could double-charge.
func (f *FallbackOrchestrator) ProcessPayment(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	var attemptErrs []error

	for _, provider := range f.providers {
		f.logger.Info("attempting provider",
			"provider", provider.Name(),
			"charge_id", charge.ID,
		)

		result, err := provider.CreateCharge(ctx, charge)
		if err != nil {
			f.logger.Error("provider attempt failed",
				"provider", provider.Name(),
				"charge_id", charge.ID,
				"error", err,
			)
			attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}

		if result.Status == domain.StatusFailed {
			f.logger.Warn("provider declined charge",
				"provider", provider.Name(),
				"charge_id", charge.ID,
			)
			attemptErrs = append(attemptErrs, fmt.Errorf("%s: charge declined", provider.Name()))
			continue
		}

		return result, nil
	}

	return nil, application.NewAllProvidersFailedError(errors.Join(attemptErrs...))
}

// RefundPayment routes a refund to the provider the charge is bound to.
// A transport failure surfaces as an error; a clean Success=false response
// is returned as-is so the caller can compensate.
func (f *FallbackOrchestrator) RefundPayment(ctx context.Context, providerID, providerName string, amountCents int64) (*application.RefundResult, error) {
	var client application.ProviderClient
	for _, provider := range f.providers {
		if provider.Name() == providerName {
			client = provider
			break
		}
	}
	if client == nil {
		return nil, application.NewProviderNotFoundError(providerName)
	}

	result, err := client.RefundCharge(ctx, providerID, amountCents)
	if err != nil {
		return nil, application.NewRefundFailedError(providerName, err)
	}
	return result, nil
}
