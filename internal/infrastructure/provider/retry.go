package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/config"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

// RetryClient decorates a ProviderClient with bounded retries on
// transport-level failures. Business rejections (4xx) are never retried.
type RetryClient struct {
	inner      application.ProviderClient
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.ProviderClient, cfg config.RetryConfig) application.ProviderClient {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) Name() string { return r.inner.Name() }

func (r *RetryClient) CreateCharge(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.ProviderResult, error) {
		return r.inner.CreateCharge(ctx, charge)
	})
}

func (r *RetryClient) RefundCharge(ctx context.Context, providerID string, amountCents int64) (*application.RefundResult, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.RefundResult, error) {
		return r.inner.RefundCharge(ctx, providerID, amountCents)
	})
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.StatusCode >= 500
	}

	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
