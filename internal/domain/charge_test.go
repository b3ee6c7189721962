package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharge(t *testing.T) {
	t.Run("creates charge successfully", func(t *testing.T) {
		card := createTestCard(t)
		credit, err := domain.NewCredit(3)
		require.NoError(t, err)

		charge, err := domain.NewCharge(
			"charge-123", "merchant-1", "order-1",
			5000, domain.CurrencyBRL, "gaming keyboard",
			credit, card,
		)

		require.NoError(t, err)
		assert.Equal(t, "charge-123", charge.ID)
		assert.Equal(t, "merchant-1", charge.MerchantID)
		assert.Equal(t, "order-1", charge.OrderID)
		assert.Equal(t, int64(5000), charge.AmountCents)
		assert.Equal(t, int64(5000), charge.CurrentAmount)
		assert.Equal(t, domain.CurrencyBRL, charge.Currency)
		assert.Equal(t, domain.StatusPending, charge.Status)
		assert.Equal(t, "card", charge.PaymentSource.SourceType)
		assert.Nil(t, charge.ProviderID)
		assert.Nil(t, charge.ProviderName)
		assert.NotZero(t, charge.CreatedAt)
	})

	t.Run("rejects empty charge ID", func(t *testing.T) {
		_, err := newTestCharge(t, "", "merchant-1", "order-1", 5000)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "charge ID is required")
	})

	t.Run("rejects empty merchant ID", func(t *testing.T) {
		_, err := newTestCharge(t, "charge-123", "", "order-1", 5000)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "merchant ID is required")
	})

	t.Run("rejects empty order ID", func(t *testing.T) {
		_, err := newTestCharge(t, "charge-123", "merchant-1", "", 5000)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order ID is required")
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := newTestCharge(t, "charge-123", "merchant-1", "order-1", 0)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeInvalidAmount, domainErr.Code)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := newTestCharge(t, "charge-123", "merchant-1", "order-1", -100)

		assert.Error(t, err)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		card := createTestCard(t)
		credit, _ := domain.NewCredit(1)

		_, err := domain.NewCharge(
			"charge-123", "merchant-1", "order-1",
			5000, domain.Currency("USD"), "desc",
			credit, card,
		)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeInvalidCurrency, domainErr.Code)
	})
}

func TestCharge_StateTransitions(t *testing.T) {
	t.Run("pending -> paid via SetPaymentSource", func(t *testing.T) {
		charge := createPendingCharge(t)

		err := charge.SetPaymentSource("src-1", domain.StatusPaid)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, charge.Status)
		assert.Equal(t, "src-1", *charge.PaymentSource.ID)
	})

	t.Run("pending -> failed", func(t *testing.T) {
		charge := createPendingCharge(t)

		err := charge.Fail()

		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, charge.Status)
	})

	t.Run("failed -> paid on re-attempt", func(t *testing.T) {
		charge := createPendingCharge(t)
		require.NoError(t, charge.Fail())

		err := charge.SetPaymentSource("src-2", domain.StatusPaid)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, charge.Status)
	})

	t.Run("paid -> refunded via Refund", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(1000)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRefunded, charge.Status)
	})

	t.Run("cannot pay a refunded charge via SetPaymentSource from pending", func(t *testing.T) {
		charge := createPendingCharge(t)

		err := charge.SetPaymentSource("src-1", domain.StatusRefunded)

		assert.Error(t, err)
		assert.Equal(t, domain.StatusPending, charge.Status)
	})

	t.Run("cannot refund a pending charge", func(t *testing.T) {
		charge := createPendingCharge(t)

		err := charge.Refund(1000)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeRefundNotAllowed, domainErr.Code)
	})

	t.Run("cannot fail a paid charge", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Fail()

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeInvalidTransition, domainErr.Code)
	})
}

func TestCharge_IsReadyToProcess(t *testing.T) {
	providerID := "prov-1"
	providerName := "stripe"

	tests := []struct {
		name       string
		status     domain.PaymentStatus
		providerID *string
		ready      bool
	}{
		{"pending without provider is ready", domain.StatusPending, nil, true},
		{"failed without provider is ready", domain.StatusFailed, nil, true},
		{"pending with provider is not ready", domain.StatusPending, &providerID, false},
		{"failed with provider is not ready", domain.StatusFailed, &providerID, false},
		{"paid is not ready", domain.StatusPaid, &providerID, false},
		{"refunded is not ready", domain.StatusRefunded, &providerID, false},
		{"voided is not ready", domain.StatusVoided, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var name *string
			if tt.providerID != nil {
				name = &providerName
			}
			charge := reconstituteCharge(t, tt.status, 5000, tt.providerID, name)

			assert.Equal(t, tt.ready, charge.IsReadyToProcess())
		})
	}
}

func TestCharge_AllowRefund(t *testing.T) {
	providerID := "prov-1"
	providerName := "stripe"

	tests := []struct {
		name          string
		status        domain.PaymentStatus
		currentAmount int64
		providerID    *string
		allowed       bool
	}{
		{"paid with remaining amount and provider", domain.StatusPaid, 5000, &providerID, true},
		{"paid with zero remaining amount", domain.StatusPaid, 0, &providerID, false},
		{"paid without provider", domain.StatusPaid, 5000, nil, false},
		{"pending charge", domain.StatusPending, 5000, nil, false},
		{"failed charge", domain.StatusFailed, 5000, nil, false},
		{"already refunded charge", domain.StatusRefunded, 0, &providerID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var name *string
			if tt.providerID != nil {
				name = &providerName
			}
			charge := reconstituteCharge(t, tt.status, tt.currentAmount, tt.providerID, name)

			assert.Equal(t, tt.allowed, charge.AllowRefund())
		})
	}
}

func TestCharge_Refund(t *testing.T) {
	t.Run("partial refund decrements remaining amount", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(2000)

		require.NoError(t, err)
		assert.Equal(t, int64(3000), charge.CurrentAmount)
		assert.Equal(t, domain.StatusRefunded, charge.Status)
	})

	t.Run("full refund zeroes remaining amount", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(5000)

		require.NoError(t, err)
		assert.Equal(t, int64(0), charge.CurrentAmount)
		assert.False(t, charge.AllowRefund())
	})

	t.Run("rejects refund above remaining amount", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(5001)

		require.Error(t, err)
		assert.Equal(t, int64(5000), charge.CurrentAmount)
		assert.Equal(t, domain.StatusPaid, charge.Status)
	})

	t.Run("rejects zero refund amount", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(0)

		assert.Error(t, err)
	})

	t.Run("rejects negative refund amount", func(t *testing.T) {
		charge := createPaidCharge(t)

		err := charge.Refund(-500)

		assert.Error(t, err)
	})
}

func TestCharge_CancelRefund(t *testing.T) {
	t.Run("restores amount and status after a refund", func(t *testing.T) {
		charge := createPaidCharge(t)
		require.NoError(t, charge.Refund(2000))

		charge.CancelRefund(2000)

		assert.Equal(t, int64(5000), charge.CurrentAmount)
		assert.Equal(t, domain.StatusPaid, charge.Status)
	})

	t.Run("refund then cancel is observably a no-op", func(t *testing.T) {
		charge := createPaidCharge(t)
		before := *charge

		require.NoError(t, charge.Refund(5000))
		charge.CancelRefund(5000)

		assert.Equal(t, before.CurrentAmount, charge.CurrentAmount)
		assert.Equal(t, before.Status, charge.Status)
		assert.True(t, charge.AllowRefund())
	})
}

func TestCharge_SetProvider(t *testing.T) {
	charge := createPendingCharge(t)

	charge.SetProvider("prov-1", "stripe")

	require.NotNil(t, charge.ProviderID)
	require.NotNil(t, charge.ProviderName)
	assert.Equal(t, "prov-1", *charge.ProviderID)
	assert.Equal(t, "stripe", *charge.ProviderName)
	assert.False(t, charge.IsReadyToProcess())
}

func newTestCharge(t *testing.T, id, merchantID, orderID string, amount int64) (*domain.Charge, error) {
	t.Helper()
	card := createTestCard(t)
	credit, err := domain.NewCredit(1)
	require.NoError(t, err)

	return domain.NewCharge(id, merchantID, orderID, amount, domain.CurrencyBRL, "test charge", credit, card)
}

func createPendingCharge(t *testing.T) *domain.Charge {
	t.Helper()
	charge, err := newTestCharge(t, "charge-123", "merchant-1", "order-1", 5000)
	require.NoError(t, err)
	return charge
}

func createPaidCharge(t *testing.T) *domain.Charge {
	t.Helper()
	charge := createPendingCharge(t)
	charge.SetProvider("prov-1", "stripe")
	require.NoError(t, charge.SetPaymentSource("src-1", domain.StatusPaid))
	return charge
}

func reconstituteCharge(t *testing.T, status domain.PaymentStatus, currentAmount int64, providerID, providerName *string) *domain.Charge {
	t.Helper()
	credit, err := domain.NewCredit(1)
	require.NoError(t, err)

	sourceID := "src-1"
	now := time.Now()

	return domain.Reconstitute(
		"charge-123", "merchant-1", "order-1",
		5000, domain.CurrencyBRL, "test charge",
		status, credit,
		currentAmount,
		providerID, providerName,
		"card", &sourceID,
		now, &now,
	)
}
