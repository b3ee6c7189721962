package rest

import (
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

// ChargeProjection is the external representation of a charge. Card data is
// never included; the payment source carries only its type and provider id.
type ChargeProjection struct {
	ID            string                  `json:"id"`
	MerchantID    string                  `json:"merchantId"`
	OrderID       string                  `json:"orderId"`
	Amount        int64                   `json:"amount"`
	Currency      string                  `json:"currency"`
	Description   string                  `json:"description"`
	Status        string                  `json:"status"`
	PaymentMethod domain.Credit           `json:"paymentMethod"`
	ProviderID    *string                 `json:"providerId"`
	Provider      *string                 `json:"provider"`
	CurrentAmount int64                   `json:"currentAmount"`
	PaymentSource PaymentSourceProjection `json:"paymentSource"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     *time.Time              `json:"updatedAt"`
}

type PaymentSourceProjection struct {
	ID         *string `json:"id"`
	SourceType string  `json:"sourceType"`
}

func ToChargeProjection(c *domain.Charge) ChargeProjection {
	return ChargeProjection{
		ID:            c.ID,
		MerchantID:    c.MerchantID,
		OrderID:       c.OrderID,
		Amount:        c.AmountCents,
		Currency:      string(c.Currency),
		Description:   c.Description,
		Status:        string(c.Status),
		PaymentMethod: c.PaymentMethod,
		ProviderID:    c.ProviderID,
		Provider:      c.ProviderName,
		CurrentAmount: c.CurrentAmount,
		PaymentSource: PaymentSourceProjection{
			ID:         c.PaymentSource.ID,
			SourceType: c.PaymentSource.SourceType,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToChargeProjections(charges []*domain.Charge) []ChargeProjection {
	projections := make([]ChargeProjection, 0, len(charges))
	for _, c := range charges {
		projections = append(projections, ToChargeProjection(c))
	}
	return projections
}
