package postgres

import (
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

func toDBModel(c *domain.Charge) ChargeModel {
	return ChargeModel{
		ID:                c.ID,
		MerchantID:        c.MerchantID,
		OrderID:           c.OrderID,
		AmountCents:       c.AmountCents,
		Currency:          string(c.Currency),
		Description:       c.Description,
		Status:            string(c.Status),
		PaymentMethod:     string(c.PaymentMethod.PaymentType()),
		Installments:      c.PaymentMethod.Installments(),
		CurrentAmount:     c.CurrentAmount,
		ProviderID:        c.ProviderID,
		ProviderName:      c.ProviderName,
		PaymentSourceType: c.PaymentSource.SourceType,
		PaymentSourceID:   c.PaymentSource.ID,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toDomainModel(m ChargeModel) (*domain.Charge, error) {
	status, err := domain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	currency, err := domain.ParseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	credit, err := domain.NewCredit(m.Installments)
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(
		m.ID, m.MerchantID, m.OrderID,
		m.AmountCents, currency, m.Description,
		status, credit,
		m.CurrentAmount,
		m.ProviderID, m.ProviderName,
		m.PaymentSourceType, m.PaymentSourceID,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
