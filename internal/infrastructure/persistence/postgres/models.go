package postgres

import "time"

// ChargeModel mirrors the charges table row.
type ChargeModel struct {
	ID                string
	MerchantID        string
	OrderID           string
	AmountCents       int64
	Currency          string
	Description       string
	Status            string
	PaymentMethod     string
	Installments      int
	CurrentAmount     int64
	ProviderID        *string
	ProviderName      *string
	PaymentSourceType string
	PaymentSourceID   *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
