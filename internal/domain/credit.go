package domain

import "encoding/json"

// Credit is the credit-card payment method value object.
type Credit struct {
	paymentType  PaymentType
	installments int
}

func NewCredit(installments int) (Credit, error) {
	if installments < 1 {
		return Credit{}, &DomainError{
			Code:    ErrCodeInvalidInstallments,
			Message: "invalid installments, must be greater than 0",
		}
	}
	return Credit{paymentType: PaymentTypeCredit, installments: installments}, nil
}

func (c Credit) PaymentType() PaymentType { return c.paymentType }
func (c Credit) Installments() int        { return c.installments }

func (c Credit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PaymentType  PaymentType `json:"paymentType"`
		Installments int         `json:"installments"`
	}{
		PaymentType:  c.paymentType,
		Installments: c.installments,
	})
}
