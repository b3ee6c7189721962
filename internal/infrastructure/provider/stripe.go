package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

const StripeName = "stripe"

type StripeChargeRequest struct {
	Amount        int64               `json:"amount"`
	Currency      string              `json:"currency"`
	Description   string              `json:"description"`
	PaymentMethod stripePaymentMethod `json:"paymentMethod"`
}

type stripePaymentMethod struct {
	Type string     `json:"type"`
	Card stripeCard `json:"card"`
}

type stripeCard struct {
	Number         string `json:"number"`
	HolderName     string `json:"holderName"`
	CVV            string `json:"cvv"`
	ExpirationDate string `json:"expirationDate"`
	Installments   int    `json:"installments"`
}

type StripeChargeResponse struct {
	ID             string `json:"id"`
	CreatedAt      string `json:"createdAt"`
	Status         string `json:"status"`
	OriginalAmount int64  `json:"originalAmount"`
	CurrentAmount  int64  `json:"currentAmount"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	PaymentMethod  string `json:"paymentMethod"`
	CardID         string `json:"cardId"`
}

type stripeRefundRequest struct {
	Amount int64 `json:"amount"`
}

// StripeClient talks to the stripe-like provider.
type StripeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStripeClient(baseURL string, connTimeout time.Duration) *StripeClient {
	return &StripeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: connTimeout,
		},
	}
}

var _ application.ProviderClient = (*StripeClient)(nil)

func (c *StripeClient) Name() string { return StripeName }

func (c *StripeClient) CreateCharge(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	card := charge.PaymentSource.Card
	if card == nil {
		return nil, errors.New("invalid payment source: card is required")
	}

	req := StripeChargeRequest{
		Amount:      charge.AmountCents,
		Currency:    string(charge.Currency),
		Description: charge.Description,
		PaymentMethod: stripePaymentMethod{
			Type: "card",
			Card: stripeCard{
				Number:         card.Number(),
				HolderName:     card.HolderName(),
				CVV:            card.CVV(),
				ExpirationDate: card.ExpirationDate(),
				Installments:   charge.PaymentMethod.Installments(),
			},
		},
	}

	url := fmt.Sprintf("%s/charges", c.baseURL)
	resp, err := sendRequest[StripeChargeRequest, StripeChargeResponse](ctx, c.httpClient, StripeName, http.MethodPost, url, &req)
	if err != nil {
		return nil, err
	}

	status, err := stripeStatus(resp.Status)
	if err != nil {
		return nil, err
	}

	return &application.ProviderResult{
		Provider: application.Provider{ID: resp.ID, Name: StripeName},
		SourceID: resp.CardID,
		Status:   status,
	}, nil
}

func (c *StripeClient) RefundCharge(ctx context.Context, providerID string, amountCents int64) (*application.RefundResult, error) {
	req := stripeRefundRequest{Amount: amountCents}
	url := fmt.Sprintf("%s/refund/%s", c.baseURL, providerID)

	_, err := sendRequest[stripeRefundRequest, StripeChargeResponse](ctx, c.httpClient, StripeName, http.MethodPost, url, &req)
	if err != nil {
		if isBusinessRejection(err) {
			return &application.RefundResult{Success: false}, nil
		}
		return nil, err
	}

	return &application.RefundResult{Success: true}, nil
}

// stripeStatus maps the provider's wire status onto the charge state machine.
func stripeStatus(status string) (domain.PaymentStatus, error) {
	switch status {
	case "authorized":
		return domain.StatusPaid, nil
	case "failed":
		return domain.StatusFailed, nil
	case "refunded":
		return domain.StatusRefunded, nil
	default:
		return "", fmt.Errorf("unexpected stripe charge status %q", status)
	}
}
