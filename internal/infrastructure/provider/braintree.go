package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

const BraintreeName = "braintree"

type BraintreeTransactionRequest struct {
	Amount              int64         `json:"amount"`
	Currency            string        `json:"currency"`
	StatementDescriptor string        `json:"statementDescriptor"`
	PaymentType         string        `json:"paymentType"`
	Card                braintreeCard `json:"card"`
}

type braintreeCard struct {
	Number            string `json:"number"`
	Holder            string `json:"holder"`
	CVV               string `json:"cvv"`
	Expiration        string `json:"expiration"`
	InstallmentNumber int    `json:"installmentNumber"`
}

type BraintreeTransactionResponse struct {
	ID                  string `json:"id"`
	Date                string `json:"date"`
	Status              string `json:"status"`
	Amount              int64  `json:"amount"`
	OriginalAmount      int64  `json:"originalAmount"`
	Currency            string `json:"currency"`
	StatementDescriptor string `json:"statementDescriptor"`
	PaymentType         string `json:"paymentType"`
	CardID              string `json:"cardId"`
}

type braintreeRefundRequest struct {
	Amount int64 `json:"amount"`
}

// BraintreeClient talks to the braintree-like provider.
type BraintreeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBraintreeClient(baseURL string, connTimeout time.Duration) *BraintreeClient {
	return &BraintreeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: connTimeout,
		},
	}
}

var _ application.ProviderClient = (*BraintreeClient)(nil)

func (c *BraintreeClient) Name() string { return BraintreeName }

func (c *BraintreeClient) CreateCharge(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	card := charge.PaymentSource.Card
	if card == nil {
		return nil, errors.New("invalid payment source: card is required")
	}

	req := BraintreeTransactionRequest{
		Amount:              charge.AmountCents,
		Currency:            string(charge.Currency),
		StatementDescriptor: charge.Description,
		PaymentType:         "card",
		Card: braintreeCard{
			Number:            card.Number(),
			Holder:            card.HolderName(),
			CVV:               card.CVV(),
			Expiration:        shortExpiration(card.ExpirationDate()),
			InstallmentNumber: charge.PaymentMethod.Installments(),
		},
	}

	url := fmt.Sprintf("%s/transactions", c.baseURL)
	resp, err := sendRequest[BraintreeTransactionRequest, BraintreeTransactionResponse](ctx, c.httpClient, BraintreeName, http.MethodPost, url, &req)
	if err != nil {
		return nil, err
	}

	status, err := braintreeStatus(resp.Status)
	if err != nil {
		return nil, err
	}

	return &application.ProviderResult{
		Provider: application.Provider{ID: resp.ID, Name: BraintreeName},
		SourceID: resp.CardID,
		Status:   status,
	}, nil
}

func (c *BraintreeClient) RefundCharge(ctx context.Context, providerID string, amountCents int64) (*application.RefundResult, error) {
	req := braintreeRefundRequest{Amount: amountCents}
	url := fmt.Sprintf("%s/void/%s", c.baseURL, providerID)

	_, err := sendRequest[braintreeRefundRequest, BraintreeTransactionResponse](ctx, c.httpClient, BraintreeName, http.MethodPost, url, &req)
	if err != nil {
		if isBusinessRejection(err) {
			return &application.RefundResult{Success: false}, nil
		}
		return nil, err
	}

	return &application.RefundResult{Success: true}, nil
}

// shortExpiration converts MM/YYYY to the MM/YY format this provider expects.
func shortExpiration(expirationDate string) string {
	parts := strings.Split(expirationDate, "/")
	if len(parts) != 2 || len(parts[1]) != 4 {
		return expirationDate
	}
	return parts[0] + "/" + parts[1][2:]
}

func braintreeStatus(status string) (domain.PaymentStatus, error) {
	switch status {
	case "paid":
		return domain.StatusPaid, nil
	case "failed":
		return domain.StatusFailed, nil
	case "voided":
		return domain.StatusVoided, nil
	default:
		return "", fmt.Errorf("unexpected braintree transaction status %q", status)
	}
}
