// Package mockprovider hosts in-process simulators for the two external
// payment providers, mountable on the gateway mux for local development
// and end-to-end tests.
package mockprovider

import (
	"encoding/json"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

var expirationLong = regexp.MustCompile(`^\d{2}/\d{4}$`)

// declined cards per provider, mirroring common test-card conventions
const provider1DeclineCard = "4000000000000002"

type provider1ChargeRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,eq=BRL"`
	Description   string `json:"description"`
	PaymentMethod struct {
		Type string `json:"type" validate:"required,eq=card"`
		Card struct {
			Number         string `json:"number" validate:"required"`
			HolderName     string `json:"holderName" validate:"required,min=3"`
			CVV            string `json:"cvv" validate:"required,len=3"`
			ExpirationDate string `json:"expirationDate" validate:"required"`
			Installments   int    `json:"installments" validate:"required,gt=0"`
		} `json:"card" validate:"required"`
	} `json:"paymentMethod" validate:"required"`
}

type provider1Charge struct {
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

type refundRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Provider1 simulates the stripe-like provider: charges are authorized
// immediately unless the card is a known decline number.
type Provider1 struct {
	mu       sync.Mutex
	charges  map[string]*provider1Charge
	validate *validator.Validate
}

func NewProvider1() *Provider1 {
	return &Provider1{
		charges:  make(map[string]*provider1Charge),
		validate: validator.New(),
	}
}

func (p *Provider1) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /mock/provider1/charges", p.handleCreateCharge)
	mux.HandleFunc("POST /mock/provider1/refund/{id}", p.handleRefund)
	mux.HandleFunc("GET /mock/provider1/charges/{id}", p.handleGetCharge)
}

func (p *Provider1) handleCreateCharge(w http.ResponseWriter, r *http.Request) {
	var req provider1ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := p.validate.Struct(req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if !expirationLong.MatchString(req.PaymentMethod.Card.ExpirationDate) {
		writeProviderError(w, http.StatusBadRequest, "validation_error", "expirationDate must be MM/YYYY")
		return
	}

	status := "authorized"
	if req.PaymentMethod.Card.Number == provider1DeclineCard {
		status = "failed"
	}

	charge := &provider1Charge{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now().Format(time.DateOnly),
		Status:         status,
		OriginalAmount: req.Amount,
		CurrentAmount:  req.Amount,
		Currency:       req.Currency,
		Description:    req.Description,
		PaymentMethod:  "card",
		CardID:         uuid.New().String(),
	}

	p.mu.Lock()
	p.charges[charge.ID] = charge
	p.mu.Unlock()

	writeProviderJSON(w, http.StatusOK, charge)
}

func (p *Provider1) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := p.validate.Struct(req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	charge, ok := p.charges[r.PathValue("id")]
	if !ok {
		writeProviderError(w, http.StatusNotFound, "not_found", "charge not found")
		return
	}
	if charge.Status != "authorized" {
		writeProviderError(w, http.StatusUnprocessableEntity, "refund_rejected", "charge is not authorized")
		return
	}
	if req.Amount > charge.CurrentAmount {
		writeProviderError(w, http.StatusUnprocessableEntity, "refund_rejected", "refund amount greater than charge amount")
		return
	}

	charge.Status = "refunded"
	charge.CurrentAmount -= req.Amount

	writeProviderJSON(w, http.StatusOK, charge)
}

func (p *Provider1) handleGetCharge(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	charge, ok := p.charges[r.PathValue("id")]
	if !ok {
		writeProviderError(w, http.StatusNotFound, "not_found", "charge not found")
		return
	}
	writeProviderJSON(w, http.StatusOK, charge)
}

type providerErrorBody struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func writeProviderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeProviderError(w http.ResponseWriter, status int, code, message string) {
	writeProviderJSON(w, status, providerErrorBody{Err: code, Message: message})
}
