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

var expirationShort = regexp.MustCompile(`^\d{2}/\d{2}$`)

const provider2DeclineCard = "4000000000009995"

type provider2TransactionRequest struct {
	Amount              int64  `json:"amount" validate:"required,gt=0"`
	Currency            string `json:"currency" validate:"required,eq=BRL"`
	StatementDescriptor string `json:"statementDescriptor"`
	PaymentType         string `json:"paymentType" validate:"required,eq=card"`
	Card                struct {
		Number            string `json:"number" validate:"required"`
		Holder            string `json:"holder" validate:"required,min=3"`
		CVV               string `json:"cvv" validate:"required,len=3"`
		Expiration        string `json:"expiration" validate:"required"`
		InstallmentNumber int    `json:"installmentNumber" validate:"required,gt=0"`
	} `json:"card" validate:"required"`
}

type provider2Transaction struct {
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

// Provider2 simulates the braintree-like provider: transactions are paid
// immediately unless the card is a known decline number. Refunds go through
// the void endpoint.
type Provider2 struct {
	mu           sync.Mutex
	transactions map[string]*provider2Transaction
	validate     *validator.Validate
}

func NewProvider2() *Provider2 {
	return &Provider2{
		transactions: make(map[string]*provider2Transaction),
		validate:     validator.New(),
	}
}

func (p *Provider2) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /mock/provider2/transactions", p.handleCreateTransaction)
	mux.HandleFunc("POST /mock/provider2/void/{id}", p.handleVoid)
	mux.HandleFunc("GET /mock/provider2/transactions/{id}", p.handleGetTransaction)
}

func (p *Provider2) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req provider2TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := p.validate.Struct(req); err != nil {
		writeProviderError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if !expirationShort.MatchString(req.Card.Expiration) {
		writeProviderError(w, http.StatusBadRequest, "validation_error", "expiration must be MM/YY")
		return
	}

	status := "paid"
	if req.Card.Number == provider2DeclineCard {
		status = "failed"
	}

	tx := &provider2Transaction{
		ID:                  uuid.New().String(),
		Date:                time.Now().Format(time.DateOnly),
		Status:              status,
		Amount:              req.Amount,
		OriginalAmount:      req.Amount,
		Currency:            req.Currency,
		StatementDescriptor: req.StatementDescriptor,
		PaymentType:         "card",
		CardID:              uuid.New().String(),
	}

	p.mu.Lock()
	p.transactions[tx.ID] = tx
	p.mu.Unlock()

	writeProviderJSON(w, http.StatusOK, tx)
}

func (p *Provider2) handleVoid(w http.ResponseWriter, r *http.Request) {
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

	tx, ok := p.transactions[r.PathValue("id")]
	if !ok {
		writeProviderError(w, http.StatusNotFound, "not_found", "transaction not found")
		return
	}
	if tx.Status != "paid" {
		writeProviderError(w, http.StatusUnprocessableEntity, "void_rejected", "transaction is not paid")
		return
	}
	if req.Amount > tx.Amount {
		writeProviderError(w, http.StatusUnprocessableEntity, "void_rejected", "void amount greater than transaction amount")
		return
	}

	tx.Amount -= req.Amount
	tx.Status = "voided"

	writeProviderJSON(w, http.StatusOK, tx)
}

func (p *Provider2) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, ok := p.transactions[r.PathValue("id")]
	if !ok {
		writeProviderError(w, http.StatusNotFound, "not_found", "transaction not found")
		return
	}
	writeProviderJSON(w, http.StatusOK, tx)
}
