package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
	"github.com/DanielPopoola/charge-gateway/internal/interfaces/rest"
	"github.com/google/uuid"
)

type CardRequest struct {
	Number         string `json:"number" validate:"required"`
	HolderName     string `json:"holderName" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
}

type PaymentMethodRequest struct {
	Installments int         `json:"installments" validate:"required,gte=1"`
	Card         CardRequest `json:"card" validate:"required"`
}

type CreateChargeRequest struct {
	MerchantID    string               `json:"merchantId" validate:"required"`
	OrderID       string               `json:"orderId" validate:"required"`
	Amount        int64                `json:"amount" validate:"required,gt=0"`
	Currency      string               `json:"currency" validate:"required"`
	Description   string               `json:"description"`
	PaymentMethod PaymentMethodRequest `json:"paymentMethod" validate:"required"`
}

// HandleCreateCharge processes a charge creation request. Repeated requests
// with the same (merchantId, orderId) converge onto the same charge.
func (h *Handlers) HandleCreateCharge(w http.ResponseWriter, r *http.Request) {
	var req CreateChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}

	card, err := domain.NewCard(
		req.PaymentMethod.Card.Number,
		req.PaymentMethod.Card.HolderName,
		req.PaymentMethod.Card.CVV,
		req.PaymentMethod.Card.ExpirationDate,
	)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	credit, err := domain.NewCredit(req.PaymentMethod.Installments)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	charge, err := domain.NewCharge(
		uuid.New().String(),
		req.MerchantID,
		req.OrderID,
		req.Amount,
		currency,
		req.Description,
		credit,
		card,
	)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	result, err := h.createService.CreateCharge(r.Context(), charge)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToChargeProjection(result))
}

// HandleGetCharge retrieves a single charge by id.
func (h *Handlers) HandleGetCharge(w http.ResponseWriter, r *http.Request) {
	chargeID := r.PathValue("chargeId")
	if _, err := uuid.Parse(chargeID); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}

	charge, err := h.queryService.GetCharge(r.Context(), chargeID)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	if charge == nil {
		rest.WriteNotFound(w, "charge with id "+chargeID+" not found")
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToChargeProjection(charge))
}

// HandleListCharges returns a page of charges sorted by creation time.
func (h *Handlers) HandleListCharges(w http.ResponseWriter, r *http.Request) {
	query := application.ListChargesQuery{
		MerchantID: r.URL.Query().Get("merchantId"),
		OrderID:    r.URL.Query().Get("orderId"),
		Page:       1,
		Limit:      10,
		Sort:       application.SortDesc,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			rest.WriteError(w, application.NewInvalidInputError(err))
			return
		}
		query.Page = page
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			rest.WriteError(w, application.NewInvalidInputError(err))
			return
		}
		query.Limit = limit
	}
	if raw := r.URL.Query().Get("sort"); raw != "" {
		if raw != string(application.SortAsc) && raw != string(application.SortDesc) {
			rest.WriteError(w, application.NewInvalidInputError(nil))
			return
		}
		query.Sort = application.SortOrder(raw)
	}

	page, err := h.queryService.ListCharges(r.Context(), query)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WritePage(w, http.StatusOK, rest.ToChargeProjections(page.Items), page.Meta)
}
