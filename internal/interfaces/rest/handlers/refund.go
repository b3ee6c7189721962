package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/interfaces/rest"
	"github.com/google/uuid"
)

type RefundRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// HandleRefund refunds part or all of a paid charge. Refunding a charge
// that does not allow refunds returns its current state unchanged.
func (h *Handlers) HandleRefund(w http.ResponseWriter, r *http.Request) {
	chargeID := r.PathValue("chargeId")
	if _, err := uuid.Parse(chargeID); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(err))
		return
	}

	charge, err := h.refundService.Refund(r.Context(), chargeID, req.Amount)
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
