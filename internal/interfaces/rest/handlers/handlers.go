// Package handlers exposes the charge and refund HTTP endpoints.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/charge-gateway/internal/application/services"
	"github.com/go-playground/validator"
)

type Handlers struct {
	createService *services.CreateChargeService
	refundService *services.RefundService
	queryService  *services.QueryService
	validate      *validator.Validate
	logger        *slog.Logger
}

func NewHandlers(
	createService *services.CreateChargeService,
	refundService *services.RefundService,
	queryService *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		createService: createService,
		refundService: refundService,
		queryService:  queryService,
		validate:      validator.New(),
		logger:        logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /charges", h.HandleCreateCharge)
	mux.HandleFunc("GET /charges", h.HandleListCharges)
	mux.HandleFunc("GET /charges/{chargeId}", h.HandleGetCharge)
	mux.HandleFunc("POST /refunds/{chargeId}", h.HandleRefund)
}
