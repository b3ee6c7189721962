package application

import (
	"context"
	"errors"

	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

// ErrDuplicateCharge is returned by Save when a charge with the same
// (merchantId, orderId) natural key already exists.
var ErrDuplicateCharge = errors.New("charge already exists for merchant and order")

// ChargeRepository is the port for persistence. Lookups return (nil, nil)
// when no charge matches, so callers can branch without error handling.
type ChargeRepository interface {
	FindByMerchantOrder(ctx context.Context, merchantID, orderID string) (*domain.Charge, error)
	FindByID(ctx context.Context, id string) (*domain.Charge, error)
	Save(ctx context.Context, charge *domain.Charge) error
	Update(ctx context.Context, charge *domain.Charge) error
	List(ctx context.Context, query ListChargesQuery) (*ChargePage, error)
}

// Provider identifies which external provider accepted a charge.
type Provider struct {
	ID   string
	Name string
}

// ProviderResult is the outcome of one provider charge attempt.
type ProviderResult struct {
	Provider Provider
	SourceID string
	Status   domain.PaymentStatus
}

// RefundResult is the outcome of a provider refund call. Success=false is a
// business rejection, not a transport failure.
type RefundResult struct {
	Success bool
}

// ProviderClient is the port for one external payment provider.
type ProviderClient interface {
	Name() string
	CreateCharge(ctx context.Context, charge *domain.Charge) (*ProviderResult, error)
	RefundCharge(ctx context.Context, providerID string, amountCents int64) (*RefundResult, error)
}

// PaymentOrchestrator coordinates provider attempts for a charge.
type PaymentOrchestrator interface {
	ProcessPayment(ctx context.Context, charge *domain.Charge) (*ProviderResult, error)
	RefundPayment(ctx context.Context, providerID, providerName string, amountCents int64) (*RefundResult, error)
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListChargesQuery filters and paginates the charge list. Page and Limit are
// 1-based and positive.
type ListChargesQuery struct {
	MerchantID string
	OrderID    string
	Page       int
	Limit      int
	Sort       SortOrder
}

type PageMeta struct {
	ItemCount    int `json:"itemCount"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

type ChargePage struct {
	Items []*domain.Charge
	Meta  PageMeta
}
