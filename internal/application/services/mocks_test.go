package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
	"github.com/stretchr/testify/require"
)

// MockChargeRepository
type MockChargeRepository struct {
	mu      sync.Mutex
	charges map[string]*domain.Charge

	SaveCalls   int
	UpdateCalls int

	FindByMerchantOrderFn func(ctx context.Context, merchantID, orderID string) (*domain.Charge, error)
	FindByIDFn            func(ctx context.Context, id string) (*domain.Charge, error)
	SaveFn                func(ctx context.Context, charge *domain.Charge) error
	UpdateFn              func(ctx context.Context, charge *domain.Charge) error
	ListFn                func(ctx context.Context, query application.ListChargesQuery) (*application.ChargePage, error)
}

func NewMockChargeRepository() *MockChargeRepository {
	return &MockChargeRepository{charges: make(map[string]*domain.Charge)}
}

func (m *MockChargeRepository) FindByMerchantOrder(ctx context.Context, merchantID, orderID string) (*domain.Charge, error) {
	if m.FindByMerchantOrderFn != nil {
		return m.FindByMerchantOrderFn(ctx, merchantID, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.charges {
		if c.MerchantID == merchantID && c.OrderID == orderID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockChargeRepository) FindByID(ctx context.Context, id string) (*domain.Charge, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.charges[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (m *MockChargeRepository) Save(ctx context.Context, charge *domain.Charge) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFn != nil {
		return m.SaveFn(ctx, charge)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.charges {
		if c.MerchantID == charge.MerchantID && c.OrderID == charge.OrderID {
			return application.ErrDuplicateCharge
		}
	}
	m.charges[charge.ID] = charge
	return nil
}

func (m *MockChargeRepository) Update(ctx context.Context, charge *domain.Charge) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, charge)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.charges[charge.ID] = charge
	return nil
}

func (m *MockChargeRepository) List(ctx context.Context, query application.ListChargesQuery) (*application.ChargePage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, query)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*domain.Charge, 0, len(m.charges))
	for _, c := range m.charges {
		items = append(items, c)
	}
	return &application.ChargePage{
		Items: items,
		Meta: application.PageMeta{
			ItemCount:    len(items),
			TotalItems:   len(items),
			ItemsPerPage: query.Limit,
			TotalPages:   1,
			CurrentPage:  query.Page,
		},
	}, nil
}

// MockProviderClient
type MockProviderClient struct {
	name string

	CreateCalls int
	RefundCalls int

	CreateChargeFn func(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error)
	RefundChargeFn func(ctx context.Context, providerID string, amountCents int64) (*application.RefundResult, error)
}

func NewMockProviderClient(name string) *MockProviderClient {
	return &MockProviderClient{name: name}
}

func (m *MockProviderClient) Name() string { return m.name }

func (m *MockProviderClient) CreateCharge(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	m.CreateCalls++
	if m.CreateChargeFn != nil {
		return m.CreateChargeFn(ctx, charge)
	}
	return &application.ProviderResult{
		Provider: application.Provider{ID: m.name + "-id", Name: m.name},
		SourceID: "src-" + m.name,
		Status:   domain.StatusPaid,
	}, nil
}

func (m *MockProviderClient) RefundCharge(ctx context.Context, providerID string, amountCents int64) (*application.RefundResult, error) {
	m.RefundCalls++
	if m.RefundChargeFn != nil {
		return m.RefundChargeFn(ctx, providerID, amountCents)
	}
	return &application.RefundResult{Success: true}, nil
}

// MockOrchestrator
type MockOrchestrator struct {
	ProcessCalls int
	RefundCalls  int

	ProcessPaymentFn func(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error)
	RefundPaymentFn  func(ctx context.Context, providerID, providerName string, amountCents int64) (*application.RefundResult, error)
}

func (m *MockOrchestrator) ProcessPayment(ctx context.Context, charge *domain.Charge) (*application.ProviderResult, error) {
	m.ProcessCalls++
	if m.ProcessPaymentFn != nil {
		return m.ProcessPaymentFn(ctx, charge)
	}
	return &application.ProviderResult{
		Provider: application.Provider{ID: "prov-1", Name: "stripe"},
		SourceID: "src-1",
		Status:   domain.StatusPaid,
	}, nil
}

func (m *MockOrchestrator) RefundPayment(ctx context.Context, providerID, providerName string, amountCents int64) (*application.RefundResult, error) {
	m.RefundCalls++
	if m.RefundPaymentFn != nil {
		return m.RefundPaymentFn(ctx, providerID, providerName, amountCents)
	}
	return &application.RefundResult{Success: true}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newPendingCharge(t *testing.T, id, merchantID, orderID string, amount int64) *domain.Charge {
	t.Helper()
	card, err := domain.NewCard("4111111111111111", "JOHN DOE", "123", "12/2030")
	require.NoError(t, err)
	credit, err := domain.NewCredit(1)
	require.NoError(t, err)

	charge, err := domain.NewCharge(id, merchantID, orderID, amount, domain.CurrencyBRL, "test charge", credit, card)
	require.NoError(t, err)
	return charge
}

func newPaidCharge(t *testing.T, id string, amount int64) *domain.Charge {
	t.Helper()
	charge := newPendingCharge(t, id, "merchant-1", "order-"+id, amount)
	charge.SetProvider("prov-1", "stripe")
	require.NoError(t, charge.SetPaymentSource("src-1", domain.StatusPaid))
	return charge
}
