package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/charge-gateway/internal/application"
	"github.com/DanielPopoola/charge-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chargeColumns = `
	id, merchant_id, order_id, amount_cents, currency, description, status,
	payment_method, installments, current_amount,
	provider_id, provider_name, payment_source_type, payment_source_id,
	created_at, updated_at
`

type ChargeRepository struct {
	db *pgxpool.Pool
}

func NewChargeRepository(db *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{db: db}
}

var _ application.ChargeRepository = (*ChargeRepository)(nil)

// Save inserts a new charge. The unique constraint on (merchant_id,
// order_id) closes the read-then-write idempotency race: a concurrent
// duplicate insert surfaces as ErrDuplicateCharge.
func (r *ChargeRepository) Save(ctx context.Context, charge *domain.Charge) error {
	query := `
		INSERT INTO charges (
			id, merchant_id, order_id, amount_cents, currency, description, status,
			payment_method, installments, current_amount,
			provider_id, provider_name, payment_source_type, payment_source_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	m := toDBModel(charge)
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.MerchantID,
		m.OrderID,
		m.AmountCents,
		m.Currency,
		m.Description,
		m.Status,
		m.PaymentMethod,
		m.Installments,
		m.CurrentAmount,
		m.ProviderID,
		m.ProviderName,
		m.PaymentSourceType,
		m.PaymentSourceID,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return application.ErrDuplicateCharge
		}
		return fmt.Errorf("failed to create charge: %w", err)
	}

	return nil
}

// FindByMerchantOrder retrieves a charge by its natural key. Returns
// (nil, nil) when no charge matches.
func (r *ChargeRepository) FindByMerchantOrder(ctx context.Context, merchantID, orderID string) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE merchant_id = $1 AND order_id = $2`

	row := r.db.QueryRow(ctx, query, merchantID, orderID)
	return scanCharge(row)
}

// FindByID retrieves a charge by id. Returns (nil, nil) when absent.
func (r *ChargeRepository) FindByID(ctx context.Context, id string) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanCharge(row)
}

// Update overwrites the mutable state of a charge.
func (r *ChargeRepository) Update(ctx context.Context, charge *domain.Charge) error {
	query := `
		UPDATE charges
		SET status = $1,
			current_amount = $2,
			provider_id = $3, provider_name = $4,
			payment_source_type = $5, payment_source_id = $6,
			updated_at = $7
		WHERE id = $8
	`

	now := time.Now()
	charge.UpdatedAt = &now

	m := toDBModel(charge)
	result, err := r.db.Exec(ctx, query,
		m.Status,
		m.CurrentAmount,
		m.ProviderID,
		m.ProviderName,
		m.PaymentSourceType,
		m.PaymentSourceID,
		m.UpdatedAt,
		m.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update charge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("charge %s not found", charge.ID)
	}

	return nil
}

// List returns a page of charges sorted by creation time.
func (r *ChargeRepository) List(ctx context.Context, query application.ListChargesQuery) (*application.ChargePage, error) {
	where := ""
	args := []any{}
	if query.MerchantID != "" {
		args = append(args, query.MerchantID)
		where = fmt.Sprintf(" WHERE merchant_id = $%d", len(args))
	}
	if query.OrderID != "" {
		args = append(args, query.OrderID)
		clause := fmt.Sprintf("order_id = $%d", len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	var totalItems int
	countQuery := `SELECT COUNT(*) FROM charges` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, fmt.Errorf("count charges: %w", err)
	}

	if totalItems == 0 {
		return &application.ChargePage{
			Items: []*domain.Charge{},
			Meta: application.PageMeta{
				ItemCount:    0,
				TotalItems:   0,
				ItemsPerPage: query.Limit,
				TotalPages:   0,
				CurrentPage:  query.Page,
			},
		}, nil
	}

	order := "ASC"
	if query.Sort == application.SortDesc {
		order = "DESC"
	}

	args = append(args, query.Limit, (query.Page-1)*query.Limit)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM charges%s ORDER BY created_at %s LIMIT $%d OFFSET $%d`,
		chargeColumns, where, order, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query charges: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Charge, error) {
		m, err := scanChargeModel(row)
		if err != nil {
			return nil, err
		}
		return toDomainModel(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan charges: %w", err)
	}

	totalPages := (totalItems + query.Limit - 1) / query.Limit

	return &application.ChargePage{
		Items: items,
		Meta: application.PageMeta{
			ItemCount:    len(items),
			TotalItems:   totalItems,
			ItemsPerPage: query.Limit,
			TotalPages:   totalPages,
			CurrentPage:  query.Page,
		},
	}, nil
}

func scanChargeModel(row pgx.Row) (ChargeModel, error) {
	var m ChargeModel
	err := row.Scan(
		&m.ID, &m.MerchantID, &m.OrderID, &m.AmountCents, &m.Currency, &m.Description, &m.Status,
		&m.PaymentMethod, &m.Installments, &m.CurrentAmount,
		&m.ProviderID, &m.ProviderName, &m.PaymentSourceType, &m.PaymentSourceID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func scanCharge(row pgx.Row) (*domain.Charge, error) {
	m, err := scanChargeModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan charge: %w", err)
	}
	return toDomainModel(m)
}
