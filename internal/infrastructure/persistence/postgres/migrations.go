package postgres

import "context"

// Schema is the charges table DDL. The unique constraint on
// (merchant_id, order_id) enforces the idempotency key at the storage layer.
const Schema = `
CREATE TABLE IF NOT EXISTS charges (
	id                  UUID PRIMARY KEY,
	merchant_id         TEXT NOT NULL,
	order_id            TEXT NOT NULL,
	amount_cents        BIGINT NOT NULL CHECK (amount_cents > 0),
	currency            TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL,
	payment_method      TEXT NOT NULL,
	installments        INT NOT NULL CHECK (installments >= 1),
	current_amount      BIGINT NOT NULL CHECK (current_amount >= 0),
	provider_id         TEXT,
	provider_name       TEXT,
	payment_source_type TEXT NOT NULL,
	payment_source_id   TEXT,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ,
	CONSTRAINT charges_merchant_order_key UNIQUE (merchant_id, order_id)
);

CREATE INDEX IF NOT EXISTS charges_created_at_idx ON charges (created_at);
`

// Migrate applies the schema. Used by tests and local bootstrap.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.Pool.Exec(ctx, Schema)
	return err
}
