package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Farebox store.
var Migrations = migrate.NewGroup("farebox")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_farebox_config",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS farebox_config (
    address                    TEXT PRIMARY KEY,
    admin                      TEXT NOT NULL DEFAULT '',
    currency_mint              TEXT NOT NULL DEFAULT '',
    bus_fare                   BIGINT NOT NULL DEFAULT 0,
    train_fare                 BIGINT NOT NULL DEFAULT 0,
    monthly_pass_price         BIGINT NOT NULL DEFAULT 0,
    yearly_pass_price          BIGINT NOT NULL DEFAULT 0,
    total_tickets_sold         BIGINT NOT NULL DEFAULT 0,
    total_active_subscriptions BIGINT NOT NULL DEFAULT 0,
    created_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS farebox_config`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_farebox_passengers",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS farebox_passengers (
    address            TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL DEFAULT '',
    subscription_type  SMALLINT NOT NULL DEFAULT 0,
    subscription_start BIGINT NOT NULL DEFAULT 0,
    subscription_end   BIGINT NOT NULL DEFAULT 0,
    rides_used         BIGINT NOT NULL DEFAULT 0,
    price_paid         BIGINT NOT NULL DEFAULT 0,
    total_spent        BIGINT NOT NULL DEFAULT 0,
    ticket_count       BIGINT NOT NULL DEFAULT 0,
    last_ticket_at     BIGINT NOT NULL DEFAULT 0,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_farebox_passengers_user ON farebox_passengers (user_id);
CREATE INDEX IF NOT EXISTS idx_farebox_passengers_sub ON farebox_passengers (subscription_type, subscription_end);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS farebox_passengers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_farebox_tickets",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS farebox_tickets (
    address      TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL DEFAULT '',
    ticket_id    BIGINT NOT NULL DEFAULT 0,
    mode         SMALLINT NOT NULL DEFAULT 0,
    amount_paid  BIGINT NOT NULL DEFAULT 0,
    status       TEXT NOT NULL DEFAULT 'issued',
    purchased_at BIGINT NOT NULL DEFAULT 0,
    used_at      BIGINT NOT NULL DEFAULT 0,
    refunded_at  BIGINT NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_farebox_tickets_user ON farebox_tickets (user_id);
CREATE INDEX IF NOT EXISTS idx_farebox_tickets_status ON farebox_tickets (user_id, status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS farebox_tickets`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_farebox_payments",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS farebox_payments (
    address    TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL DEFAULT '',
    payment_id BIGINT NOT NULL DEFAULT 0,
    amount     BIGINT NOT NULL DEFAULT 0,
    mint       TEXT NOT NULL DEFAULT '',
    tx_hash    TEXT NOT NULL DEFAULT '',
    paid_at    BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_farebox_payments_user ON farebox_payments (user_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS farebox_payments`)
				return err
			},
		},
	)
}
