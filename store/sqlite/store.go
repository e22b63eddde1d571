// Package sqlite implements the Farebox store on SQLite via Grove ORM.
// Suited to single-node deployments and integration tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/farebox"
	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	fareboxstore "github.com/xraph/farebox/store"
	"github.com/xraph/farebox/ticket"
)

// compile-time interface check
var _ fareboxstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("farebox/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("farebox/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Fare config store ====================

func (s *Store) CreateFareConfig(ctx context.Context, c *fareconfig.FareConfig) error {
	m := toFareConfigModel(addr.FareConfig().String(), c)
	res, err := s.sdb.NewInsert(m).
		OnConflict("(address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return farebox.ErrAlreadyInitialized
	}
	return nil
}

func (s *Store) GetFareConfig(ctx context.Context) (*fareconfig.FareConfig, error) {
	m := new(fareConfigModel)
	err := s.sdb.NewSelect(m).
		Where("address = ?", addr.FareConfig().String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, farebox.ErrConfigNotFound
		}
		return nil, err
	}
	return fromFareConfigModel(m), nil
}

func (s *Store) UpdateFareConfig(ctx context.Context, c *fareconfig.FareConfig) error {
	m := toFareConfigModel(addr.FareConfig().String(), c)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return farebox.ErrConfigNotFound
	}
	return nil
}

// ==================== Passenger store ====================

func (s *Store) PutPassenger(ctx context.Context, address addr.Address, p *passenger.Passenger) error {
	m := toPassengerModel(address.String(), p)
	_, err := s.sdb.NewInsert(m).
		OnConflict("(address) DO UPDATE").
		Set("subscription_type = EXCLUDED.subscription_type").
		Set("subscription_start = EXCLUDED.subscription_start").
		Set("subscription_end = EXCLUDED.subscription_end").
		Set("rides_used = EXCLUDED.rides_used").
		Set("price_paid = EXCLUDED.price_paid").
		Set("total_spent = EXCLUDED.total_spent").
		Set("ticket_count = EXCLUDED.ticket_count").
		Set("last_ticket_at = EXCLUDED.last_ticket_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetPassenger(ctx context.Context, address addr.Address) (*passenger.Passenger, error) {
	m := new(passengerModel)
	err := s.sdb.NewSelect(m).
		Where("address = ?", address.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, farebox.ErrPassengerNotFound
		}
		return nil, err
	}
	return fromPassengerModel(m), nil
}

// ==================== Ticket store ====================

func (s *Store) CreateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error {
	m := toTicketModel(address.String(), t)
	res, err := s.sdb.NewInsert(m).
		OnConflict("(address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return farebox.ErrDuplicateTicketID
	}
	return nil
}

func (s *Store) GetTicket(ctx context.Context, address addr.Address) (*ticket.Ticket, error) {
	m := new(ticketModel)
	err := s.sdb.NewSelect(m).
		Where("address = ?", address.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, farebox.ErrTicketNotFound
		}
		return nil, err
	}
	return fromTicketModel(m), nil
}

func (s *Store) UpdateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error {
	m := toTicketModel(address.String(), t)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return farebox.ErrTicketNotFound
	}
	return nil
}

// ==================== Payment store ====================

func (s *Store) CreatePayment(ctx context.Context, address addr.Address, p *payment.Payment) error {
	m := toPaymentModel(address.String(), p)
	res, err := s.sdb.NewInsert(m).
		OnConflict("(address) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return farebox.ErrDuplicatePaymentID
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, address addr.Address) (*payment.Payment, error) {
	m := new(paymentModel)
	err := s.sdb.NewSelect(m).
		Where("address = ?", address.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, farebox.ErrPaymentNotFound
		}
		return nil, err
	}
	return fromPaymentModel(m), nil
}

// ==================== Helpers ====================

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
