// Package mongo implements the Farebox store on MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/farebox"
	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	fareboxstore "github.com/xraph/farebox/store"
	"github.com/xraph/farebox/ticket"
)

// Collection name constants.
const (
	colConfig     = "farebox_config"
	colPassengers = "farebox_passengers"
	colTickets    = "farebox_tickets"
	colPayments   = "farebox_payments"
)

// compile-time interface check
var _ fareboxstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all farebox collections. Record identity is
// the _id (derived address), so the indexes only serve secondary lookups.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("farebox/mongo: migrate %s indexes: %w", col, err)
		}
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
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return farebox.ErrAlreadyInitialized
		}
		return fmt.Errorf("farebox/mongo: create fare config: %w", err)
	}
	return nil
}

func (s *Store) GetFareConfig(ctx context.Context) (*fareconfig.FareConfig, error) {
	var m fareConfigModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": addr.FareConfig().String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, farebox.ErrConfigNotFound
		}
		return nil, fmt.Errorf("farebox/mongo: get fare config: %w", err)
	}
	return fromFareConfigModel(&m), nil
}

func (s *Store) UpdateFareConfig(ctx context.Context, c *fareconfig.FareConfig) error {
	m := toFareConfigModel(addr.FareConfig().String(), c)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Address}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("farebox/mongo: update fare config: %w", err)
	}
	if res.MatchedCount() == 0 {
		return farebox.ErrConfigNotFound
	}
	return nil
}

// ==================== Passenger store ====================

func (s *Store) PutPassenger(ctx context.Context, address addr.Address, p *passenger.Passenger) error {
	m := toPassengerModel(address.String(), p)

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Address}).
		SetUpdate(bson.M{"$set": bson.M{
			"_id":                m.Address,
			"user_id":            m.UserID,
			"subscription_type":  m.SubscriptionType,
			"subscription_start": m.SubscriptionStart,
			"subscription_end":   m.SubscriptionEnd,
			"rides_used":         m.RidesUsed,
			"price_paid":         m.PricePaid,
			"total_spent":        m.TotalSpent,
			"ticket_count":       m.TicketCount,
			"last_ticket_at":     m.LastTicketAt,
			"created_at":         m.CreatedAt,
			"updated_at":         m.UpdatedAt,
		}}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("farebox/mongo: put passenger: %w", err)
	}
	return nil
}

func (s *Store) GetPassenger(ctx context.Context, address addr.Address) (*passenger.Passenger, error) {
	var m passengerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": address.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, farebox.ErrPassengerNotFound
		}
		return nil, fmt.Errorf("farebox/mongo: get passenger: %w", err)
	}
	return fromPassengerModel(&m), nil
}

// ==================== Ticket store ====================

func (s *Store) CreateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error {
	m := toTicketModel(address.String(), t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return farebox.ErrDuplicateTicketID
		}
		return fmt.Errorf("farebox/mongo: create ticket: %w", err)
	}
	return nil
}

func (s *Store) GetTicket(ctx context.Context, address addr.Address) (*ticket.Ticket, error) {
	var m ticketModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": address.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, farebox.ErrTicketNotFound
		}
		return nil, fmt.Errorf("farebox/mongo: get ticket: %w", err)
	}
	return fromTicketModel(&m), nil
}

func (s *Store) UpdateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error {
	m := toTicketModel(address.String(), t)
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Address}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("farebox/mongo: update ticket: %w", err)
	}
	if res.MatchedCount() == 0 {
		return farebox.ErrTicketNotFound
	}
	return nil
}

// ==================== Payment store ====================

func (s *Store) CreatePayment(ctx context.Context, address addr.Address, p *payment.Payment) error {
	m := toPaymentModel(address.String(), p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return farebox.ErrDuplicatePaymentID
		}
		return fmt.Errorf("farebox/mongo: create payment: %w", err)
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, address addr.Address) (*payment.Payment, error) {
	var m paymentModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": address.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, farebox.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("farebox/mongo: get payment: %w", err)
	}
	return fromPaymentModel(&m), nil
}

// ==================== Helpers ====================

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all farebox collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colConfig: {},
		colPassengers: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "subscription_type", Value: 1}, {Key: "subscription_end", Value: 1}}},
		},
		colTickets: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colPayments: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "paid_at", Value: -1}}},
		},
	}
}
