package store

import (
	"context"

	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/ticket"
)

// Store is the unified storage interface for all Farebox records.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
//
// All records are keyed by their deterministic address. Create methods fail
// when the address is already occupied; that failure is how the engine
// enforces single initialization and duplicate id rejection at the storage
// boundary.
type Store interface {
	// Fare config methods. The configuration is a singleton; its address
	// is fixed, so these methods take no address argument.
	CreateFareConfig(ctx context.Context, c *fareconfig.FareConfig) error
	GetFareConfig(ctx context.Context) (*fareconfig.FareConfig, error)
	UpdateFareConfig(ctx context.Context, c *fareconfig.FareConfig) error

	// Passenger methods. Put is an upsert: passenger records are created
	// lazily on first use.
	PutPassenger(ctx context.Context, address addr.Address, p *passenger.Passenger) error
	GetPassenger(ctx context.Context, address addr.Address) (*passenger.Passenger, error)

	// Ticket methods
	CreateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error
	GetTicket(ctx context.Context, address addr.Address) (*ticket.Ticket, error)
	UpdateTicket(ctx context.Context, address addr.Address, t *ticket.Ticket) error

	// Payment methods. Write-once: no update, no delete.
	CreatePayment(ctx context.Context, address addr.Address, p *payment.Payment) error
	GetPayment(ctx context.Context, address addr.Address) (*payment.Payment, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
