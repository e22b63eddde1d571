// Package memory provides an in-process Store backed by maps. It is the
// default backend for tests and embedded use.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/farebox"
	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/ticket"
)

type Store struct {
	mu sync.RWMutex

	// Fare config singleton
	config *fareconfig.FareConfig

	// Passenger storage
	passengers map[addr.Address]*passenger.Passenger

	// Ticket storage
	tickets map[addr.Address]*ticket.Ticket

	// Payment storage
	payments map[addr.Address]*payment.Payment
}

func New() *Store {
	return &Store{
		passengers: make(map[addr.Address]*passenger.Passenger),
		tickets:    make(map[addr.Address]*ticket.Ticket),
		payments:   make(map[addr.Address]*payment.Payment),
	}
}

// Fare config Store implementation
func (s *Store) CreateFareConfig(_ context.Context, c *fareconfig.FareConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config != nil {
		return farebox.ErrAlreadyInitialized
	}
	s.config = c
	return nil
}

func (s *Store) GetFareConfig(_ context.Context) (*fareconfig.FareConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return nil, farebox.ErrConfigNotFound
	}
	return s.config, nil
}

func (s *Store) UpdateFareConfig(_ context.Context, c *fareconfig.FareConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return farebox.ErrConfigNotFound
	}
	s.config = c
	return nil
}

// Passenger Store implementation
func (s *Store) PutPassenger(_ context.Context, address addr.Address, p *passenger.Passenger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.passengers[address] = p
	return nil
}

func (s *Store) GetPassenger(_ context.Context, address addr.Address) (*passenger.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.passengers[address]; ok {
		return p, nil
	}
	return nil, farebox.ErrPassengerNotFound
}

// Ticket Store implementation
func (s *Store) CreateTicket(_ context.Context, address addr.Address, t *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[address]; exists {
		return farebox.ErrDuplicateTicketID
	}
	s.tickets[address] = t
	return nil
}

func (s *Store) GetTicket(_ context.Context, address addr.Address) (*ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tickets[address]; ok {
		return t, nil
	}
	return nil, farebox.ErrTicketNotFound
}

func (s *Store) UpdateTicket(_ context.Context, address addr.Address, t *ticket.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tickets[address]; !exists {
		return farebox.ErrTicketNotFound
	}
	s.tickets[address] = t
	return nil
}

// Payment Store implementation
func (s *Store) CreatePayment(_ context.Context, address addr.Address, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[address]; exists {
		return farebox.ErrDuplicatePaymentID
	}
	s.payments[address] = p
	return nil
}

func (s *Store) GetPayment(_ context.Context, address addr.Address) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.payments[address]; ok {
		return p, nil
	}
	return nil, farebox.ErrPaymentNotFound
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
