package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xraph/farebox/id"
)

// ErrInsufficientFunds is returned when the source balance cannot cover a
// transfer.
var ErrInsufficientFunds = errors.New("settlement: insufficient funds")

// Bank is an in-memory Transfer implementation tracking per-account,
// per-mint balances. It backs tests and embedded deployments that do not
// settle against an external token system.
type Bank struct {
	mu       sync.Mutex
	balances map[string]map[string]uint64 // account -> mint -> amount
	clock    Clock
}

// NewBank creates an empty Bank stamped by clock. A nil clock uses the
// system clock.
func NewBank(clock Clock) *Bank {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Bank{
		balances: make(map[string]map[string]uint64),
		clock:    clock,
	}
}

// Deposit credits an account outside of any transfer, for seeding test
// and demo balances.
func (b *Bank) Deposit(account, mint string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(account, mint, amount)
}

// Balance returns the account's balance in the given mint.
func (b *Bank) Balance(account, mint string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account][mint]
}

// Transfer implements the Transfer interface. The debit and credit happen
// under one lock, so a failure leaves both balances untouched.
func (b *Bank) Transfer(_ context.Context, source, destination, mint, _ string, amount uint64) (*Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	have := b.balances[source][mint]
	if have < amount {
		return nil, fmt.Errorf("settlement: transfer %d from %s: have %d: %w", amount, source, have, ErrInsufficientFunds)
	}

	b.balances[source][mint] = have - amount
	b.credit(destination, mint, amount)

	return &Receipt{
		ID:          id.NewTransferID(),
		Source:      source,
		Destination: destination,
		Mint:        mint,
		Amount:      amount,
		SettledAt:   b.clock.Now(),
	}, nil
}

// credit adds to a balance. Callers hold the lock.
func (b *Bank) credit(account, mint string, amount uint64) {
	if b.balances[account] == nil {
		b.balances[account] = make(map[string]uint64)
	}
	b.balances[account][mint] += amount
}
