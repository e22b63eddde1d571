// Package settlement defines the collaborators the engine moves money
// through: the Transfer interface to the external token system, receipts
// for completed transfers, and the clock used to timestamp commits.
package settlement

import (
	"context"
	"time"

	"github.com/xraph/farebox/id"
)

// Transfer moves tokens between accounts. Implementations must be atomic:
// either the full amount moves or nothing does. An error means no funds
// moved; the engine treats it as a transport failure and leaves all
// records untouched.
type Transfer interface {
	Transfer(ctx context.Context, source, destination, mint, authority string, amount uint64) (*Receipt, error)
}

// Receipt records one completed transfer.
type Receipt struct {
	ID          id.TransferID `json:"id"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Mint        string        `json:"mint"`
	Amount      uint64        `json:"amount"`
	SettledAt   int64         `json:"settled_at"`
}

// Clock supplies the current time as unix seconds. Commits are stamped
// through this interface so tests can pin time exactly.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }

// TransferFunc adapts a function to the Transfer interface.
type TransferFunc func(ctx context.Context, source, destination, mint, authority string, amount uint64) (*Receipt, error)

func (f TransferFunc) Transfer(ctx context.Context, source, destination, mint, authority string, amount uint64) (*Receipt, error) {
	return f(ctx, source, destination, mint, authority, amount)
}
