package passenger

import (
	"context"

	"github.com/xraph/farebox/addr"
)

// Store persists passenger records keyed by derived address. Put is an
// upsert; passenger records are created on first use and mutated in place
// afterwards.
type Store interface {
	Put(ctx context.Context, address addr.Address, p *Passenger) error
	Get(ctx context.Context, address addr.Address) (*Passenger, error)
}
