package ticket

import (
	"context"

	"github.com/xraph/farebox/addr"
)

// Store persists tickets keyed by derived address. Create fails when the
// address is occupied, which is how duplicate ticket ids are rejected.
type Store interface {
	Create(ctx context.Context, address addr.Address, t *Ticket) error
	Get(ctx context.Context, address addr.Address) (*Ticket, error)
	Update(ctx context.Context, address addr.Address, t *Ticket) error
}
