package payment

import (
	"context"

	"github.com/xraph/farebox/addr"
)

// Store persists payment records keyed by derived address. The ledger is
// write-once: Create fails when the address is occupied and no update or
// delete exists.
type Store interface {
	Create(ctx context.Context, address addr.Address, p *Payment) error
	Get(ctx context.Context, address addr.Address) (*Payment, error)
}
