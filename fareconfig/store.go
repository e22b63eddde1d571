package fareconfig

import (
	"context"
)

// Store persists the fare configuration singleton. Create fails when a
// configuration already exists.
type Store interface {
	Create(ctx context.Context, c *FareConfig) error
	Get(ctx context.Context) (*FareConfig, error)
	Update(ctx context.Context, c *FareConfig) error
}
