// Package fareconfig defines the fare configuration singleton: the admin
// authority, the accepted currency, per-mode single-ride fares, pass
// prices, and the two global counters.
package fareconfig

import (
	"errors"

	"github.com/xraph/farebox/types"
)

// Mode is a transport mode with its own configured fare.
type Mode uint8

const (
	ModeBus   Mode = 0
	ModeTrain Mode = 1
)

// Valid reports whether the mode is one of the configured transport modes.
func (m Mode) Valid() bool {
	return m == ModeBus || m == ModeTrain
}

func (m Mode) String() string {
	switch m {
	case ModeBus:
		return "bus"
	case ModeTrain:
		return "train"
	default:
		return "unknown"
	}
}

// ErrCounterUnderflow is returned when a counter decrement would go below
// zero. The engine maps it to its own sentinel.
var ErrCounterUnderflow = errors.New("fareconfig: counter underflow")

// FareConfig is the singleton configuration record. There is exactly one
// per deployment; all money-moving operations read it.
type FareConfig struct {
	types.Entity
	Admin                    string `json:"admin" bson:"admin"`
	CurrencyMint             string `json:"currency_mint" bson:"currency_mint"`
	BusFare                  uint64 `json:"bus_fare" bson:"bus_fare"`
	TrainFare                uint64 `json:"train_fare" bson:"train_fare"`
	MonthlyPassPrice         uint64 `json:"monthly_pass_price" bson:"monthly_pass_price"`
	YearlyPassPrice          uint64 `json:"yearly_pass_price" bson:"yearly_pass_price"`
	TotalTicketsSold         uint64 `json:"total_tickets_sold" bson:"total_tickets_sold"`
	TotalActiveSubscriptions uint64 `json:"total_active_subscriptions" bson:"total_active_subscriptions"`
}

// New builds the initial configuration with zeroed counters.
func New(admin, currencyMint string, busFare, trainFare, monthlyPrice, yearlyPrice uint64) *FareConfig {
	return &FareConfig{
		Entity:           types.NewEntity(),
		Admin:            admin,
		CurrencyMint:     currencyMint,
		BusFare:          busFare,
		TrainFare:        trainFare,
		MonthlyPassPrice: monthlyPrice,
		YearlyPassPrice:  yearlyPrice,
	}
}

// FareFor returns the configured fare for the given mode. The second
// return is false for an unknown mode.
func (c *FareConfig) FareFor(mode Mode) (uint64, bool) {
	switch mode {
	case ModeBus:
		return c.BusFare, true
	case ModeTrain:
		return c.TrainFare, true
	default:
		return 0, false
	}
}

// Fare returns the configured fare for mode as a typed Amount.
func (c *FareConfig) Fare(mode Mode) (types.Amount, bool) {
	v, ok := c.FareFor(mode)
	if !ok {
		return types.Amount{}, false
	}

	return types.Tokens(c.CurrencyMint, v), true
}

// PassPrice returns the pass price for the given subscription duration as
// a typed Amount. yearly selects the yearly price.
func (c *FareConfig) PassPrice(yearly bool) types.Amount {
	if yearly {
		return types.Tokens(c.CurrencyMint, c.YearlyPassPrice)
	}

	return types.Tokens(c.CurrencyMint, c.MonthlyPassPrice)
}

// IncrementTicketsSold bumps the lifetime ticket counter.
func (c *FareConfig) IncrementTicketsSold() {
	c.TotalTicketsSold++
	c.Touch()
}

// DecrementTicketsSold rolls the ticket counter back after a refund,
// saturating at zero.
func (c *FareConfig) DecrementTicketsSold() {
	if c.TotalTicketsSold > 0 {
		c.TotalTicketsSold--
	}
	c.Touch()
}

// IncrementActiveSubscriptions bumps the active subscription counter.
func (c *FareConfig) IncrementActiveSubscriptions() {
	c.TotalActiveSubscriptions++
	c.Touch()
}

// DecrementActiveSubscriptions decrements the active subscription counter.
// Returns ErrCounterUnderflow if the counter is already zero; an explicit
// cancel against a zero counter signals a bookkeeping bug, so unlike the
// ticket counter this one does not silently saturate.
func (c *FareConfig) DecrementActiveSubscriptions() error {
	if c.TotalActiveSubscriptions == 0 {
		return ErrCounterUnderflow
	}

	c.TotalActiveSubscriptions--
	c.Touch()

	return nil
}

// Update describes a partial fare configuration change. Nil fields keep
// their current values.
type Update struct {
	BusFare          *uint64 `json:"bus_fare,omitempty"`
	TrainFare        *uint64 `json:"train_fare,omitempty"`
	MonthlyPassPrice *uint64 `json:"monthly_pass_price,omitempty"`
	YearlyPassPrice  *uint64 `json:"yearly_pass_price,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.BusFare == nil && u.TrainFare == nil &&
		u.MonthlyPassPrice == nil && u.YearlyPassPrice == nil
}

// Validate checks that every set field carries a usable value. Zero fares
// and pass prices are rejected: a free ride is configured by not selling
// tickets, not by a zero fare.
func (u Update) Validate() error {
	for _, f := range []*uint64{u.BusFare, u.TrainFare, u.MonthlyPassPrice, u.YearlyPassPrice} {
		if f != nil && *f == 0 {
			return errors.New("fareconfig: zero amount")
		}
	}

	return nil
}

// Apply overwrites the configured amounts with the update's set fields.
func (c *FareConfig) Apply(u Update) {
	if u.BusFare != nil {
		c.BusFare = *u.BusFare
	}
	if u.TrainFare != nil {
		c.TrainFare = *u.TrainFare
	}
	if u.MonthlyPassPrice != nil {
		c.MonthlyPassPrice = *u.MonthlyPassPrice
	}
	if u.YearlyPassPrice != nil {
		c.YearlyPassPrice = *u.YearlyPassPrice
	}
	c.Touch()
}
