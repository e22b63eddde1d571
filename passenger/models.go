// Package passenger defines per-user subscription state and ride
// statistics.
//
// Subscription expiry is lazy: nothing in storage changes when a pass runs
// out. Every reader evaluates HasActiveSubscription against the current
// time, so an expired record keeps its type and window until the user
// explicitly purchases again or cancels.
package passenger

import (
	"github.com/xraph/farebox/types"
)

// SubscriptionType enumerates pass kinds. The zero value means no pass.
type SubscriptionType uint8

const (
	SubscriptionNone    SubscriptionType = 0
	SubscriptionMonthly SubscriptionType = 1
	SubscriptionYearly  SubscriptionType = 2
)

// Pass durations in seconds.
const (
	MonthlyDuration = 30 * 86400  // 2,592,000
	YearlyDuration  = 365 * 86400 // 31,536,000
)

// Purchasable reports whether the type can be bought. None is a state,
// not a product.
func (t SubscriptionType) Purchasable() bool {
	return t == SubscriptionMonthly || t == SubscriptionYearly
}

// Duration returns the pass length in seconds, or 0 for None.
func (t SubscriptionType) Duration() int64 {
	switch t {
	case SubscriptionMonthly:
		return MonthlyDuration
	case SubscriptionYearly:
		return YearlyDuration
	default:
		return 0
	}
}

func (t SubscriptionType) String() string {
	switch t {
	case SubscriptionNone:
		return "none"
	case SubscriptionMonthly:
		return "monthly"
	case SubscriptionYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Passenger is the per-user record. Timestamps are unix seconds to match
// the external sequencer's clock granularity.
type Passenger struct {
	types.Entity
	User              string           `json:"user" bson:"user"`
	SubscriptionType  SubscriptionType `json:"subscription_type" bson:"subscription_type"`
	SubscriptionStart int64            `json:"subscription_start" bson:"subscription_start"`
	SubscriptionEnd   int64            `json:"subscription_end" bson:"subscription_end"`
	RidesUsed         uint64           `json:"rides_used" bson:"rides_used"`
	PricePaid         uint64           `json:"price_paid" bson:"price_paid"`
	TotalSpent        uint64           `json:"total_spent" bson:"total_spent"`
	TicketCount       uint64           `json:"ticket_count" bson:"ticket_count"`
	LastTicketAt      int64            `json:"last_ticket_at" bson:"last_ticket_at"`
}

// New creates an empty passenger record for user.
func New(user string) *Passenger {
	return &Passenger{
		Entity: types.NewEntity(),
		User:   user,
	}
}

// HasActiveSubscription is the single source of truth for pass validity:
// a purchasable type and now strictly before the end of the window.
func (p *Passenger) HasActiveSubscription(now int64) bool {
	return p.SubscriptionType.Purchasable() && now < p.SubscriptionEnd
}

// IsExpired reports whether the record holds a pass whose window has
// closed. Distinct from "no subscription": the type is still set.
func (p *Passenger) IsExpired(now int64) bool {
	return p.SubscriptionType.Purchasable() && now >= p.SubscriptionEnd
}

// ActivateSubscription installs a fresh pass window starting at now.
// Rides reset; the paid price is kept for later proration.
func (p *Passenger) ActivateSubscription(subType SubscriptionType, now int64, pricePaid uint64) {
	p.SubscriptionType = subType
	p.SubscriptionStart = now
	p.SubscriptionEnd = now + subType.Duration()
	p.RidesUsed = 0
	p.PricePaid = pricePaid
	p.Touch()
}

// UseRide counts one ride against the active pass. The caller must have
// verified activity first.
func (p *Passenger) UseRide() {
	p.RidesUsed++
	p.Touch()
}

// RefundAt computes the floor-prorated refund for cancelling at now:
// price * remaining / total with a 128-bit intermediate. Defined only
// while the pass is active; returns 0 otherwise. The result never exceeds
// the price paid.
func (p *Passenger) RefundAt(now int64, price uint64) uint64 {
	if !p.HasActiveSubscription(now) {
		return 0
	}

	total := p.SubscriptionEnd - p.SubscriptionStart
	remaining := p.SubscriptionEnd - now
	if total <= 0 || remaining <= 0 {
		return 0
	}

	return types.Prorate(price, uint64(remaining), uint64(total))
}

// ClearSubscription resets the record to the no-pass state after a cancel.
func (p *Passenger) ClearSubscription() {
	p.SubscriptionType = SubscriptionNone
	p.SubscriptionStart = 0
	p.SubscriptionEnd = 0
	p.RidesUsed = 0
	p.PricePaid = 0
	p.Touch()
}

// RecordTicketPurchase folds a single-ride purchase into the running
// statistics.
func (p *Passenger) RecordTicketPurchase(amount uint64, now int64) {
	p.TotalSpent += amount
	p.TicketCount++
	p.LastTicketAt = now
	p.Touch()
}

// RollBackTicketPurchase reverses a purchase's statistics after a refund,
// saturating at zero.
func (p *Passenger) RollBackTicketPurchase(amount uint64) {
	if p.TotalSpent >= amount {
		p.TotalSpent -= amount
	} else {
		p.TotalSpent = 0
	}
	if p.TicketCount > 0 {
		p.TicketCount--
	}
	p.Touch()
}
