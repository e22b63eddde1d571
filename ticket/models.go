// Package ticket defines single-ride tickets and their lifecycle.
//
// A ticket moves Issued -> Used or Issued -> Refunded; both destinations
// are terminal. Refunded tickets stay in storage for audit, and their ids
// stay burned: a refunded ticket id can never be reissued.
package ticket

import (
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/types"
)

// Status is the ticket lifecycle state.
type Status string

const (
	StatusIssued   Status = "issued"
	StatusUsed     Status = "used"
	StatusRefunded Status = "refunded"
)

// Ticket is a single-ride fare record.
type Ticket struct {
	types.Entity
	User        string          `json:"user" bson:"user"`
	TicketID    uint64          `json:"ticket_id" bson:"ticket_id"`
	Mode        fareconfig.Mode `json:"mode" bson:"mode"`
	AmountPaid  uint64          `json:"amount_paid" bson:"amount_paid"`
	Status      Status          `json:"status" bson:"status"`
	PurchasedAt int64           `json:"purchased_at" bson:"purchased_at"`
	UsedAt      int64           `json:"used_at,omitempty" bson:"used_at,omitempty"`
	RefundedAt  int64           `json:"refunded_at,omitempty" bson:"refunded_at,omitempty"`
}

// New issues a fresh ticket.
func New(user string, ticketID uint64, mode fareconfig.Mode, amountPaid uint64, now int64) *Ticket {
	return &Ticket{
		Entity:      types.NewEntity(),
		User:        user,
		TicketID:    ticketID,
		Mode:        mode,
		AmountPaid:  amountPaid,
		Status:      StatusIssued,
		PurchasedAt: now,
	}
}

// OwnedBy reports whether user owns the ticket.
func (t *Ticket) OwnedBy(user string) bool {
	return t.User == user
}

// CanTransition reports whether the ticket can leave its current state.
// Only Issued tickets can move; Used and Refunded are terminal.
func (t *Ticket) CanTransition() bool {
	return t.Status == StatusIssued
}

// MarkUsed consumes the ticket. The caller must have checked
// CanTransition.
func (t *Ticket) MarkUsed(now int64) {
	t.Status = StatusUsed
	t.UsedAt = now
	t.Touch()
}

// MarkRefunded voids the ticket. The record is kept so the id stays
// burned and the refund is auditable.
func (t *Ticket) MarkRefunded(now int64) {
	t.Status = StatusRefunded
	t.RefundedAt = now
	t.Touch()
}
