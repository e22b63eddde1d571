// Package payment defines the append-only payment ledger.
//
// A payment record is written once and never mutated or deleted. The
// caller-chosen payment id doubles as an idempotency key: a second write
// for the same (user, id) pair is rejected, never merged.
package payment

import (
	"github.com/xraph/farebox/types"
)

// Payment is one immutable ledger entry.
type Payment struct {
	types.Entity
	User      string `json:"user" bson:"user"`
	PaymentID uint64 `json:"payment_id" bson:"payment_id"`
	Amount    uint64 `json:"amount" bson:"amount"`
	Mint      string `json:"mint" bson:"mint"`
	TxHash    string `json:"tx_hash" bson:"tx_hash"`
	PaidAt    int64  `json:"paid_at" bson:"paid_at"`
}

// New builds a payment record timestamped at now.
func New(user string, paymentID, amount uint64, mint, txHash string, now int64) *Payment {
	return &Payment{
		Entity:    types.NewEntity(),
		User:      user,
		PaymentID: paymentID,
		Amount:    amount,
		Mint:      mint,
		TxHash:    txHash,
		PaidAt:    now,
	}
}

// Value returns the payment amount as a typed Amount.
func (p *Payment) Value() types.Amount {
	return types.Tokens(p.Mint, p.Amount)
}
