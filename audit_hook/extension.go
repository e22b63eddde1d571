// Package audithook bridges Farebox lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on a
// concrete audit system. Callers inject a RecorderFunc adapter that bridges
// to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/plugin"
	"github.com/xraph/farebox/settlement"
	"github.com/xraph/farebox/ticket"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                  = (*Extension)(nil)
	_ plugin.OnConfigInitialized     = (*Extension)(nil)
	_ plugin.OnConfigUpdated         = (*Extension)(nil)
	_ plugin.OnTicketIssued          = (*Extension)(nil)
	_ plugin.OnTicketUsed            = (*Extension)(nil)
	_ plugin.OnTicketRefunded        = (*Extension)(nil)
	_ plugin.OnSubscriptionPurchased = (*Extension)(nil)
	_ plugin.OnSubscriptionRideUsed  = (*Extension)(nil)
	_ plugin.OnSubscriptionCanceled  = (*Extension)(nil)
	_ plugin.OnPaymentRecorded       = (*Extension)(nil)
	_ plugin.OnTransferSettled       = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so the audit_hook package does not import a
// specific audit system. Callers inject the concrete backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Farebox lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Fare configuration hooks
// ──────────────────────────────────────────────────

// OnConfigInitialized implements plugin.OnConfigInitialized.
func (e *Extension) OnConfigInitialized(ctx context.Context, config interface{}) error {
	cfg, _ := config.(*fareconfig.FareConfig)
	var kv []any
	if cfg != nil {
		kv = append(kv,
			"admin", cfg.Admin,
			"currency_mint", cfg.CurrencyMint,
			"bus_fare", cfg.BusFare,
			"train_fare", cfg.TrainFare,
		)
	}
	return e.record(ctx, ActionConfigInitialized, SeverityInfo, OutcomeSuccess,
		ResourceConfig, "", CategoryFares, nil, kv...)
}

// OnConfigUpdated implements plugin.OnConfigUpdated.
func (e *Extension) OnConfigUpdated(ctx context.Context, oldConfig, newConfig interface{}) error {
	var kv []any
	if oldCfg, ok := oldConfig.(*fareconfig.FareConfig); ok {
		kv = append(kv, "old_bus_fare", oldCfg.BusFare, "old_train_fare", oldCfg.TrainFare)
	}
	if newCfg, ok := newConfig.(*fareconfig.FareConfig); ok {
		kv = append(kv, "new_bus_fare", newCfg.BusFare, "new_train_fare", newCfg.TrainFare)
	}
	return e.record(ctx, ActionConfigUpdated, SeverityInfo, OutcomeSuccess,
		ResourceConfig, "", CategoryFares, nil, kv...)
}

// ──────────────────────────────────────────────────
// Ticket lifecycle hooks
// ──────────────────────────────────────────────────

// OnTicketIssued implements plugin.OnTicketIssued.
func (e *Extension) OnTicketIssued(ctx context.Context, tkt interface{}) error {
	id, kv := ticketDetails(tkt)
	return e.record(ctx, ActionTicketIssued, SeverityInfo, OutcomeSuccess,
		ResourceTicket, id, CategoryFares, nil, kv...)
}

// OnTicketUsed implements plugin.OnTicketUsed.
func (e *Extension) OnTicketUsed(ctx context.Context, tkt interface{}) error {
	id, kv := ticketDetails(tkt)
	return e.record(ctx, ActionTicketUsed, SeverityInfo, OutcomeSuccess,
		ResourceTicket, id, CategoryFares, nil, kv...)
}

// OnTicketRefunded implements plugin.OnTicketRefunded.
func (e *Extension) OnTicketRefunded(ctx context.Context, tkt interface{}, amount uint64) error {
	id, kv := ticketDetails(tkt)
	kv = append(kv, "refund_amount", amount)
	return e.record(ctx, ActionTicketRefunded, SeverityWarning, OutcomeSuccess,
		ResourceTicket, id, CategoryFares, nil, kv...)
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionPurchased implements plugin.OnSubscriptionPurchased.
func (e *Extension) OnSubscriptionPurchased(ctx context.Context, pass interface{}) error {
	id, kv := passDetails(pass)
	return e.record(ctx, ActionSubscriptionPurchased, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, id, CategorySubscription, nil, kv...)
}

// OnSubscriptionRideUsed implements plugin.OnSubscriptionRideUsed.
func (e *Extension) OnSubscriptionRideUsed(ctx context.Context, pass interface{}) error {
	id, kv := passDetails(pass)
	return e.record(ctx, ActionSubscriptionRideUsed, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, id, CategorySubscription, nil, kv...)
}

// OnSubscriptionCanceled implements plugin.OnSubscriptionCanceled.
func (e *Extension) OnSubscriptionCanceled(ctx context.Context, pass interface{}, refund uint64) error {
	id, kv := passDetails(pass)
	kv = append(kv, "refund_amount", refund)
	return e.record(ctx, ActionSubscriptionCanceled, SeverityWarning, OutcomeSuccess,
		ResourceSubscription, id, CategorySubscription, nil, kv...)
}

// ──────────────────────────────────────────────────
// Payment and settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (e *Extension) OnPaymentRecorded(ctx context.Context, pmt interface{}) error {
	var resourceID string
	var kv []any
	if p, ok := pmt.(*payment.Payment); ok {
		resourceID = strconv.FormatUint(p.PaymentID, 10)
		kv = append(kv, "user", p.User, "amount", p.Amount, "mint", p.Mint)
	}
	return e.record(ctx, ActionPaymentRecorded, SeverityInfo, OutcomeSuccess,
		ResourcePayment, resourceID, CategoryPayment, nil, kv...)
}

// OnTransferSettled implements plugin.OnTransferSettled.
func (e *Extension) OnTransferSettled(ctx context.Context, receipt interface{}) error {
	var resourceID string
	var kv []any
	if r, ok := receipt.(*settlement.Receipt); ok {
		resourceID = r.ID.String()
		kv = append(kv, "source", r.Source, "destination", r.Destination, "amount", r.Amount)
	}
	return e.record(ctx, ActionTransferSettled, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, resourceID, CategorySettlement, nil, kv...)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

func ticketDetails(v interface{}) (string, []any) {
	t, ok := v.(*ticket.Ticket)
	if !ok {
		return "", nil
	}
	return strconv.FormatUint(t.TicketID, 10), []any{
		"user", t.User,
		"mode", t.Mode.String(),
		"amount_paid", t.AmountPaid,
		"status", string(t.Status),
	}
}

func passDetails(v interface{}) (string, []any) {
	p, ok := v.(*passenger.Passenger)
	if !ok {
		return "", nil
	}
	return p.User, []any{
		"subscription_type", p.SubscriptionType.String(),
		"subscription_end", p.SubscriptionEnd,
		"rides_used", p.RidesUsed,
	}
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
