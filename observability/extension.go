// Package observability provides a metrics extension for Farebox that records
// lifecycle event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/farebox/plugin"
	"github.com/xraph/farebox/settlement"
	"github.com/xraph/farebox/ticket"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                  = (*MetricsExtension)(nil)
	_ plugin.OnInit                  = (*MetricsExtension)(nil)
	_ plugin.OnConfigInitialized     = (*MetricsExtension)(nil)
	_ plugin.OnConfigUpdated         = (*MetricsExtension)(nil)
	_ plugin.OnTicketIssued          = (*MetricsExtension)(nil)
	_ plugin.OnTicketUsed            = (*MetricsExtension)(nil)
	_ plugin.OnTicketRefunded        = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionPurchased = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionRideUsed  = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionCanceled  = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRecorded       = (*MetricsExtension)(nil)
	_ plugin.OnTransferSettled       = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Farebox plugin to automatically track fare metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Config metrics
	ConfigInitialized Counter
	ConfigUpdated     Counter

	// Ticket metrics
	TicketIssued   Counter
	TicketUsed     Counter
	TicketRefunded Counter
	TicketRevenue  Histogram
	RefundAmount   Histogram

	// Subscription metrics
	SubscriptionPurchased Counter
	SubscriptionRideUsed  Counter
	SubscriptionCanceled  Counter
	SubscriptionRevenue   Histogram

	// Payment metrics
	PaymentRecorded Counter
	PaymentAmount   Histogram

	// Settlement metrics
	TransferSettled Counter
	TransferAmount  Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Config metrics
		ConfigInitialized: factory.Counter("farebox.config.initialized"),
		ConfigUpdated:     factory.Counter("farebox.config.updated"),

		// Ticket metrics
		TicketIssued:   factory.Counter("farebox.ticket.issued"),
		TicketUsed:     factory.Counter("farebox.ticket.used"),
		TicketRefunded: factory.Counter("farebox.ticket.refunded"),
		TicketRevenue:  factory.Histogram("farebox.ticket.revenue"),
		RefundAmount:   factory.Histogram("farebox.ticket.refund_amount"),

		// Subscription metrics
		SubscriptionPurchased: factory.Counter("farebox.subscription.purchased"),
		SubscriptionRideUsed:  factory.Counter("farebox.subscription.ride_used"),
		SubscriptionCanceled:  factory.Counter("farebox.subscription.canceled"),
		SubscriptionRevenue:   factory.Histogram("farebox.subscription.revenue"),

		// Payment metrics
		PaymentRecorded: factory.Counter("farebox.payment.recorded"),
		PaymentAmount:   factory.Histogram("farebox.payment.amount"),

		// Settlement metrics
		TransferSettled: factory.Counter("farebox.transfer.settled"),
		TransferAmount:  factory.Histogram("farebox.transfer.amount"),

		// Error metrics
		StoreErrors:  factory.Counter("farebox.store.errors"),
		PluginErrors: factory.Counter("farebox.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Fare configuration hooks
// ──────────────────────────────────────────────────

// OnConfigInitialized implements plugin.OnConfigInitialized.
func (m *MetricsExtension) OnConfigInitialized(_ context.Context, _ interface{}) error {
	m.ConfigInitialized.Inc()
	return nil
}

// OnConfigUpdated implements plugin.OnConfigUpdated.
func (m *MetricsExtension) OnConfigUpdated(_ context.Context, _, _ interface{}) error {
	m.ConfigUpdated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Ticket lifecycle hooks
// ──────────────────────────────────────────────────

// OnTicketIssued implements plugin.OnTicketIssued.
func (m *MetricsExtension) OnTicketIssued(_ context.Context, tkt interface{}) error {
	m.TicketIssued.Inc()
	if t, ok := tkt.(*ticket.Ticket); ok {
		m.TicketRevenue.Observe(float64(t.AmountPaid))
	}
	return nil
}

// OnTicketUsed implements plugin.OnTicketUsed.
func (m *MetricsExtension) OnTicketUsed(_ context.Context, _ interface{}) error {
	m.TicketUsed.Inc()
	return nil
}

// OnTicketRefunded implements plugin.OnTicketRefunded.
func (m *MetricsExtension) OnTicketRefunded(_ context.Context, _ interface{}, amount uint64) error {
	m.TicketRefunded.Inc()
	m.RefundAmount.Observe(float64(amount))
	return nil
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionPurchased implements plugin.OnSubscriptionPurchased.
func (m *MetricsExtension) OnSubscriptionPurchased(_ context.Context, _ interface{}) error {
	m.SubscriptionPurchased.Inc()
	return nil
}

// OnSubscriptionRideUsed implements plugin.OnSubscriptionRideUsed.
func (m *MetricsExtension) OnSubscriptionRideUsed(_ context.Context, _ interface{}) error {
	m.SubscriptionRideUsed.Inc()
	return nil
}

// OnSubscriptionCanceled implements plugin.OnSubscriptionCanceled.
func (m *MetricsExtension) OnSubscriptionCanceled(_ context.Context, _ interface{}, refund uint64) error {
	m.SubscriptionCanceled.Inc()
	m.RefundAmount.Observe(float64(refund))
	return nil
}

// ──────────────────────────────────────────────────
// Payment and settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (m *MetricsExtension) OnPaymentRecorded(_ context.Context, _ interface{}) error {
	m.PaymentRecorded.Inc()
	return nil
}

// OnTransferSettled implements plugin.OnTransferSettled.
func (m *MetricsExtension) OnTransferSettled(_ context.Context, receipt interface{}) error {
	m.TransferSettled.Inc()
	if r, ok := receipt.(*settlement.Receipt); ok {
		m.TransferAmount.Observe(float64(r.Amount))
	}
	return nil
}
