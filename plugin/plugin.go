// Package plugin provides an extensible plugin system for Farebox.
// Plugins can hook into fare lifecycle events to extend functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Fare configuration hooks
// ──────────────────────────────────────────────────

// OnConfigInitialized is called when the fare configuration is created.
type OnConfigInitialized interface {
	Plugin
	OnConfigInitialized(ctx context.Context, config interface{}) error
}

// OnConfigUpdated is called when fare amounts change.
type OnConfigUpdated interface {
	Plugin
	OnConfigUpdated(ctx context.Context, oldConfig, newConfig interface{}) error
}

// ──────────────────────────────────────────────────
// Ticket lifecycle hooks
// ──────────────────────────────────────────────────

// OnTicketIssued is called when a ticket is purchased.
type OnTicketIssued interface {
	Plugin
	OnTicketIssued(ctx context.Context, tkt interface{}) error
}

// OnTicketUsed is called when a ticket is consumed for a ride.
type OnTicketUsed interface {
	Plugin
	OnTicketUsed(ctx context.Context, tkt interface{}) error
}

// OnTicketRefunded is called when a ticket is refunded.
type OnTicketRefunded interface {
	Plugin
	OnTicketRefunded(ctx context.Context, tkt interface{}, amount uint64) error
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionPurchased is called when a pass is activated.
type OnSubscriptionPurchased interface {
	Plugin
	OnSubscriptionPurchased(ctx context.Context, pass interface{}) error
}

// OnSubscriptionRideUsed is called when a ride is counted against a pass.
type OnSubscriptionRideUsed interface {
	Plugin
	OnSubscriptionRideUsed(ctx context.Context, pass interface{}) error
}

// OnSubscriptionCanceled is called when a pass is canceled and refunded.
type OnSubscriptionCanceled interface {
	Plugin
	OnSubscriptionCanceled(ctx context.Context, pass interface{}, refund uint64) error
}

// ──────────────────────────────────────────────────
// Payment and settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentRecorded is called when a payment ledger entry is written.
type OnPaymentRecorded interface {
	Plugin
	OnPaymentRecorded(ctx context.Context, pmt interface{}) error
}

// OnTransferSettled is called after tokens move through the transfer
// backend, with the settlement receipt.
type OnTransferSettled interface {
	Plugin
	OnTransferSettled(ctx context.Context, receipt interface{}) error
}
