package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                  []OnInit
	onShutdown              []OnShutdown
	onConfigInitialized     []OnConfigInitialized
	onConfigUpdated         []OnConfigUpdated
	onTicketIssued          []OnTicketIssued
	onTicketUsed            []OnTicketUsed
	onTicketRefunded        []OnTicketRefunded
	onSubscriptionPurchased []OnSubscriptionPurchased
	onSubscriptionRideUsed  []OnSubscriptionRideUsed
	onSubscriptionCanceled  []OnSubscriptionCanceled
	onPaymentRecorded       []OnPaymentRecorded
	onTransferSettled       []OnTransferSettled
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnConfigInitialized); ok {
		r.onConfigInitialized = append(r.onConfigInitialized, v)
	}
	if v, ok := p.(OnConfigUpdated); ok {
		r.onConfigUpdated = append(r.onConfigUpdated, v)
	}
	if v, ok := p.(OnTicketIssued); ok {
		r.onTicketIssued = append(r.onTicketIssued, v)
	}
	if v, ok := p.(OnTicketUsed); ok {
		r.onTicketUsed = append(r.onTicketUsed, v)
	}
	if v, ok := p.(OnTicketRefunded); ok {
		r.onTicketRefunded = append(r.onTicketRefunded, v)
	}
	if v, ok := p.(OnSubscriptionPurchased); ok {
		r.onSubscriptionPurchased = append(r.onSubscriptionPurchased, v)
	}
	if v, ok := p.(OnSubscriptionRideUsed); ok {
		r.onSubscriptionRideUsed = append(r.onSubscriptionRideUsed, v)
	}
	if v, ok := p.(OnSubscriptionCanceled); ok {
		r.onSubscriptionCanceled = append(r.onSubscriptionCanceled, v)
	}
	if v, ok := p.(OnPaymentRecorded); ok {
		r.onPaymentRecorded = append(r.onPaymentRecorded, v)
	}
	if v, ok := p.(OnTransferSettled); ok {
		r.onTransferSettled = append(r.onTransferSettled, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnConfigInitialized)(nil)).Elem(), "OnConfigInitialized")
	checkInterface(reflect.TypeOf((*OnConfigUpdated)(nil)).Elem(), "OnConfigUpdated")
	checkInterface(reflect.TypeOf((*OnTicketIssued)(nil)).Elem(), "OnTicketIssued")
	checkInterface(reflect.TypeOf((*OnTicketUsed)(nil)).Elem(), "OnTicketUsed")
	checkInterface(reflect.TypeOf((*OnTicketRefunded)(nil)).Elem(), "OnTicketRefunded")
	checkInterface(reflect.TypeOf((*OnSubscriptionPurchased)(nil)).Elem(), "OnSubscriptionPurchased")
	checkInterface(reflect.TypeOf((*OnSubscriptionRideUsed)(nil)).Elem(), "OnSubscriptionRideUsed")
	checkInterface(reflect.TypeOf((*OnSubscriptionCanceled)(nil)).Elem(), "OnSubscriptionCanceled")
	checkInterface(reflect.TypeOf((*OnPaymentRecorded)(nil)).Elem(), "OnPaymentRecorded")
	checkInterface(reflect.TypeOf((*OnTransferSettled)(nil)).Elem(), "OnTransferSettled")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitConfigInitialized emits a fare configuration created event.
func (r *Registry) EmitConfigInitialized(ctx context.Context, config interface{}) {
	r.mu.RLock()
	plugins := r.onConfigInitialized
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnConfigInitialized(ctx, config)
		}); err != nil {
			r.logger.Warn("plugin OnConfigInitialized failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitConfigUpdated emits a fare configuration updated event.
func (r *Registry) EmitConfigUpdated(ctx context.Context, oldConfig, newConfig interface{}) {
	r.mu.RLock()
	plugins := r.onConfigUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnConfigUpdated(ctx, oldConfig, newConfig)
		}); err != nil {
			r.logger.Warn("plugin OnConfigUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTicketIssued emits a ticket issued event.
func (r *Registry) EmitTicketIssued(ctx context.Context, tkt interface{}) {
	r.mu.RLock()
	plugins := r.onTicketIssued
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTicketIssued(ctx, tkt)
		}); err != nil {
			r.logger.Warn("plugin OnTicketIssued failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTicketUsed emits a ticket used event.
func (r *Registry) EmitTicketUsed(ctx context.Context, tkt interface{}) {
	r.mu.RLock()
	plugins := r.onTicketUsed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTicketUsed(ctx, tkt)
		}); err != nil {
			r.logger.Warn("plugin OnTicketUsed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTicketRefunded emits a ticket refunded event.
func (r *Registry) EmitTicketRefunded(ctx context.Context, tkt interface{}, amount uint64) {
	r.mu.RLock()
	plugins := r.onTicketRefunded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTicketRefunded(ctx, tkt, amount)
		}); err != nil {
			r.logger.Warn("plugin OnTicketRefunded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionPurchased emits a pass purchased event.
func (r *Registry) EmitSubscriptionPurchased(ctx context.Context, pass interface{}) {
	r.mu.RLock()
	plugins := r.onSubscriptionPurchased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionPurchased(ctx, pass)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionPurchased failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionRideUsed emits a pass ride used event.
func (r *Registry) EmitSubscriptionRideUsed(ctx context.Context, pass interface{}) {
	r.mu.RLock()
	plugins := r.onSubscriptionRideUsed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionRideUsed(ctx, pass)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionRideUsed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionCanceled emits a pass canceled event.
func (r *Registry) EmitSubscriptionCanceled(ctx context.Context, pass interface{}, refund uint64) {
	r.mu.RLock()
	plugins := r.onSubscriptionCanceled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionCanceled(ctx, pass, refund)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionCanceled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentRecorded emits a payment recorded event.
func (r *Registry) EmitPaymentRecorded(ctx context.Context, pmt interface{}) {
	r.mu.RLock()
	plugins := r.onPaymentRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentRecorded(ctx, pmt)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransferSettled emits a transfer settled event.
func (r *Registry) EmitTransferSettled(ctx context.Context, receipt interface{}) {
	r.mu.RLock()
	plugins := r.onTransferSettled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransferSettled(ctx, receipt)
		}); err != nil {
			r.logger.Warn("plugin OnTransferSettled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the fare pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
