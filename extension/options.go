package extension

import (
	"github.com/xraph/farebox"
	"github.com/xraph/farebox/plugin"
	"github.com/xraph/farebox/settlement"
	"github.com/xraph/farebox/store"
	"github.com/xraph/farebox/wallet"
)

// Option configures the Farebox Forge extension.
type Option func(*Extension)

// WithStore sets the store for the fare engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a farebox.Option through to the underlying engine.
func WithEngineOption(opt farebox.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a farebox plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, farebox.WithPlugin(p))
	}
}

// WithTransfer sets the settlement backend for value transfers.
func WithTransfer(t settlement.Transfer) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, farebox.WithTransfer(t))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithTreasury sets the treasury account.
func WithTreasury(account string) Option {
	return func(e *Extension) { e.config.Treasury = account }
}

// WithWallet sets the wallet configuration.
func WithWallet(cfg wallet.Config) Option {
	return func(e *Extension) { e.config.Wallet = cfg }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
