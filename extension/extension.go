// Package extension provides the Forge extension adapter for Farebox.
//
// It implements the forge.Extension interface to integrate Farebox
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.farebox" or "farebox" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/farebox"
	"github.com/xraph/farebox/store"
	"github.com/xraph/farebox/store/memory"
	"github.com/xraph/farebox/wallet"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "farebox"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Transit fare payment and subscription engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Farebox as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *farebox.Engine
	store      store.Store
	wallet     wallet.Wallet
	engineOpts []farebox.Option
}

// New creates a new Farebox Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Farebox instance.
// This is nil until Register is called.
func (e *Extension) Engine() *farebox.Engine { return e.engine }

// Wallet returns the application wallet.
// This is nil until Register is called.
func (e *Extension) Wallet() wallet.Wallet { return e.wallet }

// Register implements [forge.Extension]. It loads configuration,
// initializes the fare engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	w, err := wallet.New(e.config.Wallet)
	if err != nil {
		return fmt.Errorf("farebox: build wallet: %w", err)
	}
	e.wallet = w

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	e.engine = farebox.New(e.store, opts...)

	if err := vessel.Provide(fapp.Container(), func() (*farebox.Engine, error) {
		return e.engine, nil
	}); err != nil {
		return err
	}

	return vessel.Provide(fapp.Container(), func() (wallet.Wallet, error) {
		return e.wallet, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("farebox: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("farebox: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs farebox.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []farebox.Option {
	opts := make([]farebox.Option, 0, len(e.engineOpts)+1)

	if e.config.Treasury != "" {
		opts = append(opts, farebox.WithTreasury(e.config.Treasury))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("farebox: configuration is required but not found in config files; " +
				"ensure 'extensions.farebox' or 'farebox' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("farebox: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("treasury", e.config.Treasury),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.farebox" first (namespaced pattern).
	if cm.IsSet("extensions.farebox") {
		if err := cm.Bind("extensions.farebox", &cfg); err == nil {
			e.Logger().Debug("farebox: loaded config from file",
				forge.F("key", "extensions.farebox"),
			)
			return cfg, true
		}
		e.Logger().Warn("farebox: failed to bind extensions.farebox config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "farebox" key.
	if cm.IsSet("farebox") {
		if err := cm.Bind("farebox", &cfg); err == nil {
			e.Logger().Debug("farebox: loaded config from file",
				forge.F("key", "farebox"),
			)
			return cfg, true
		}
		e.Logger().Warn("farebox: failed to bind farebox config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Treasury == "" {
		cfg.Treasury = defaults.Treasury
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Treasury == "" && programmaticConfig.Treasury != "" {
		yamlConfig.Treasury = programmaticConfig.Treasury
	}
	if yamlConfig.Wallet == (wallet.Config{}) && programmaticConfig.Wallet != (wallet.Config{}) {
		yamlConfig.Wallet = programmaticConfig.Wallet
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
