package extension

import "github.com/xraph/farebox/wallet"

// Config holds the Farebox extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.farebox" or "farebox" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Treasury is the account fares settle into and refunds come from
	// (default: "treasury").
	Treasury string `json:"treasury" mapstructure:"treasury" yaml:"treasury"`

	// Wallet selects the identity the application operates as. An empty
	// config generates a fresh signing keypair.
	Wallet wallet.Config `json:"wallet" mapstructure:"wallet" yaml:"wallet"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Treasury: "treasury",
	}
}
