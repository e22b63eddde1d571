// Package wallet models the identities that operations act on behalf of.
//
// A wallet is a small capability set, not a mode switch: a signing wallet
// can authorize transfers, a watch-only wallet can only observe. Callers
// branch on the capabilities, never on a concrete type.
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// Wallet is the capability set shared by all variants.
type Wallet interface {
	// Address returns the account identifier operations are keyed by.
	Address() string
	// CanSign reports whether the wallet can authorize transfers.
	CanSign() bool
	// CanConnect reports whether the wallet can establish a session with
	// a settlement backend. Air-gapped signers report false.
	CanConnect() bool
}

// Signer is the extra capability of wallets that hold a private key.
type Signer interface {
	Wallet
	Sign(message []byte) ([]byte, error)
}

// ErrWatchOnly is returned when a signature is requested from a wallet
// that cannot produce one.
var ErrWatchOnly = errors.New("wallet: watch-only wallet cannot sign")

// Keypair is a signing wallet backed by an ed25519 key.
type Keypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// NewKeypair generates a fresh signing wallet.
func NewKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("wallet: generate keypair: %w", err)
	}
	return &Keypair{pub: pub, priv: priv}, nil
}

// KeypairFromSeed derives a deterministic signing wallet from a 32-byte
// seed. Intended for tests and fixtures.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("wallet: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Keypair{pub: priv.Public().(ed25519.PublicKey), priv: priv}, nil
}

func (k *Keypair) Address() string  { return hex.EncodeToString(k.pub) }
func (k *Keypair) CanSign() bool    { return true }
func (k *Keypair) CanConnect() bool { return true }

// Sign signs the message with the wallet's private key.
func (k *Keypair) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.priv, message), nil
}

// Verify checks a signature against the wallet's public key.
func (k *Keypair) Verify(message, sig []byte) bool {
	return ed25519.Verify(k.pub, message, sig)
}

// WatchOnly observes an address without holding its key.
type WatchOnly struct {
	address string
}

// NewWatchOnly creates a watch-only wallet for the given address.
func NewWatchOnly(address string) *WatchOnly {
	return &WatchOnly{address: address}
}

func (w *WatchOnly) Address() string  { return w.address }
func (w *WatchOnly) CanSign() bool    { return false }
func (w *WatchOnly) CanConnect() bool { return true }

// Offline is an air-gapped signing wallet: it can authorize transfers but
// never establishes a session itself. Signed payloads are relayed by a
// connected party.
type Offline struct {
	*Keypair
}

// NewOffline wraps a Keypair as an air-gapped signer.
func NewOffline(k *Keypair) *Offline {
	return &Offline{Keypair: k}
}

func (o *Offline) CanConnect() bool { return false }

// Config selects a wallet variant.
type Config struct {
	// Address makes the wallet watch-only for this account. Mutually
	// exclusive with Seed.
	Address string `json:"address" yaml:"address"`
	// Seed is a hex-encoded 32-byte ed25519 seed for a signing wallet.
	Seed string `json:"seed" yaml:"seed"`
	// Offline marks a seed-backed wallet as air-gapped. Requires Seed.
	Offline bool `json:"offline" yaml:"offline"`
}

// New builds a wallet from configuration: a seed yields a signing
// Keypair, an address yields a WatchOnly, neither yields a fresh Keypair.
func New(cfg Config) (Wallet, error) {
	switch {
	case cfg.Seed != "" && cfg.Address != "":
		return nil, errors.New("wallet: seed and address are mutually exclusive")
	case cfg.Seed != "":
		seed, err := hex.DecodeString(cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("wallet: decode seed: %w", err)
		}
		k, err := KeypairFromSeed(seed)
		if err != nil {
			return nil, err
		}
		if cfg.Offline {
			return NewOffline(k), nil
		}
		return k, nil
	case cfg.Offline:
		return nil, errors.New("wallet: offline requires a seed")
	case cfg.Address != "":
		return NewWatchOnly(cfg.Address), nil
	default:
		return NewKeypair()
	}
}
