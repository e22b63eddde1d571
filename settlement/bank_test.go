package settlement

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const testMint = "So11111111111111111111111111111111111111112"

func TestBankTransfer(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(ClockFunc(func() int64 { return 12345 }))
	bank.Deposit("alice", testMint, 100)

	receipt, err := bank.Transfer(ctx, "alice", "treasury", testMint, "alice", 60)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if bank.Balance("alice", testMint) != 40 {
		t.Errorf("alice balance: got %d, want 40", bank.Balance("alice", testMint))
	}
	if bank.Balance("treasury", testMint) != 60 {
		t.Errorf("treasury balance: got %d, want 60", bank.Balance("treasury", testMint))
	}
	if receipt.Amount != 60 || receipt.Source != "alice" || receipt.Destination != "treasury" {
		t.Errorf("receipt fields wrong: %+v", receipt)
	}
	if receipt.SettledAt != 12345 {
		t.Errorf("SettledAt: got %d, want 12345", receipt.SettledAt)
	}
	if !strings.HasPrefix(receipt.ID.String(), "xfer_") {
		t.Errorf("receipt ID: got %s", receipt.ID)
	}
}

func TestBankInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)
	bank.Deposit("alice", testMint, 50)

	_, err := bank.Transfer(ctx, "alice", "treasury", testMint, "alice", 100)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Nothing moved.
	if bank.Balance("alice", testMint) != 50 {
		t.Errorf("alice balance changed on failure: %d", bank.Balance("alice", testMint))
	}
	if bank.Balance("treasury", testMint) != 0 {
		t.Errorf("treasury balance changed on failure: %d", bank.Balance("treasury", testMint))
	}
}

func TestBankMintIsolation(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)
	bank.Deposit("alice", "mintA", 100)

	// Balance in a different mint cannot cover the transfer.
	_, err := bank.Transfer(ctx, "alice", "treasury", "mintB", "alice", 10)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds across mints, got %v", err)
	}
}

func TestBankUnknownAccount(t *testing.T) {
	ctx := context.Background()
	bank := NewBank(nil)

	_, err := bank.Transfer(ctx, "ghost", "treasury", testMint, "ghost", 1)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds for unknown account, got %v", err)
	}
}

func TestClockFunc(t *testing.T) {
	c := ClockFunc(func() int64 { return 42 })
	if c.Now() != 42 {
		t.Errorf("ClockFunc: got %d", c.Now())
	}
}

func TestTransferFunc(t *testing.T) {
	called := false
	fn := TransferFunc(func(_ context.Context, source, destination, mint, authority string, amount uint64) (*Receipt, error) {
		called = true
		return &Receipt{Source: source, Destination: destination, Mint: mint, Amount: amount}, nil
	})

	r, err := fn.Transfer(context.Background(), "a", "b", testMint, "a", 7)
	if err != nil || !called {
		t.Fatalf("TransferFunc not invoked: %v", err)
	}
	if r.Amount != 7 {
		t.Errorf("Amount: got %d", r.Amount)
	}
}
