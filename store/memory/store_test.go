package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/farebox"
	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/store/memory"
	"github.com/xraph/farebox/ticket"
)

const testMint = "So11111111111111111111111111111111111111112"

func TestFareConfigSingleton(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if _, err := s.GetFareConfig(ctx); !errors.Is(err, farebox.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound before init, got %v", err)
	}

	cfg := fareconfig.New("admin", testMint, 2_500_000, 5_000_000, 50_000_000, 500_000_000)
	if err := s.CreateFareConfig(ctx, cfg); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Second create must fail.
	if err := s.CreateFareConfig(ctx, cfg); !errors.Is(err, farebox.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}

	got, err := s.GetFareConfig(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BusFare != 2_500_000 {
		t.Errorf("BusFare: got %d", got.BusFare)
	}

	got.BusFare = 3_000_000
	if err := s.UpdateFareConfig(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := s.GetFareConfig(ctx)
	if again.BusFare != 3_000_000 {
		t.Errorf("updated BusFare: got %d", again.BusFare)
	}
}

func TestPassengerPutGet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	address := addr.Passenger("alice")

	if _, err := s.GetPassenger(ctx, address); !errors.Is(err, farebox.ErrPassengerNotFound) {
		t.Fatalf("expected ErrPassengerNotFound, got %v", err)
	}

	p := passenger.New("alice")
	if err := s.PutPassenger(ctx, address, p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetPassenger(ctx, address)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.User != "alice" {
		t.Errorf("User: got %s", got.User)
	}

	// Put is an upsert.
	p.ActivateSubscription(passenger.SubscriptionMonthly, 1000, 50_000_000)
	if err := s.PutPassenger(ctx, address, p); err != nil {
		t.Fatalf("second put: %v", err)
	}
}

func TestTicketLifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	address := addr.Ticket("alice", 1)

	tk := ticket.New("alice", 1, fareconfig.ModeBus, 2_500_000, 1000)
	if err := s.CreateTicket(ctx, address, tk); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Duplicate address rejected.
	if err := s.CreateTicket(ctx, address, tk); !errors.Is(err, farebox.ErrDuplicateTicketID) {
		t.Fatalf("expected ErrDuplicateTicketID, got %v", err)
	}

	got, err := s.GetTicket(ctx, address)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.MarkUsed(2000)
	if err := s.UpdateTicket(ctx, address, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	again, _ := s.GetTicket(ctx, address)
	if again.Status != ticket.StatusUsed {
		t.Errorf("Status: got %v", again.Status)
	}

	// Update at an unknown address fails.
	if err := s.UpdateTicket(ctx, addr.Ticket("alice", 99), tk); !errors.Is(err, farebox.ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestPaymentWriteOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	address := addr.Payment("alice", 1)

	p := payment.New("alice", 1, 2_500_000, testMint, "0xabc", 1000)
	if err := s.CreatePayment(ctx, address, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	other := payment.New("alice", 1, 9_999_999, testMint, "0xdef", 2000)
	if err := s.CreatePayment(ctx, address, other); !errors.Is(err, farebox.ErrDuplicatePaymentID) {
		t.Fatalf("expected ErrDuplicatePaymentID, got %v", err)
	}

	got, err := s.GetPayment(ctx, address)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 2_500_000 || got.TxHash != "0xabc" {
		t.Error("first write must win")
	}
}

func TestAddressIsolation(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	// Same numeric id for different users and record classes must not
	// collide.
	if err := s.CreateTicket(ctx, addr.Ticket("alice", 1), ticket.New("alice", 1, fareconfig.ModeBus, 1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateTicket(ctx, addr.Ticket("bob", 1), ticket.New("bob", 1, fareconfig.ModeBus, 1, 0)); err != nil {
		t.Fatalf("distinct user collided: %v", err)
	}
	if err := s.CreatePayment(ctx, addr.Payment("alice", 1), payment.New("alice", 1, 1, testMint, "", 0)); err != nil {
		t.Fatalf("payment collided with ticket: %v", err)
	}
}

func TestStoreManagement(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if err := s.Migrate(ctx); err != nil {
		t.Errorf("Migrate: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
