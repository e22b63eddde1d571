package ticket

import (
	"testing"

	"github.com/xraph/farebox/fareconfig"
)

func TestNewTicket(t *testing.T) {
	tk := New("alice", 7, fareconfig.ModeBus, 2_500_000, 1000)

	if tk.Status != StatusIssued {
		t.Errorf("Status: got %v, want Issued", tk.Status)
	}
	if !tk.OwnedBy("alice") || tk.OwnedBy("bob") {
		t.Error("ownership check failed")
	}
	if tk.PurchasedAt != 1000 {
		t.Errorf("PurchasedAt: got %d, want 1000", tk.PurchasedAt)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*Ticket)
		canMove bool
	}{
		{"Issued can transition", func(*Ticket) {}, true},
		{"Used is terminal", func(tk *Ticket) { tk.MarkUsed(2000) }, false},
		{"Refunded is terminal", func(tk *Ticket) { tk.MarkRefunded(2000) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := New("alice", 1, fareconfig.ModeTrain, 5_000_000, 1000)
			tt.prepare(tk)
			if got := tk.CanTransition(); got != tt.canMove {
				t.Errorf("CanTransition: got %v, want %v", got, tt.canMove)
			}
		})
	}
}

func TestMarkUsed(t *testing.T) {
	tk := New("alice", 1, fareconfig.ModeBus, 2_500_000, 1000)
	tk.MarkUsed(2000)

	if tk.Status != StatusUsed {
		t.Errorf("Status: got %v, want Used", tk.Status)
	}
	if tk.UsedAt != 2000 {
		t.Errorf("UsedAt: got %d, want 2000", tk.UsedAt)
	}
}

func TestMarkRefunded(t *testing.T) {
	tk := New("alice", 1, fareconfig.ModeBus, 2_500_000, 1000)
	tk.MarkRefunded(3000)

	if tk.Status != StatusRefunded {
		t.Errorf("Status: got %v, want Refunded", tk.Status)
	}
	if tk.RefundedAt != 3000 {
		t.Errorf("RefundedAt: got %d, want 3000", tk.RefundedAt)
	}
	if tk.AmountPaid != 2_500_000 {
		t.Error("AmountPaid must survive refund for audit")
	}
}
