package passenger

import "testing"

func TestSubscriptionTypeDuration(t *testing.T) {
	tests := []struct {
		name     string
		subType  SubscriptionType
		expected int64
	}{
		{"Monthly", SubscriptionMonthly, 2_592_000},
		{"Yearly", SubscriptionYearly, 31_536_000},
		{"None", SubscriptionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.subType.Duration(); got != tt.expected {
				t.Errorf("Duration: got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestPurchasable(t *testing.T) {
	if SubscriptionNone.Purchasable() {
		t.Error("None must not be purchasable")
	}
	if !SubscriptionMonthly.Purchasable() || !SubscriptionYearly.Purchasable() {
		t.Error("Monthly and Yearly must be purchasable")
	}
	if SubscriptionType(3).Purchasable() {
		t.Error("unknown type must not be purchasable")
	}
}

func TestHasActiveSubscription(t *testing.T) {
	const start = int64(1_000_000)

	p := New("alice")
	p.ActivateSubscription(SubscriptionMonthly, start, 50_000_000)

	tests := []struct {
		name   string
		now    int64
		active bool
	}{
		{"At start", start, true},
		{"Mid window", start + MonthlyDuration/2, true},
		{"One second before end", start + MonthlyDuration - 1, true},
		{"Exactly at end", start + MonthlyDuration, false},
		{"After end", start + MonthlyDuration + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.HasActiveSubscription(tt.now); got != tt.active {
				t.Errorf("HasActiveSubscription(%d): got %v, want %v", tt.now, got, tt.active)
			}
		})
	}
}

// Expiry is lazy: the record itself keeps its type and window after the
// end passes. Only the predicate changes.
func TestExpiryDoesNotMutate(t *testing.T) {
	const start = int64(1_000_000)

	p := New("alice")
	p.ActivateSubscription(SubscriptionYearly, start, 500_000_000)

	after := start + YearlyDuration + 1
	if p.HasActiveSubscription(after) {
		t.Fatal("expected inactive after window end")
	}

	if p.SubscriptionType != SubscriptionYearly {
		t.Errorf("type mutated on expiry: %v", p.SubscriptionType)
	}
	if p.SubscriptionEnd != start+YearlyDuration {
		t.Errorf("end mutated on expiry: %d", p.SubscriptionEnd)
	}
	if !p.IsExpired(after) {
		t.Error("expected IsExpired after window end")
	}
}

func TestActivateResetsRides(t *testing.T) {
	p := New("alice")
	p.ActivateSubscription(SubscriptionMonthly, 1000, 50_000_000)
	p.UseRide()
	p.UseRide()

	if p.RidesUsed != 2 {
		t.Fatalf("RidesUsed: got %d, want 2", p.RidesUsed)
	}

	p.ActivateSubscription(SubscriptionYearly, 2000, 500_000_000)
	if p.RidesUsed != 0 {
		t.Errorf("RidesUsed after re-activation: got %d, want 0", p.RidesUsed)
	}
	if p.PricePaid != 500_000_000 {
		t.Errorf("PricePaid: got %d, want 500000000", p.PricePaid)
	}
}

func TestRefundAt(t *testing.T) {
	const start = int64(0)
	const price = uint64(50_000_000)
	const day = int64(86400)

	p := New("alice")
	p.ActivateSubscription(SubscriptionMonthly, start, price)

	tests := []struct {
		name     string
		now      int64
		expected uint64
	}{
		{"Immediately", start, price},
		{"After 7 days", start + 7*day, 38_333_333},
		{"After 15 days", start + 15*day, 25_000_000},
		{"One second before end", start + MonthlyDuration - 1, 19},
		{"At end", start + MonthlyDuration, 0},
		{"After end", start + MonthlyDuration + day, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.RefundAt(tt.now, price)
			if got != tt.expected {
				t.Errorf("RefundAt(%d): got %d, want %d", tt.now, got, tt.expected)
			}
			if got > price {
				t.Errorf("refund %d exceeds price %d", got, price)
			}
		})
	}
}

func TestRefundAtMonotone(t *testing.T) {
	const price = uint64(50_000_000)

	p := New("alice")
	p.ActivateSubscription(SubscriptionMonthly, 0, price)

	prev := price + 1
	for now := int64(0); now <= MonthlyDuration; now += 86400 {
		got := p.RefundAt(now, price)
		if got > prev {
			t.Fatalf("refund increased over time: %d at t=%d, previous %d", got, now, prev)
		}
		prev = got
	}
}

func TestRefundAtNoSubscription(t *testing.T) {
	p := New("alice")
	if got := p.RefundAt(100, 50_000_000); got != 0 {
		t.Errorf("refund without subscription: got %d, want 0", got)
	}
}

func TestClearSubscription(t *testing.T) {
	p := New("alice")
	p.ActivateSubscription(SubscriptionMonthly, 1000, 50_000_000)
	p.UseRide()
	p.ClearSubscription()

	if p.SubscriptionType != SubscriptionNone {
		t.Errorf("type: got %v, want None", p.SubscriptionType)
	}
	if p.SubscriptionStart != 0 || p.SubscriptionEnd != 0 {
		t.Error("window not cleared")
	}
	if p.RidesUsed != 0 || p.PricePaid != 0 {
		t.Error("rides/price not cleared")
	}
}

func TestTicketStats(t *testing.T) {
	p := New("alice")
	p.RecordTicketPurchase(2_500_000, 100)
	p.RecordTicketPurchase(5_000_000, 200)

	if p.TotalSpent != 7_500_000 {
		t.Errorf("TotalSpent: got %d, want 7500000", p.TotalSpent)
	}
	if p.TicketCount != 2 {
		t.Errorf("TicketCount: got %d, want 2", p.TicketCount)
	}
	if p.LastTicketAt != 200 {
		t.Errorf("LastTicketAt: got %d, want 200", p.LastTicketAt)
	}

	p.RollBackTicketPurchase(5_000_000)
	if p.TotalSpent != 2_500_000 || p.TicketCount != 1 {
		t.Errorf("after rollback: spent=%d count=%d", p.TotalSpent, p.TicketCount)
	}

	// Saturating: rolling back more than recorded clamps at zero.
	p.RollBackTicketPurchase(10_000_000)
	if p.TotalSpent != 0 || p.TicketCount != 0 {
		t.Errorf("after excess rollback: spent=%d count=%d", p.TotalSpent, p.TicketCount)
	}
	p.RollBackTicketPurchase(1)
	if p.TotalSpent != 0 || p.TicketCount != 0 {
		t.Error("rollback on empty stats must not underflow")
	}
}
