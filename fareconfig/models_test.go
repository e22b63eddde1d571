package fareconfig

import "testing"

func newTestConfig() *FareConfig {
	return New("admin", "So11111111111111111111111111111111111111112",
		2_500_000, 5_000_000, 50_000_000, 500_000_000)
}

func TestFareFor(t *testing.T) {
	c := newTestConfig()

	tests := []struct {
		name     string
		mode     Mode
		expected uint64
		ok       bool
	}{
		{"Bus", ModeBus, 2_500_000, true},
		{"Train", ModeTrain, 5_000_000, true},
		{"Unknown", Mode(2), 0, false},
		{"WayOff", Mode(255), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.FareFor(tt.mode)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("FareFor(%v): got (%d, %v), want (%d, %v)", tt.mode, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestModeValid(t *testing.T) {
	if !ModeBus.Valid() || !ModeTrain.Valid() {
		t.Error("bus and train must be valid")
	}
	if Mode(2).Valid() {
		t.Error("mode 2 must be invalid")
	}
}

func TestPassPrice(t *testing.T) {
	c := newTestConfig()

	if got := c.PassPrice(false); got.Value != 50_000_000 {
		t.Errorf("monthly price: got %d", got.Value)
	}
	if got := c.PassPrice(true); got.Value != 500_000_000 {
		t.Errorf("yearly price: got %d", got.Value)
	}
	if got := c.PassPrice(false); got.Mint != c.CurrencyMint {
		t.Errorf("mint: got %s", got.Mint)
	}
}

func TestTicketCounter(t *testing.T) {
	c := newTestConfig()

	c.IncrementTicketsSold()
	c.IncrementTicketsSold()
	if c.TotalTicketsSold != 2 {
		t.Fatalf("TotalTicketsSold: got %d, want 2", c.TotalTicketsSold)
	}

	c.DecrementTicketsSold()
	if c.TotalTicketsSold != 1 {
		t.Errorf("after decrement: got %d, want 1", c.TotalTicketsSold)
	}

	// Saturating at zero.
	c.DecrementTicketsSold()
	c.DecrementTicketsSold()
	if c.TotalTicketsSold != 0 {
		t.Errorf("counter underflowed: %d", c.TotalTicketsSold)
	}
}

func TestSubscriptionCounter(t *testing.T) {
	c := newTestConfig()

	c.IncrementActiveSubscriptions()
	if err := c.DecrementActiveSubscriptions(); err != nil {
		t.Fatalf("decrement from 1: %v", err)
	}
	if c.TotalActiveSubscriptions != 0 {
		t.Fatalf("TotalActiveSubscriptions: got %d, want 0", c.TotalActiveSubscriptions)
	}

	// Unlike the ticket counter, this one reports underflow instead of
	// saturating.
	if err := c.DecrementActiveSubscriptions(); err == nil {
		t.Error("expected underflow error at zero")
	}
}

func TestUpdateValidate(t *testing.T) {
	v := uint64(3_000_000)
	zero := uint64(0)

	tests := []struct {
		name    string
		update  Update
		wantErr bool
	}{
		{"Empty", Update{}, false},
		{"SingleField", Update{BusFare: &v}, false},
		{"AllFields", Update{BusFare: &v, TrainFare: &v, MonthlyPassPrice: &v, YearlyPassPrice: &v}, false},
		{"ZeroBusFare", Update{BusFare: &zero}, true},
		{"ZeroYearly", Update{YearlyPassPrice: &zero}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateApply(t *testing.T) {
	c := newTestConfig()
	newBus := uint64(3_000_000)
	newYearly := uint64(600_000_000)

	c.Apply(Update{BusFare: &newBus, YearlyPassPrice: &newYearly})

	if c.BusFare != newBus {
		t.Errorf("BusFare: got %d, want %d", c.BusFare, newBus)
	}
	if c.YearlyPassPrice != newYearly {
		t.Errorf("YearlyPassPrice: got %d, want %d", c.YearlyPassPrice, newYearly)
	}
	// Unset fields keep their values.
	if c.TrainFare != 5_000_000 || c.MonthlyPassPrice != 50_000_000 {
		t.Error("unset fields changed")
	}
}

func TestUpdateIsEmpty(t *testing.T) {
	if !(Update{}).IsEmpty() {
		t.Error("zero Update must be empty")
	}
	v := uint64(1)
	if (Update{TrainFare: &v}).IsEmpty() {
		t.Error("Update with a set field must not be empty")
	}
}
