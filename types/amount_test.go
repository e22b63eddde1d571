package types

import (
	"encoding/json"
	"testing"
)

const testMint = "So11111111111111111111111111111111111111112"

func TestAmountConstructors(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		value  uint64
		mint   string
	}{
		{"Fare", Tokens(testMint, 50_000_000), 50_000_000, testMint},
		{"Whole token", Tokens(testMint, 1_000_000_000), 1_000_000_000, testMint},
		{"Zero", Zero(testMint), 0, testMint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.amount.Value != tt.value {
				t.Errorf("Value: got %d, want %d", tt.amount.Value, tt.value)
			}
			if tt.amount.Mint != tt.mint {
				t.Errorf("Mint: got %s, want %s", tt.amount.Mint, tt.mint)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return Tokens(testMint, 100).Add(Tokens(testMint, 200)) }, Tokens(testMint, 300)},
		{"Sub", func() Amount { return Tokens(testMint, 500).Sub(Tokens(testMint, 200)) }, Tokens(testMint, 300)},
		{"SaturatingSub clamps", func() Amount { return Tokens(testMint, 100).SaturatingSub(Tokens(testMint, 500)) }, Tokens(testMint, 0)},
		{"SaturatingSub normal", func() Amount { return Tokens(testMint, 500).SaturatingSub(Tokens(testMint, 100)) }, Tokens(testMint, 400)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("Got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAmountMintMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for mint mismatch")
		}
	}()

	_ = Tokens("mintA", 100).Add(Tokens("mintB", 100))
}

func TestAmountSubUnderflow(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for subtraction underflow")
		}
	}()

	_ = Tokens(testMint, 100).Sub(Tokens(testMint, 200))
}

func TestProrate(t *testing.T) {
	const day = uint64(86400)

	tests := []struct {
		name      string
		value     uint64
		remaining uint64
		total     uint64
		expected  uint64
	}{
		{"Full period remaining", 50_000_000, 30 * day, 30 * day, 50_000_000},
		{"Half period remaining", 50_000_000, 15 * day, 30 * day, 25_000_000},
		{"23 of 30 days remaining", 50_000_000, 23 * day, 30 * day, 38_333_333},
		{"Nothing remaining", 50_000_000, 0, 30 * day, 0},
		{"Zero total", 50_000_000, 10, 0, 0},
		{"Remaining clamped to total", 50_000_000, 40 * day, 30 * day, 50_000_000},
		// Large values that would overflow a 64-bit product.
		{"Large price yearly", 18_000_000_000_000_000_000, 365 * day, 365 * day, 18_000_000_000_000_000_000},
		{"Large price half year", 18_000_000_000_000_000_000, 365 * day / 2, 365 * day, 8_999_999_999_999_999_714},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prorate(tt.value, tt.remaining, tt.total)
			if got != tt.expected {
				t.Errorf("Prorate: got %d, want %d", got, tt.expected)
			}
			if got > tt.value {
				t.Errorf("Prorate exceeded original value: %d > %d", got, tt.value)
			}
		})
	}
}

func TestProrateMonotone(t *testing.T) {
	const day = uint64(86400)
	total := 30 * day

	prev := uint64(1<<64 - 1)
	for elapsed := uint64(0); elapsed <= total; elapsed += day {
		got := Prorate(50_000_000, total-elapsed, total)
		if got > prev {
			t.Fatalf("refund increased as time elapsed: %d after %d", got, prev)
		}
		prev = got
	}
}

func TestAmountComparison(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		less    bool
		greater bool
		equal   bool
	}{
		{"Equal", Tokens(testMint, 100), Tokens(testMint, 100), false, false, true},
		{"Less", Tokens(testMint, 50), Tokens(testMint, 100), true, false, false},
		{"Greater", Tokens(testMint, 200), Tokens(testMint, 100), false, true, false},
		{"Zero equal", Tokens(testMint, 0), Zero(testMint), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.less {
				t.Errorf("LessThan: got %v, want %v", got, tt.less)
			}
			if got := tt.a.GreaterThan(tt.b); got != tt.greater {
				t.Errorf("GreaterThan: got %v, want %v", got, tt.greater)
			}
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal: got %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestAmountFormatMajor(t *testing.T) {
	tests := []struct {
		value    uint64
		expected string
	}{
		{50_000_000, "0.050000000"},
		{1_000_000_000, "1.000000000"},
		{1, "0.000000001"},
		{0, "0.000000000"},
		{1_234_567_890, "1.234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := Tokens(testMint, tt.value).FormatMajor(); got != tt.expected {
				t.Errorf("FormatMajor: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestAmountJSON(t *testing.T) {
	a := Tokens(testMint, 50_000_000)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var result struct {
		Value   uint64 `json:"value"`
		Mint    string `json:"mint"`
		Display string `json:"display"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if result.Value != 50_000_000 || result.Mint != testMint {
		t.Errorf("Unmarshaled data incorrect: %+v", result)
	}
	if result.Display != "0.050000000 So11..1112" {
		t.Errorf("Display: got %s", result.Display)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		values   []Amount
		expected Amount
	}{
		{"Empty", []Amount{}, Amount{}},
		{"Single", []Amount{Tokens(testMint, 100)}, Tokens(testMint, 100)},
		{"Multiple", []Amount{Tokens(testMint, 100), Tokens(testMint, 200), Tokens(testMint, 300)}, Tokens(testMint, 600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sum(tt.values...)
			if !result.Equal(tt.expected) {
				t.Errorf("Sum: got %v, want %v", result, tt.expected)
			}
		})
	}
}

func BenchmarkProrate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Prorate(50_000_000, 23*86400, 30*86400)
	}
}

func BenchmarkAmountAdd(b *testing.B) {
	a1 := Tokens(testMint, 100)
	a2 := Tokens(testMint, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a1.Add(a2)
	}
}
