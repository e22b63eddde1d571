package addr

import "testing"

func TestDeterminism(t *testing.T) {
	tests := []struct {
		name string
		a, b Address
	}{
		{"FareConfig", FareConfig(), FareConfig()},
		{"Passenger", Passenger("alice"), Passenger("alice")},
		{"Ticket", Ticket("alice", 7), Ticket("alice", 7)},
		{"Payment", Payment("alice", 7), Payment("alice", 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a != tt.b {
				t.Errorf("same inputs produced different addresses: %s vs %s", tt.a, tt.b)
			}
		})
	}
}

func TestDistinctness(t *testing.T) {
	addrs := map[Address]string{}

	record := func(name string, a Address) {
		if prev, ok := addrs[a]; ok {
			t.Errorf("collision: %s and %s share address %s", prev, name, a)
		}
		addrs[a] = name
	}

	record("fare config", FareConfig())
	record("passenger alice", Passenger("alice"))
	record("passenger bob", Passenger("bob"))
	record("ticket alice/1", Ticket("alice", 1))
	record("ticket alice/2", Ticket("alice", 2))
	record("ticket bob/1", Ticket("bob", 1))
	record("payment alice/1", Payment("alice", 1))
	record("payment bob/1", Payment("bob", 1))
}

// A ticket and a payment with identical key material must live at
// different addresses because the class tag separates their domains.
func TestClassSeparation(t *testing.T) {
	if Ticket("alice", 1) == Payment("alice", 1) {
		t.Fatal("ticket and payment addresses collided for identical keys")
	}
}

// Key fields must not be ambiguous under concatenation: user "ab" with a
// ticket id must not collide with any other user/id split.
func TestNoConcatenationAmbiguity(t *testing.T) {
	if Passenger("ab") == Passenger("a") {
		t.Fatal("distinct users collided")
	}
	if Ticket("ab", 0x63) == Ticket("abc", 0) {
		// "ab"+LE64(0x63) and "abc"+LE64(0) share a byte prefix but differ
		// in length, so SHA-256 input differs.
		t.Fatal("ticket key encoding is ambiguous")
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := Ticket("alice", 42)

	parsed, err := Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if parsed != orig {
		t.Errorf("round trip mismatch: %s vs %s", parsed, orig)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Short", "abcdef"},
		{"NotHex", "zz00000000000000000000000000000000000000000000000000000000000000"},
		{"TooLong", FareConfig().String() + "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestTextMarshalling(t *testing.T) {
	orig := Payment("bob", 9)

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}

	var decoded Address
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if decoded != orig {
		t.Errorf("text round trip mismatch: %s vs %s", decoded, orig)
	}
}

func TestIsZero(t *testing.T) {
	var zero Address
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if FareConfig().IsZero() {
		t.Error("derived address should not report IsZero")
	}
}

func BenchmarkTicketAddress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Ticket("alice", uint64(i))
	}
}
