// Package addr derives deterministic storage addresses for Farebox records.
//
// Every record class has exactly one address per logical key: the fare
// configuration singleton has a fixed address, and passenger, ticket, and
// payment records derive theirs from the owning user (plus a numeric id for
// tickets and payments). Derivation is a pure function of its inputs, so any
// two parties agree on where a record lives without coordination.
package addr

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Size is the length of an Address in bytes.
const Size = 32

// Address is a fixed-width record address derived from a record class tag
// and its logical key fields.
type Address [Size]byte

// Record class tags. Each tag occupies its own derivation domain so
// identical key material under different tags never collides.
const (
	tagFareConfig = "fare_config"
	tagPassenger  = "passenger"
	tagTicket     = "ticket"
	tagPayment    = "payment"
)

// domain is the fixed prefix separating Farebox addresses from any other
// SHA-256 usage in the same process.
const domain = "farebox/"

// derive hashes the domain, the class tag, and the key fields in order.
// Integer keys must already be encoded fixed-width by the caller.
func derive(tag string, keys ...[]byte) Address {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte(tag))
	for _, k := range keys {
		h.Write(k)
	}

	var a Address
	copy(a[:], h.Sum(nil))

	return a
}

// le64 encodes v as 8 little-endian bytes.
func le64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)

	return b[:]
}

// FareConfig returns the address of the fare configuration singleton.
// There is exactly one per deployment.
func FareConfig() Address {
	return derive(tagFareConfig)
}

// Passenger returns the address of the passenger record owned by user.
func Passenger(user string) Address {
	return derive(tagPassenger, []byte(user))
}

// Ticket returns the address of the ticket record owned by user with the
// caller-chosen ticketID. The same (user, ticketID) pair always maps to the
// same address, which is what makes duplicate ticket ids detectable.
func Ticket(user string, ticketID uint64) Address {
	return derive(tagTicket, []byte(user), le64(ticketID))
}

// Payment returns the address of the payment record owned by user with the
// caller-chosen paymentID.
func Payment(user string, paymentID uint64) Address {
	return derive(tagPayment, []byte(user), le64(paymentID))
}

// String returns the lowercase hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Parse decodes a 64-character hex string into an Address.
func Parse(s string) (Address, error) {
	var a Address

	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("addr: parse %q: %w", s, err)
	}
	if len(raw) != Size {
		return a, fmt.Errorf("addr: parse %q: expected %d bytes, got %d", s, Size, len(raw))
	}

	copy(a[:], raw)

	return a, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded addresses.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return a
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
