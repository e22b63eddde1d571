// Package farebox provides a transit fare payment and subscription engine for Go applications.
//
// Farebox is designed as a library, not a service. Import it directly into your Go
// application and wire your own storage and settlement backends. It provides:
//
//   - Single-ride ticket sales with exact-fare validation per transport mode
//   - Monthly and yearly passes with lazy expiry and floor-prorated refunds
//   - A write-once payment ledger for idempotent external settlement records
//   - Deterministic 32-byte record addressing, so every caller derives the
//     same address for the same logical record
//   - Atomic value transfer through a pluggable settlement backend
//   - Lifecycle plugins for audit trails and metrics
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/farebox"
//	    "github.com/xraph/farebox/settlement"
//	    "github.com/xraph/farebox/store/postgres"
//	)
//
//	// Initialize store
//	store, err := postgres.New(databaseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create engine
//	e := farebox.New(store,
//	    farebox.WithTransfer(bank),
//	    farebox.WithTreasury("transit-authority"),
//	)
//
//	// Start the engine (runs store migrations)
//	if err := e.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Stop()
//
// # Core Concepts
//
// The fare configuration is a singleton set up once by the transit admin:
//
//	_, err := e.InitializeFareConfig(ctx, admin, mint,
//	    50_000, 75_000, 5_000_000, 50_000_000)
//
// Tickets are bought at the exact configured fare and consumed once:
//
//	_, err := e.PurchaseTicket(ctx, user, fareconfig.ModeBus, ticketID, 50_000)
//	_, err = e.UseTicket(ctx, user, ticketID)
//
// Passes cover unlimited rides for a fixed window:
//
//	_, err := e.PurchaseSubscription(ctx, user, passenger.SubscriptionMonthly)
//	_, err = e.UseSubscriptionRide(ctx, user)
//
// Expiry is lazy: an expired pass is never mutated by the passage of time.
// It simply stops validating, and the next purchase overwrites it.
//
// # Money
//
// All monetary calculations use integer arithmetic in the token's smallest
// unit. Proration multiplies before dividing through a 128-bit intermediate,
// so refunds never round a passenger up and never overflow.
//
// # Addressing
//
// Every record has a deterministic address derived from its kind and keys:
//
//	addr.FareConfig()           // the singleton configuration
//	addr.Passenger(user)        // one record per user
//	addr.Ticket(user, id)       // one record per (user, ticket id)
//	addr.Payment(user, id)      // one record per (user, payment id)
//
// Creating a record at an occupied address fails, which is how single
// initialization and duplicate-id rejection are enforced end to end.
//
// # TypeID
//
// Settlement artifacts use TypeID for globally unique, type-safe references:
//
//	xfer_01h2xcejqtf2nbrexx3vqjhp41  // transfer receipt
//	cmt_01h455vb4pex5vsknk084sn02q   // operation commit
//
// TypeIDs are K-sortable, providing natural time-ordering of settlement
// history.
package farebox
