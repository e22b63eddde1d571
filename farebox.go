package farebox

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xraph/farebox/addr"
	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/id"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/plugin"
	"github.com/xraph/farebox/settlement"
	"github.com/xraph/farebox/store"
	"github.com/xraph/farebox/ticket"
	"github.com/xraph/farebox/types"
)

// Engine is the fare settlement orchestrator. Every operation validates
// against current state before mutating anything; a single commit mutex
// serializes money-moving operations so state transitions observe a
// global order.
type Engine struct {
	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	transfer settlement.Transfer
	clock    settlement.Clock
	treasury string

	// Serializes all mutating operations.
	mu sync.Mutex
}

// New creates a new Engine instance. Without WithTransfer the engine
// settles against an empty in-memory Bank, so money-moving operations
// fail until balances are funded or a real backend is wired.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		plugins:  plugin.NewRegistry(),
		logger:   slog.Default(),
		clock:    settlement.SystemClock{},
		treasury: "treasury",
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.transfer == nil {
		e.transfer = settlement.NewBank(e.clock)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithTransfer sets the settlement backend for value transfers.
func WithTransfer(t settlement.Transfer) Option {
	return func(e *Engine) {
		e.transfer = t
	}
}

// WithClock sets the clock operations are stamped by.
func WithClock(c settlement.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithTreasury sets the account fares settle into and refunds come from.
func WithTreasury(account string) Option {
	return func(e *Engine) {
		e.treasury = account
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("farebox started",
		"treasury", e.treasury,
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Commit is the receipt of a successful mutating operation.
type Commit struct {
	ID       id.CommitID         `json:"id"`
	Op       string              `json:"op"`
	At       int64               `json:"at"`
	Transfer *settlement.Receipt `json:"transfer,omitempty"`
}

func newCommit(op string, at int64, receipt *settlement.Receipt) *Commit {
	return &Commit{
		ID:       id.NewCommitID(),
		Op:       op,
		At:       at,
		Transfer: receipt,
	}
}

// ──────────────────────────────────────────────────
// Fare configuration
// ──────────────────────────────────────────────────

// InitializeFareConfig creates the singleton fare configuration. The
// caller becomes the admin for subsequent updates.
func (e *Engine) InitializeFareConfig(ctx context.Context, admin, currencyMint string, busFare, trainFare, monthlyPassPrice, yearlyPassPrice uint64) (*Commit, error) {
	if admin == "" {
		return nil, ValidationError{Field: "admin", Message: "must not be empty"}
	}
	if currencyMint == "" {
		return nil, ValidationError{Field: "currency_mint", Message: "must not be empty"}
	}
	for _, v := range []uint64{busFare, trainFare, monthlyPassPrice, yearlyPassPrice} {
		if v == 0 {
			return nil, fmt.Errorf("%w: zero amount", ErrInvalidFare)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := fareconfig.New(admin, currencyMint, busFare, trainFare, monthlyPassPrice, yearlyPassPrice)
	if err := e.store.CreateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	e.plugins.EmitConfigInitialized(ctx, cfg)
	e.logger.Info("fare config initialized",
		"admin", admin,
		"bus_fare", busFare,
		"train_fare", trainFare,
	)

	return newCommit("config.initialize", e.clock.Now(), nil), nil
}

// UpdateFareConfig applies a partial fare update. Only the configured
// admin may call it; zero amounts are rejected.
func (e *Engine) UpdateFareConfig(ctx context.Context, admin string, u fareconfig.Update) (*Commit, error) {
	if u.IsEmpty() {
		return nil, ValidationError{Field: "update", Message: "no fields set"}
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFare, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.store.GetFareConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Admin != admin {
		return nil, fmt.Errorf("%w: %s is not the config admin", ErrUnauthorized, admin)
	}

	old := *cfg
	cfg.Apply(u)
	if err := e.store.UpdateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	e.plugins.EmitConfigUpdated(ctx, &old, cfg)
	e.logger.Info("fare config updated",
		"bus_fare", cfg.BusFare,
		"train_fare", cfg.TrainFare,
		"monthly_pass_price", cfg.MonthlyPassPrice,
		"yearly_pass_price", cfg.YearlyPassPrice,
	)

	return newCommit("config.update", e.clock.Now(), nil), nil
}

// ──────────────────────────────────────────────────
// Tickets
// ──────────────────────────────────────────────────

// PurchaseTicket settles a single-ride fare and issues a ticket. The
// offered amount must match the configured fare exactly; overpayment is
// rejected the same as underpayment.
func (e *Engine) PurchaseTicket(ctx context.Context, user string, mode fareconfig.Mode, ticketID, amount uint64) (*Commit, error) {
	if user == "" {
		return nil, ValidationError{Field: "user", Message: "must not be empty"}
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransportMode, mode)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.store.GetFareConfig(ctx)
	if err != nil {
		return nil, err
	}

	fare, _ := cfg.FareFor(mode)
	if amount != fare {
		return nil, fmt.Errorf("%w: offered %d, fare is %d", ErrInsufficientFare, amount, fare)
	}

	ticketAddr := addr.Ticket(user, ticketID)
	if _, err := e.store.GetTicket(ctx, ticketAddr); err == nil {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateTicketID, ticketID)
	} else if !IsNotFound(err) {
		return nil, err
	}

	receipt, err := e.settle(ctx, user, e.treasury, cfg.CurrencyMint, user, amount)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	tkt := ticket.New(user, ticketID, mode, amount, now)
	if err := e.store.CreateTicket(ctx, ticketAddr, tkt); err != nil {
		return nil, err
	}

	cfg.IncrementTicketsSold()
	if err := e.store.UpdateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	p, err := e.getOrNewPassenger(ctx, user)
	if err != nil {
		return nil, err
	}
	p.RecordTicketPurchase(amount, now)
	if err := e.store.PutPassenger(ctx, addr.Passenger(user), p); err != nil {
		return nil, err
	}

	e.plugins.EmitTransferSettled(ctx, receipt)
	e.plugins.EmitTicketIssued(ctx, tkt)
	e.logger.Info("ticket issued",
		"user", user,
		"ticket_id", ticketID,
		"mode", mode.String(),
		"amount", types.Tokens(cfg.CurrencyMint, amount).String(),
	)

	return newCommit("ticket.purchase", now, receipt), nil
}

// UseTicket consumes an issued ticket for a ride. Only the owner may use
// it, and only once.
func (e *Engine) UseTicket(ctx context.Context, user string, ticketID uint64) (*Commit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tkt, err := e.store.GetTicket(ctx, addr.Ticket(user, ticketID))
	if err != nil {
		return nil, err
	}
	if !tkt.OwnedBy(user) {
		return nil, fmt.Errorf("%w: ticket %d is not owned by %s", ErrUnauthorized, ticketID, user)
	}
	if !tkt.CanTransition() {
		return nil, fmt.Errorf("%w: ticket %d is %s", ErrInvalidTicketState, ticketID, tkt.Status)
	}

	now := e.clock.Now()
	tkt.MarkUsed(now)
	if err := e.store.UpdateTicket(ctx, addr.Ticket(user, ticketID), tkt); err != nil {
		return nil, err
	}

	e.plugins.EmitTicketUsed(ctx, tkt)
	e.logger.Info("ticket used",
		"user", user,
		"ticket_id", ticketID,
	)

	return newCommit("ticket.use", now, nil), nil
}

// RefundTicket refunds an issued ticket at full price. The record stays
// in the Refunded state for audit; the ticket id stays burned and can
// never be reissued.
func (e *Engine) RefundTicket(ctx context.Context, user string, ticketID uint64) (*Commit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ticketAddr := addr.Ticket(user, ticketID)
	tkt, err := e.store.GetTicket(ctx, ticketAddr)
	if err != nil {
		return nil, err
	}
	if !tkt.OwnedBy(user) {
		return nil, fmt.Errorf("%w: ticket %d is not owned by %s", ErrUnauthorized, ticketID, user)
	}
	if !tkt.CanTransition() {
		return nil, fmt.Errorf("%w: ticket %d is %s", ErrInvalidTicketState, ticketID, tkt.Status)
	}

	cfg, err := e.store.GetFareConfig(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := e.settle(ctx, e.treasury, user, cfg.CurrencyMint, e.treasury, tkt.AmountPaid)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	tkt.MarkRefunded(now)
	if err := e.store.UpdateTicket(ctx, ticketAddr, tkt); err != nil {
		return nil, err
	}

	cfg.DecrementTicketsSold()
	if err := e.store.UpdateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	if p, err := e.store.GetPassenger(ctx, addr.Passenger(user)); err == nil {
		p.RollBackTicketPurchase(tkt.AmountPaid)
		if err := e.store.PutPassenger(ctx, addr.Passenger(user), p); err != nil {
			return nil, err
		}
	} else if !IsNotFound(err) {
		return nil, err
	}

	e.plugins.EmitTransferSettled(ctx, receipt)
	e.plugins.EmitTicketRefunded(ctx, tkt, tkt.AmountPaid)
	e.logger.Info("ticket refunded",
		"user", user,
		"ticket_id", ticketID,
		"amount", tkt.AmountPaid,
	)

	return newCommit("ticket.refund", now, receipt), nil
}

// ──────────────────────────────────────────────────
// Payments
// ──────────────────────────────────────────────────

// RecordPayment writes a payment ledger entry. Entries are write-once:
// recording the same payment id twice fails, which makes retries
// idempotent at the caller.
func (e *Engine) RecordPayment(ctx context.Context, user string, paymentID, amount uint64, currencyMint, txHash string) (*Commit, error) {
	if user == "" {
		return nil, ValidationError{Field: "user", Message: "must not be empty"}
	}
	if amount == 0 {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	paymentAddr := addr.Payment(user, paymentID)
	if _, err := e.store.GetPayment(ctx, paymentAddr); err == nil {
		return nil, fmt.Errorf("%w: %d", ErrDuplicatePaymentID, paymentID)
	} else if !IsNotFound(err) {
		return nil, err
	}

	now := e.clock.Now()
	pmt := payment.New(user, paymentID, amount, currencyMint, txHash, now)
	if err := e.store.CreatePayment(ctx, paymentAddr, pmt); err != nil {
		return nil, err
	}

	e.plugins.EmitPaymentRecorded(ctx, pmt)
	e.logger.Info("payment recorded",
		"user", user,
		"payment_id", paymentID,
		"amount", amount,
	)

	return newCommit("payment.record", now, nil), nil
}

// ──────────────────────────────────────────────────
// Subscriptions
// ──────────────────────────────────────────────────

// PurchaseSubscription activates a monthly or yearly pass. A passenger
// with an unexpired pass cannot buy another; an expired record is
// re-purchasable without any explicit expiry step.
func (e *Engine) PurchaseSubscription(ctx context.Context, user string, subType passenger.SubscriptionType) (*Commit, error) {
	if user == "" {
		return nil, ValidationError{Field: "user", Message: "must not be empty"}
	}
	if !subType.Purchasable() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubscriptionType, subType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.store.GetFareConfig(ctx)
	if err != nil {
		return nil, err
	}

	p, err := e.getOrNewPassenger(ctx, user)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if p.HasActiveSubscription(now) {
		return nil, fmt.Errorf("%w: %s pass until %d", ErrSubscriptionAlreadyActive, p.SubscriptionType, p.SubscriptionEnd)
	}

	price := cfg.PassPrice(subType == passenger.SubscriptionYearly)
	receipt, err := e.settle(ctx, user, e.treasury, cfg.CurrencyMint, user, price.Value)
	if err != nil {
		return nil, err
	}

	p.ActivateSubscription(subType, now, price.Value)
	if err := e.store.PutPassenger(ctx, addr.Passenger(user), p); err != nil {
		return nil, err
	}

	cfg.IncrementActiveSubscriptions()
	if err := e.store.UpdateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	e.plugins.EmitTransferSettled(ctx, receipt)
	e.plugins.EmitSubscriptionPurchased(ctx, p)
	e.logger.Info("subscription purchased",
		"user", user,
		"type", subType.String(),
		"price", price.String(),
		"ends_at", p.SubscriptionEnd,
	)

	return newCommit("subscription.purchase", now, receipt), nil
}

// UseSubscriptionRide counts a ride against the passenger's active pass.
// An expired pass fails without being reset; the stale record is evidence
// for a later purchase or cancel.
func (e *Engine) UseSubscriptionRide(ctx context.Context, user string) (*Commit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetPassenger(ctx, addr.Passenger(user))
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveSubscription, user)
		}
		return nil, err
	}
	if !p.SubscriptionType.Purchasable() {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveSubscription, user)
	}

	now := e.clock.Now()
	if !p.HasActiveSubscription(now) {
		return nil, fmt.Errorf("%w: ended at %d", ErrSubscriptionExpired, p.SubscriptionEnd)
	}

	p.UseRide()
	if err := e.store.PutPassenger(ctx, addr.Passenger(user), p); err != nil {
		return nil, err
	}

	e.plugins.EmitSubscriptionRideUsed(ctx, p)
	e.logger.Info("subscription ride used",
		"user", user,
		"rides_used", p.RidesUsed,
	)

	return newCommit("subscription.ride", now, nil), nil
}

// CancelSubscription cancels an active pass and refunds the unused time,
// floor-prorated against the price actually paid. Expired passes cannot
// be canceled; their refund would be zero anyway.
func (e *Engine) CancelSubscription(ctx context.Context, user string) (*Commit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetPassenger(ctx, addr.Passenger(user))
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveSubscription, user)
		}
		return nil, err
	}

	now := e.clock.Now()
	if !p.HasActiveSubscription(now) {
		return nil, fmt.Errorf("%w: %s", ErrNoActiveSubscription, user)
	}

	cfg, err := e.store.GetFareConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.TotalActiveSubscriptions == 0 {
		return nil, fmt.Errorf("%w: active subscription counter is zero", ErrCounterUnderflow)
	}

	// Refund from the price actually paid. Records written before the
	// field existed fall back to the currently configured price.
	price := p.PricePaid
	if price == 0 {
		price = cfg.PassPrice(p.SubscriptionType == passenger.SubscriptionYearly).Value
	}

	refund := p.RefundAt(now, price)
	var receipt *settlement.Receipt
	if refund > 0 {
		receipt, err = e.settle(ctx, e.treasury, user, cfg.CurrencyMint, e.treasury, refund)
		if err != nil {
			return nil, err
		}
	}

	p.ClearSubscription()
	if err := e.store.PutPassenger(ctx, addr.Passenger(user), p); err != nil {
		return nil, err
	}

	if err := cfg.DecrementActiveSubscriptions(); err != nil {
		return nil, fmt.Errorf("%w: active subscription counter", ErrCounterUnderflow)
	}
	if err := e.store.UpdateFareConfig(ctx, cfg); err != nil {
		return nil, err
	}

	if receipt != nil {
		e.plugins.EmitTransferSettled(ctx, receipt)
	}
	e.plugins.EmitSubscriptionCanceled(ctx, p, refund)
	e.logger.Info("subscription canceled",
		"user", user,
		"refund", refund,
	)

	return newCommit("subscription.cancel", now, receipt), nil
}

// ──────────────────────────────────────────────────
// Read accessors
// ──────────────────────────────────────────────────

// GetFareConfig returns the fare configuration.
func (e *Engine) GetFareConfig(ctx context.Context) (*fareconfig.FareConfig, error) {
	return e.store.GetFareConfig(ctx)
}

// GetPassenger returns the passenger record for a user.
func (e *Engine) GetPassenger(ctx context.Context, user string) (*passenger.Passenger, error) {
	return e.store.GetPassenger(ctx, addr.Passenger(user))
}

// GetTicket returns a ticket by owner and id.
func (e *Engine) GetTicket(ctx context.Context, user string, ticketID uint64) (*ticket.Ticket, error) {
	return e.store.GetTicket(ctx, addr.Ticket(user, ticketID))
}

// GetPayment returns a payment by payer and id.
func (e *Engine) GetPayment(ctx context.Context, user string, paymentID uint64) (*payment.Payment, error) {
	return e.store.GetPayment(ctx, addr.Payment(user, paymentID))
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// settle moves value through the transfer backend. A failure wraps
// ErrTransfer and guarantees nothing moved.
func (e *Engine) settle(ctx context.Context, source, destination, mint, authority string, amount uint64) (*settlement.Receipt, error) {
	receipt, err := e.transfer.Transfer(ctx, source, destination, mint, authority, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	return receipt, nil
}

// getOrNewPassenger loads the passenger record, creating a fresh one on
// first use. The new record is not persisted until the caller puts it.
func (e *Engine) getOrNewPassenger(ctx context.Context, user string) (*passenger.Passenger, error) {
	p, err := e.store.GetPassenger(ctx, addr.Passenger(user))
	if err != nil {
		if IsNotFound(err) {
			return passenger.New(user), nil
		}
		return nil, err
	}
	return p, nil
}
