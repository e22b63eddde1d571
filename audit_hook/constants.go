package audithook

// Action constants for audit events.
const (
	// Fare configuration actions
	ActionConfigInitialized = "config.initialized"
	ActionConfigUpdated     = "config.updated"

	// Ticket actions
	ActionTicketIssued   = "ticket.issued"
	ActionTicketUsed     = "ticket.used"
	ActionTicketRefunded = "ticket.refunded"

	// Subscription actions
	ActionSubscriptionPurchased = "subscription.purchased"
	ActionSubscriptionRideUsed  = "subscription.ride_used"
	ActionSubscriptionCanceled  = "subscription.canceled"

	// Payment and settlement actions
	ActionPaymentRecorded = "payment.recorded"
	ActionTransferSettled = "transfer.settled"
)

// Resource constants for audit events.
const (
	ResourceConfig       = "fare_config"
	ResourceTicket       = "ticket"
	ResourceSubscription = "subscription"
	ResourcePayment      = "payment"
	ResourceTransfer     = "transfer"
)

// Category constants for audit events.
const (
	CategoryFares        = "fares"
	CategorySubscription = "subscription"
	CategoryPayment      = "payment"
	CategorySettlement   = "settlement"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
