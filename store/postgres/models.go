package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/farebox/fareconfig"
	"github.com/xraph/farebox/passenger"
	"github.com/xraph/farebox/payment"
	"github.com/xraph/farebox/ticket"
	"github.com/xraph/farebox/types"
)

// ==================== Fare config model ====================

type fareConfigModel struct {
	grove.BaseModel `grove:"table:farebox_config"`

	Address                  string    `grove:"address,pk"`
	Admin                    string    `grove:"admin"`
	CurrencyMint             string    `grove:"currency_mint"`
	BusFare                  int64     `grove:"bus_fare"`
	TrainFare                int64     `grove:"train_fare"`
	MonthlyPassPrice         int64     `grove:"monthly_pass_price"`
	YearlyPassPrice          int64     `grove:"yearly_pass_price"`
	TotalTicketsSold         int64     `grove:"total_tickets_sold"`
	TotalActiveSubscriptions int64     `grove:"total_active_subscriptions"`
	CreatedAt                time.Time `grove:"created_at"`
	UpdatedAt                time.Time `grove:"updated_at"`
}

func toFareConfigModel(address string, c *fareconfig.FareConfig) *fareConfigModel {
	return &fareConfigModel{
		Address:                  address,
		Admin:                    c.Admin,
		CurrencyMint:             c.CurrencyMint,
		BusFare:                  int64(c.BusFare),
		TrainFare:                int64(c.TrainFare),
		MonthlyPassPrice:         int64(c.MonthlyPassPrice),
		YearlyPassPrice:          int64(c.YearlyPassPrice),
		TotalTicketsSold:         int64(c.TotalTicketsSold),
		TotalActiveSubscriptions: int64(c.TotalActiveSubscriptions),
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

func fromFareConfigModel(m *fareConfigModel) *fareconfig.FareConfig {
	return &fareconfig.FareConfig{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Admin:                    m.Admin,
		CurrencyMint:             m.CurrencyMint,
		BusFare:                  uint64(m.BusFare),
		TrainFare:                uint64(m.TrainFare),
		MonthlyPassPrice:         uint64(m.MonthlyPassPrice),
		YearlyPassPrice:          uint64(m.YearlyPassPrice),
		TotalTicketsSold:         uint64(m.TotalTicketsSold),
		TotalActiveSubscriptions: uint64(m.TotalActiveSubscriptions),
	}
}

// ==================== Passenger model ====================

type passengerModel struct {
	grove.BaseModel `grove:"table:farebox_passengers"`

	Address           string    `grove:"address,pk"`
	UserID            string    `grove:"user_id"`
	SubscriptionType  int16     `grove:"subscription_type"`
	SubscriptionStart int64     `grove:"subscription_start"`
	SubscriptionEnd   int64     `grove:"subscription_end"`
	RidesUsed         int64     `grove:"rides_used"`
	PricePaid         int64     `grove:"price_paid"`
	TotalSpent        int64     `grove:"total_spent"`
	TicketCount       int64     `grove:"ticket_count"`
	LastTicketAt      int64     `grove:"last_ticket_at"`
	CreatedAt         time.Time `grove:"created_at"`
	UpdatedAt         time.Time `grove:"updated_at"`
}

func toPassengerModel(address string, p *passenger.Passenger) *passengerModel {
	return &passengerModel{
		Address:           address,
		UserID:            p.User,
		SubscriptionType:  int16(p.SubscriptionType),
		SubscriptionStart: p.SubscriptionStart,
		SubscriptionEnd:   p.SubscriptionEnd,
		RidesUsed:         int64(p.RidesUsed),
		PricePaid:         int64(p.PricePaid),
		TotalSpent:        int64(p.TotalSpent),
		TicketCount:       int64(p.TicketCount),
		LastTicketAt:      p.LastTicketAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func fromPassengerModel(m *passengerModel) *passenger.Passenger {
	return &passenger.Passenger{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		User:              m.UserID,
		SubscriptionType:  passenger.SubscriptionType(m.SubscriptionType),
		SubscriptionStart: m.SubscriptionStart,
		SubscriptionEnd:   m.SubscriptionEnd,
		RidesUsed:         uint64(m.RidesUsed),
		PricePaid:         uint64(m.PricePaid),
		TotalSpent:        uint64(m.TotalSpent),
		TicketCount:       uint64(m.TicketCount),
		LastTicketAt:      m.LastTicketAt,
	}
}

// ==================== Ticket model ====================

type ticketModel struct {
	grove.BaseModel `grove:"table:farebox_tickets"`

	Address     string    `grove:"address,pk"`
	UserID      string    `grove:"user_id"`
	TicketID    int64     `grove:"ticket_id"`
	Mode        int16     `grove:"mode"`
	AmountPaid  int64     `grove:"amount_paid"`
	Status      string    `grove:"status"`
	PurchasedAt int64     `grove:"purchased_at"`
	UsedAt      int64     `grove:"used_at"`
	RefundedAt  int64     `grove:"refunded_at"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func toTicketModel(address string, t *ticket.Ticket) *ticketModel {
	return &ticketModel{
		Address:     address,
		UserID:      t.User,
		TicketID:    int64(t.TicketID),
		Mode:        int16(t.Mode),
		AmountPaid:  int64(t.AmountPaid),
		Status:      string(t.Status),
		PurchasedAt: t.PurchasedAt,
		UsedAt:      t.UsedAt,
		RefundedAt:  t.RefundedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromTicketModel(m *ticketModel) *ticket.Ticket {
	return &ticket.Ticket{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		User:        m.UserID,
		TicketID:    uint64(m.TicketID),
		Mode:        fareconfig.Mode(m.Mode),
		AmountPaid:  uint64(m.AmountPaid),
		Status:      ticket.Status(m.Status),
		PurchasedAt: m.PurchasedAt,
		UsedAt:      m.UsedAt,
		RefundedAt:  m.RefundedAt,
	}
}

// ==================== Payment model ====================

type paymentModel struct {
	grove.BaseModel `grove:"table:farebox_payments"`

	Address   string    `grove:"address,pk"`
	UserID    string    `grove:"user_id"`
	PaymentID int64     `grove:"payment_id"`
	Amount    int64     `grove:"amount"`
	Mint      string    `grove:"mint"`
	TxHash    string    `grove:"tx_hash"`
	PaidAt    int64     `grove:"paid_at"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toPaymentModel(address string, p *payment.Payment) *paymentModel {
	return &paymentModel{
		Address:   address,
		UserID:    p.User,
		PaymentID: int64(p.PaymentID),
		Amount:    int64(p.Amount),
		Mint:      p.Mint,
		TxHash:    p.TxHash,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPaymentModel(m *paymentModel) *payment.Payment {
	return &payment.Payment{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		User:      m.UserID,
		PaymentID: uint64(m.PaymentID),
		Amount:    uint64(m.Amount),
		Mint:      m.Mint,
		TxHash:    m.TxHash,
		PaidAt:    m.PaidAt,
	}
}
