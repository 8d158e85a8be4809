package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Order is a ticket purchase. It is created pending alongside a Stripe
// checkout session and completed exactly once when its tickets are issued.
type Order struct {
	ID                uint      `json:"id"`
	Reference         string    `json:"reference"`
	UserID            uint      `json:"user_id"`
	RaffleID          uint      `json:"raffle_id"`
	Quantity          int       `json:"quantity"`
	CheckoutSessionID string    `json:"-"`
	CheckoutURL       string    `json:"checkout_url,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
