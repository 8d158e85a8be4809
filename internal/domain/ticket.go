package domain

import "time"

const (
	TicketStatusActive = "active"
	TicketStatusUsed   = "used"
)

// Ticket is a numbered unit of raffle participation. TicketNumber is
// sequential within a raffle, starting at 1. ArtistID stays nil until the
// owner allocates the ticket, which is a one-way transition to "used".
type Ticket struct {
	ID           uint      `json:"id"`
	OrderID      uint      `json:"order_id"`
	OwnerID      uint      `json:"owner_id"`
	RaffleID     uint      `json:"raffle_id"`
	ArtistID     *uint     `json:"artist_id"`
	TicketNumber int       `json:"ticket_number"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
