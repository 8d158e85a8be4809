package domain

import "time"

const (
	RaffleStatusDraft  = "draft"
	RaffleStatusActive = "active"
	RaffleStatusEnded  = "ended"
)

type Raffle struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Artists   []Artist  `json:"artists,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Artist struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
	Link string `json:"link,omitempty"`
}

// RaffleArtist is an artist's membership in a raffle. The winner fields are
// written by the winner selection and stay nil until a draw happens.
type RaffleArtist struct {
	RaffleID         uint       `json:"raffle_id"`
	ArtistID         uint       `json:"artist_id"`
	WinnerTicketID   *uint      `json:"winner_ticket_id"`
	WinnerSelectedAt *time.Time `json:"winner_selected_at"`
}

// WinnerResult is what a draw returns: the winning ticket and a display-safe
// reduction of the holder's name ("First L.").
type WinnerResult struct {
	Ticket      Ticket `json:"ticket"`
	DisplayName string `json:"display_name,omitempty"`
	Redrawn     bool   `json:"redrawn"`
}
