package domain

import "time"

const (
	RSVPStatusConfirmed  = "confirmed"
	RSVPStatusWaitlisted = "waitlisted"
	RSVPStatusRejected   = "rejected"
	RSVPStatusCanceled   = "canceled"
)

type RSVP struct {
	ID         uint       `json:"id"`
	EventID    uint       `json:"event_id"`
	Handle     string     `json:"handle"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Status     string     `json:"status"`
	AttendedAt *time.Time `json:"attended_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
