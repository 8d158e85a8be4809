package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateRaffleRequest struct {
	EventID uint   `json:"event_id"`
	Name    string `json:"name"`
}

func (req *CreateRaffleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type AddArtistRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
	Link string `json:"link"`
}

func (req *AddArtistRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Bio, validation.Length(0, 500)),
		validation.Field(&req.Link, is.URL),
	)
}

type SubmitTicketsRequest struct {
	ArtistID  uint   `json:"artist_id"`
	TicketIDs []uint `json:"ticket_ids"`
}

func (req *SubmitTicketsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ArtistID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TicketIDs, validation.Required, validation.Length(1, 0)),
	)
}

type SelectWinnerRequest struct {
	ArtistID uint `json:"artist_id"`
	// Redraw must be set explicitly to overwrite a recorded winner.
	Redraw bool `json:"redraw"`
}

func (req *SelectWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ArtistID, validation.Required, validation.Min(uint(1))),
	)
}
