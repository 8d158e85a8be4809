package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	// RFC 3339, e.g. "2026-10-03T19:00:00Z".
	StartsAt        string `json:"starts_at"`
	AttendanceLimit *int   `json:"attendance_limit"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Venue, validation.Length(0, 200)),
		validation.Field(&req.StartsAt, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
	)
	if err != nil {
		return err
	}

	if req.AttendanceLimit != nil {
		return validation.Validate(*req.AttendanceLimit, validation.Min(1))
	}

	return nil
}
