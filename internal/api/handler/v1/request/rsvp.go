package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SubmitRSVPRequest struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

func (req *SubmitRSVPRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Handle, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
	)
}

type UpdateRSVPStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateRSVPStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("confirmed", "waitlisted", "rejected", "canceled")),
	)
}

type MarkAttendanceRequest struct {
	// Pointer so an explicit false survives binding.
	Attended *bool `json:"attended"`
}

func (req *MarkAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Attended, validation.NotNil),
	)
}
