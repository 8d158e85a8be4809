package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateSubmissionRequest struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (req *CreateSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.Required, validation.In("artist", "vendor")),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.Link, is.URL),
	)
}

type UpdateSubmissionStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateSubmissionStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("pending", "approved", "rejected")),
	)
}
