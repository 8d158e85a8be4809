package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCheckoutRequest struct {
	RaffleID uint `json:"raffle_id"`
	Quantity int  `json:"quantity"`
}

func (req *CreateCheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RaffleID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}
