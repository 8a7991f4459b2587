package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTeamRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	School string `json:"school"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.School, validation.Length(0, 100)),
	)
}

type UpdateTeamRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	School string `json:"school"`
}

func (req *UpdateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.School, validation.Length(0, 100)),
	)
}
