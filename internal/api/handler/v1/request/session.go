package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSessionRequest struct {
	TeamID uint `json:"team_id"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
	)
}

type MarkObstacleRequest struct {
	Status string `json:"status"`
}

func (req *MarkObstacleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("CLEARED", "PARTIAL", "FAILED")),
	)
}

type AddPenaltyRequest struct {
	PenaltyID string `json:"penalty_id"`
}

func (req *AddPenaltyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PenaltyID, validation.Required),
	)
}

type UpdatePhotosRequest struct {
	TeamPhoto  *string `json:"team_photo"`
	RobotPhoto *string `json:"robot_photo"`
}

func (req *UpdatePhotosRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamPhoto, validation.Length(0, 5_000_000)),
		validation.Field(&req.RobotPhoto, validation.Length(0, 5_000_000)),
	)
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

func (req *UpdateNotesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 2000)),
	)
}
