package dto

import "github.com/google/uuid"

type ScheduleRequest struct {
	Username string `json:"username" validate:"required"`
}

type ScheduleEventResponse struct {
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

type ScheduleResponse struct {
	StartDate string                  `json:"start_date"`
	Volume    int                     `json:"volume"`
	Events    []ScheduleEventResponse `json:"events"`
	// Instructions for getting the artifact into the calendar app; iOS users
	// instead receive the file by email.
	InstructionsKey string `json:"instructions_key"`
}

// ScheduleDeliveryMessage is the pub/sub payload asking the delivery consumer
// to mail the generated calendar to the user.
type ScheduleDeliveryMessage struct {
	UserId uuid.UUID `json:"user_id"`
}
