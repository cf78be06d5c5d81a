package booking

import "time"

type CreateBookingRequest struct {
	ProviderID      int64     `json:"provider_id" binding:"required"`
	SlotID          *int64    `json:"slot_id,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ServiceLabel    string    `json:"service_label,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	IsSkillSwap     bool      `json:"is_skill_swap"`
	SeekerSkillID   int64     `json:"seeker_skill_id,omitempty"`
	ProviderSkillID int64     `json:"provider_skill_id,omitempty"`

	// SeekerID comes from the identity context, never from the body.
	SeekerID int64 `json:"-"`
}

type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
