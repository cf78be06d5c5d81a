package domain

import "time"

// TimeSlot is a provider-published window that at most one active booking
// may hold. Reservation flips IsAvailable off; cancellation or decline
// before confirmation flips it back. Slots are never deleted by the engine.
type TimeSlot struct {
	ID          int64     `json:"id"`
	ProviderID  int64     `json:"provider_id" validate:"required"`
	Date        time.Time `json:"date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
