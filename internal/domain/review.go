package domain

import "time"

// SwapDirection tags which half of a skill exchange a review covers.
// Empty for regular bookings.
type SwapDirection string

const (
	SwapDirectionNone     SwapDirection = ""
	SwapDirectionProvided SwapDirection = "provided"
	SwapDirectionReceived SwapDirection = "received"
)

// Review is immutable once created. At most one exists per
// (booking, reviewer, direction) and only for a completed booking.
type Review struct {
	ID         int64         `json:"id"`
	BookingID  int64         `json:"booking_id" validate:"required"`
	ReviewerID int64         `json:"reviewer_id" validate:"required"`
	RevieweeID int64         `json:"reviewee_id" validate:"required"`
	Rating     int           `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string        `json:"comment" gorm:"type:text"`
	Direction  SwapDirection `json:"direction,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
