package domain

import "time"

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
)

func (s SwapStatus) IsTerminal() bool {
	return s == SwapRejected || s == SwapCompleted
}

// SkillSwapAgreement is the 1:1 companion record of a skill-swap booking.
// Its status moves in lock-step with the booking: accepted when the booking
// is confirmed, completed when completed, rejected when declined/cancelled.
type SkillSwapAgreement struct {
	ID               int64      `json:"id"`
	BookingID        int64      `json:"booking_id" validate:"required"`
	ProposerID       int64      `json:"proposer_id" validate:"required"`
	RecipientID      int64      `json:"recipient_id" validate:"required"`
	ProposerSkillID  int64      `json:"proposer_skill_id" validate:"required"`
	RecipientSkillID int64      `json:"recipient_skill_id" validate:"required"`
	Status           SwapStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// SwapStatusFor maps a booking status to the agreement status that must
// accompany it.
func SwapStatusFor(s BookingStatus) SwapStatus {
	switch s {
	case BookingConfirmed:
		return SwapAccepted
	case BookingCompleted:
		return SwapCompleted
	case BookingCancelled:
		return SwapRejected
	default:
		return SwapPending
	}
}
