package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further status transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentPending     PaymentStatus = "pending"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// Booking ties a seeker to a provider for one session. A skill-swap booking
// carries payment_status=not_required and exactly one linked agreement;
// a regular booking is payment-tracked and has no agreement.
type Booking struct {
	ID            int64         `json:"id"`
	ProviderID    int64         `json:"provider_id" validate:"required"`
	SeekerID      int64         `json:"seeker_id" validate:"required"`
	SlotID        *int64        `json:"slot_id,omitempty"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	ServiceLabel  string        `json:"service_label,omitempty"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	IsSkillSwap   bool          `json:"is_skill_swap"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// Counterparty returns the other participant relative to userID,
// or 0 if userID is not a participant.
func (b *Booking) Counterparty(userID int64) int64 {
	switch userID {
	case b.ProviderID:
		return b.SeekerID
	case b.SeekerID:
		return b.ProviderID
	}
	return 0
}

// HasParticipant reports whether userID is the provider or the seeker.
func (b *Booking) HasParticipant(userID int64) bool {
	return userID == b.ProviderID || userID == b.SeekerID
}
