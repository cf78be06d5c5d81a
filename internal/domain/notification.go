package domain

import "time"

// NotificationType is the closed set of feed event tags.
type NotificationType string

const (
	NotifNewBooking         NotificationType = "new_booking"
	NotifSkillSwapRequest   NotificationType = "skill_swap_request"
	NotifBookingConfirmed   NotificationType = "booking_confirmed"
	NotifSkillSwapAccepted  NotificationType = "skill_swap_accepted"
	NotifBookingCancelled   NotificationType = "booking_cancelled"
	NotifSkillSwapDeclined  NotificationType = "skill_swap_declined"
	NotifSkillSwapCancelled NotificationType = "skill_swap_cancelled"
	NotifBookingCompleted   NotificationType = "booking_completed"
	NotifSkillSwapCompleted NotificationType = "skill_swap_completed"
	NotifPaymentReceived    NotificationType = "payment_received"
	NotifPaymentRefunded    NotificationType = "payment_refunded"
)

// NotificationData is the fixed payload shape linking a notification back
// to the entities it is about. BookingID is always set.
type NotificationData struct {
	BookingID   int64  `json:"booking_id"`
	SlotID      *int64 `json:"slot_id,omitempty"`
	AgreementID *int64 `json:"agreement_id,omitempty"`
}

// Notification is written only after the transition that produced it has
// fully committed; a rolled-back transition leaves no feed entry behind.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      NotificationData `json:"data" gorm:"-"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
