package notification

import (
	"fmt"

	"skillswap/internal/domain"
)

// Transition describes one committed booking change for fan-out purposes.
// A nil Payment means a status transition; a non-nil Payment means a
// payment-only change and From/To are ignored.
type Transition struct {
	Booking     *domain.Booking
	From        domain.BookingStatus
	To          domain.BookingStatus
	Payment     *domain.PaymentStatus
	ActorID     int64
	AgreementID *int64
}

// Compute derives the notification records for a transition. It is a pure
// function: the lifecycle service persists the result only after every
// other write of the transition has succeeded, so a rolled-back transition
// never reaches the feed.
func Compute(t Transition) []domain.Notification {
	b := t.Booking
	data := domain.NotificationData{
		BookingID:   b.ID,
		SlotID:      b.SlotID,
		AgreementID: t.AgreementID,
	}

	if t.Payment != nil {
		return computePayment(b, *t.Payment, data)
	}

	var out []domain.Notification
	switch t.To {
	case domain.BookingPending:
		// a new request lands with the provider
		if b.IsSkillSwap {
			out = append(out, domain.Notification{
				UserID:  b.ProviderID,
				Type:    domain.NotifSkillSwapRequest,
				Title:   "Skill swap request",
				Message: fmt.Sprintf("You have a new skill swap request for %s", b.StartTime.Format("Jan 2 15:04")),
				Data:    data,
			})
		} else {
			out = append(out, domain.Notification{
				UserID:  b.ProviderID,
				Type:    domain.NotifNewBooking,
				Title:   "New booking request",
				Message: fmt.Sprintf("You have a new booking request for %s", b.StartTime.Format("Jan 2 15:04")),
				Data:    data,
			})
		}

	case domain.BookingConfirmed:
		recipient := b.Counterparty(t.ActorID)
		if b.IsSkillSwap {
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifSkillSwapAccepted,
				Title:   "Skill swap accepted",
				Message: "Your skill swap proposal was accepted",
				Data:    data,
			})
		} else {
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifBookingConfirmed,
				Title:   "Booking confirmed",
				Message: "Your booking was confirmed by the provider",
				Data:    data,
			})
		}

	case domain.BookingCompleted:
		recipient := b.Counterparty(t.ActorID)
		if b.IsSkillSwap {
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifSkillSwapCompleted,
				Title:   "Skill swap completed",
				Message: "Your skill swap session was marked completed",
				Data:    data,
			})
		} else {
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifBookingCompleted,
				Title:   "Booking completed",
				Message: "Your booking was marked completed",
				Data:    data,
			})
		}

	case domain.BookingCancelled:
		recipient := b.Counterparty(t.ActorID)
		switch {
		case b.IsSkillSwap && t.From == domain.BookingPending && t.ActorID == b.ProviderID:
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifSkillSwapDeclined,
				Title:   "Skill swap declined",
				Message: "Your skill swap proposal was declined",
				Data:    data,
			})
		case b.IsSkillSwap:
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifSkillSwapCancelled,
				Title:   "Skill swap cancelled",
				Message: "Your skill swap session was cancelled",
				Data:    data,
			})
		default:
			out = append(out, domain.Notification{
				UserID:  recipient,
				Type:    domain.NotifBookingCancelled,
				Title:   "Booking cancelled",
				Message: "Your booking was cancelled",
				Data:    data,
			})
		}
	}

	return out
}

func computePayment(b *domain.Booking, p domain.PaymentStatus, data domain.NotificationData) []domain.Notification {
	switch p {
	case domain.PaymentPaid:
		return []domain.Notification{{
			UserID:  b.SeekerID,
			Type:    domain.NotifPaymentReceived,
			Title:   "Payment received",
			Message: "Your payment for the booking was recorded",
			Data:    data,
		}}
	case domain.PaymentRefunded:
		return []domain.Notification{{
			UserID:  b.SeekerID,
			Type:    domain.NotifPaymentRefunded,
			Title:   "Payment refunded",
			Message: "Your payment for the booking was refunded",
			Data:    data,
		}}
	}
	return nil
}
