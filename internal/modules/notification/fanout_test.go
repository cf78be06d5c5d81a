package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skillswap/internal/domain"
)

func fixtureBooking(isSwap bool) *domain.Booking {
	slotID := int64(7)
	return &domain.Booking{
		ID:          42,
		ProviderID:  1,
		SeekerID:    2,
		SlotID:      &slotID,
		StartTime:   time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC),
		IsSkillSwap: isSwap,
	}
}

func TestCompute_NewBookingGoesToProvider(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(false),
		To:      domain.BookingPending,
		ActorID: 2,
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].UserID)
	assert.Equal(t, domain.NotifNewBooking, out[0].Type)
	assert.Equal(t, int64(42), out[0].Data.BookingID)
}

func TestCompute_SwapRequestType(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(true),
		To:      domain.BookingPending,
		ActorID: 2,
	})

	assert.Len(t, out, 1)
	assert.Equal(t, domain.NotifSkillSwapRequest, out[0].Type)
}

func TestCompute_ConfirmedGoesToCounterparty(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(false),
		From:    domain.BookingPending,
		To:      domain.BookingConfirmed,
		ActorID: 1, // provider accepts
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].UserID)
	assert.Equal(t, domain.NotifBookingConfirmed, out[0].Type)
	assert.Equal(t, "Booking confirmed", out[0].Title)
}

func TestCompute_DeclinedSwapBeforeConfirmation(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(true),
		From:    domain.BookingPending,
		To:      domain.BookingCancelled,
		ActorID: 1, // provider declines
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].UserID)
	assert.Equal(t, domain.NotifSkillSwapDeclined, out[0].Type)
}

func TestCompute_CancelledConfirmedSwap(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(true),
		From:    domain.BookingConfirmed,
		To:      domain.BookingCancelled,
		ActorID: 2, // seeker cancels
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].UserID)
	assert.Equal(t, domain.NotifSkillSwapCancelled, out[0].Type)
}

func TestCompute_CompletedNotifiesCounterparty(t *testing.T) {
	out := Compute(Transition{
		Booking: fixtureBooking(false),
		From:    domain.BookingConfirmed,
		To:      domain.BookingCompleted,
		ActorID: 1,
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].UserID)
	assert.Equal(t, domain.NotifBookingCompleted, out[0].Type)
}

func TestCompute_PaymentChangesGoToSeeker(t *testing.T) {
	paid := domain.PaymentPaid
	out := Compute(Transition{
		Booking: fixtureBooking(false),
		Payment: &paid,
		ActorID: 1,
	})

	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].UserID)
	assert.Equal(t, domain.NotifPaymentReceived, out[0].Type)

	refunded := domain.PaymentRefunded
	out = Compute(Transition{
		Booking: fixtureBooking(false),
		Payment: &refunded,
		ActorID: 1,
	})

	assert.Len(t, out, 1)
	assert.Equal(t, domain.NotifPaymentRefunded, out[0].Type)
}
