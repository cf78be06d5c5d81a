package booking

import (
	"context"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/modules/swap"
)

// BookingRepository defines the store operations for bookings. Status and
// payment updates are conditional writes: they report false when the row
// was no longer in the expected state, which is how concurrent transitions
// race safely without a global lock.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (bool, error)
	ListByParticipant(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
}

// SlotStore holds the time-slot reservations. Reserve is conditional on
// availability; Release is idempotent.
type SlotStore interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	Reserve(ctx context.Context, id int64) (bool, error)
	Release(ctx context.Context, id int64) error
	ListOpenByProvider(ctx context.Context, providerID int64, from, to time.Time) ([]domain.TimeSlot, error)
}

// SwapCoordinator is the agreement sub-machine, driven only from here.
type SwapCoordinator interface {
	Propose(ctx context.Context, req swap.ProposeRequest) (*domain.SkillSwapAgreement, error)
	Transition(ctx context.Context, agreementID int64, from, to domain.SwapStatus) error
	Revert(ctx context.Context, agreementID int64, from, to domain.SwapStatus) error
	Remove(ctx context.Context, agreementID int64) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.SkillSwapAgreement, error)
}

// NotificationSink receives the feed records of a committed transition.
// Discard removes a record whose transition is rolling back.
type NotificationSink interface {
	Enqueue(ctx context.Context, n *domain.Notification) error
	Discard(ctx context.Context, id int64) error
}
