package review

import (
	"context"

	"skillswap/internal/domain"
)

// Store persists reviews. CreatePair writes both halves of a swap
// review in one transaction.
type Store interface {
	Create(ctx context.Context, rv *domain.Review) error
	CreatePair(ctx context.Context, a, b *domain.Review) error
	Exists(ctx context.Context, bookingID, reviewerID int64, direction domain.SwapDirection) (bool, error)
	ListByReviewee(ctx context.Context, userID int64, limit, offset int) ([]domain.Review, error)
}

// BookingGate exposes just enough of the booking store to decide
// whether a review is allowed.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
