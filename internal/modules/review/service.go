package review

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skillswap/internal/domain"
)

const minCommentLen = 3

type Service struct {
	reviews  Store
	bookings BookingGate
}

func NewService(reviews Store, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Submit records a single review on a regular (non-swap) booking.
func (s *Service) Submit(ctx context.Context, req SubmitReviewRequest) (*domain.Review, error) {
	b, err := s.admit(ctx, req.BookingID, req.ReviewerID)
	if err != nil {
		return nil, err
	}
	if b.IsSkillSwap {
		return nil, ErrValidation
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		ReviewerID: req.ReviewerID,
		RevieweeID: b.Counterparty(req.ReviewerID),
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		Direction:  domain.SwapDirectionNone,
	}
	if err := validate(rv); err != nil {
		return nil, err
	}

	exists, err := s.reviews.Exists(ctx, b.ID, req.ReviewerID, domain.SwapDirectionNone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

// SubmitSwapPair records both halves of a skill-swap review. Either both
// records land or neither does.
func (s *Service) SubmitSwapPair(ctx context.Context, req SubmitSwapReviewRequest) ([]domain.Review, error) {
	b, err := s.admit(ctx, req.BookingID, req.ReviewerID)
	if err != nil {
		return nil, err
	}
	if !b.IsSkillSwap {
		return nil, ErrValidation
	}

	reviewee := b.Counterparty(req.ReviewerID)
	provided := &domain.Review{
		BookingID:  b.ID,
		ReviewerID: req.ReviewerID,
		RevieweeID: reviewee,
		Rating:     req.ProvidedRating,
		Comment:    strings.TrimSpace(req.ProvidedComment),
		Direction:  domain.SwapDirectionProvided,
	}
	received := &domain.Review{
		BookingID:  b.ID,
		ReviewerID: req.ReviewerID,
		RevieweeID: reviewee,
		Rating:     req.ReceivedRating,
		Comment:    strings.TrimSpace(req.ReceivedComment),
		Direction:  domain.SwapDirectionReceived,
	}
	if err := validate(provided); err != nil {
		return nil, err
	}
	if err := validate(received); err != nil {
		return nil, err
	}

	exists, err := s.reviews.Exists(ctx, b.ID, req.ReviewerID, domain.SwapDirectionProvided)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	if err := s.reviews.CreatePair(ctx, provided, received); err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return []domain.Review{*provided, *received}, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByReviewee(ctx, userID, limit, offset)
}

// admit loads the booking and checks that the reviewer may review it:
// the booking exists, the reviewer took part, and the work is done.
func (s *Service) admit(ctx context.Context, bookingID, reviewerID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.HasParticipant(reviewerID) {
		return nil, ErrNotParticipant
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotDone
	}
	return b, nil
}

func validate(rv *domain.Review) error {
	if rv.Rating < 1 || rv.Rating > 5 {
		return ErrValidation
	}
	// comments are mandatory; counted in runes, not bytes
	if utf8.RuneCountInString(rv.Comment) < minCommentLen {
		return ErrValidation
	}
	return nil
}

// isDuplicate recognizes a unique-index violation from either driver,
// which closes the race the Exists pre-check leaves open.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
