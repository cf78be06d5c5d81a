package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if args.Error(0) == nil && rv.ID == 0 {
		rv.ID = 301
	}
	return args.Error(0)
}

func (m *MockStore) CreatePair(ctx context.Context, a, b *domain.Review) error {
	args := m.Called(ctx, a, b)
	if args.Error(0) == nil {
		a.ID, b.ID = 301, 302
	}
	return args.Error(0)
}

func (m *MockStore) Exists(ctx context.Context, bookingID, reviewerID int64, direction domain.SwapDirection) (bool, error) {
	args := m.Called(ctx, bookingID, reviewerID, direction)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListByReviewee(ctx context.Context, userID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockBookingGate struct {
	mock.Mock
}

func (m *MockBookingGate) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func completedBooking(isSwap bool) *domain.Booking {
	payment := domain.PaymentPaid
	if isSwap {
		payment = domain.PaymentNotRequired
	}
	return &domain.Booking{
		ID:            50,
		ProviderID:    1,
		SeekerID:      2,
		Status:        domain.BookingCompleted,
		PaymentStatus: payment,
		IsSkillSwap:   isSwap,
	}
}

func TestSubmit_Success(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)
	store.On("Exists", mock.Anything, int64(50), int64(2), domain.SwapDirectionNone).Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, gate)
	rv, err := svc.Submit(context.Background(), SubmitReviewRequest{
		BookingID:  50,
		Rating:     5,
		Comment:    "  great session  ",
		ReviewerID: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rv.RevieweeID)
	assert.Equal(t, "great session", rv.Comment)
	assert.Equal(t, domain.SwapDirectionNone, rv.Direction)
}

func TestSubmit_BookingNotCompleted(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	b := completedBooking(false)
	b.Status = domain.BookingConfirmed
	gate.On("GetByID", mock.Anything, int64(50)).Return(b, nil)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, ReviewerID: 2})

	assert.ErrorIs(t, err, ErrBookingNotDone)
	store.AssertNotCalled(t, "Create")
}

func TestSubmit_NotAParticipant(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, ReviewerID: 77})

	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSubmit_UnknownBooking(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 404, Rating: 4, ReviewerID: 2})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmit_RatingOutOfRange(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)

	svc := NewService(store, gate)
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: rating, ReviewerID: 2})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestSubmit_CommentTooShort(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: " a ", ReviewerID: 2})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_Duplicate(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)
	store.On("Exists", mock.Anything, int64(50), int64(2), domain.SwapDirectionNone).Return(true, nil)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: "very helpful", ReviewerID: 2})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	store.AssertNotCalled(t, "Create")
}

func TestSubmit_DuplicateRace_UniqueIndexWins(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)
	store.On("Exists", mock.Anything, int64(50), int64(2), domain.SwapDirectionNone).Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: "very helpful", ReviewerID: 2})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestSubmit_OnSwapBooking_Rejected(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(true), nil)

	svc := NewService(store, gate)
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: "very helpful", ReviewerID: 2})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmit_CommentRequired(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)

	svc := NewService(store, gate)
	for _, comment := range []string{"", "   ", "\t\n"} {
		_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: comment, ReviewerID: 2})
		assert.ErrorIs(t, err, ErrValidation, "comment %q must be rejected", comment)
	}
	store.AssertNotCalled(t, "Create")
}

func TestSubmit_CommentLengthInRunes(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)
	store.On("Exists", mock.Anything, int64(50), int64(2), domain.SwapDirectionNone).Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, gate)

	// two runes, six bytes: still too short
	_, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: "日本", ReviewerID: 2})
	assert.ErrorIs(t, err, ErrValidation)

	// three runes pass regardless of byte length
	rv, err := svc.Submit(context.Background(), SubmitReviewRequest{BookingID: 50, Rating: 4, Comment: "日本語", ReviewerID: 2})
	assert.NoError(t, err)
	assert.Equal(t, "日本語", rv.Comment)
}

func TestSubmitSwapPair_Success(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(true), nil)
	store.On("Exists", mock.Anything, int64(50), int64(1), domain.SwapDirectionProvided).Return(false, nil)
	store.On("CreatePair", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, gate)
	reviews, err := svc.SubmitSwapPair(context.Background(), SubmitSwapReviewRequest{
		BookingID:       50,
		ProvidedRating:  5,
		ProvidedComment: "patient teacher",
		ReceivedRating:  4,
		ReceivedComment: "quick learner",
		ReviewerID:      1,
	})

	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, domain.SwapDirectionProvided, reviews[0].Direction)
	assert.Equal(t, domain.SwapDirectionReceived, reviews[1].Direction)
	assert.Equal(t, int64(2), reviews[0].RevieweeID)
	assert.Equal(t, int64(2), reviews[1].RevieweeID)
}

func TestSubmitSwapPair_OnRegularBooking_Rejected(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(false), nil)

	svc := NewService(store, gate)
	_, err := svc.SubmitSwapPair(context.Background(), SubmitSwapReviewRequest{
		BookingID:      50,
		ProvidedRating: 5,
		ReceivedRating: 4,
		ReviewerID:     1,
	})

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "CreatePair")
}

func TestSubmitSwapPair_OneBadRating_NothingStored(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(true), nil)

	svc := NewService(store, gate)
	_, err := svc.SubmitSwapPair(context.Background(), SubmitSwapReviewRequest{
		BookingID:       50,
		ProvidedRating:  5,
		ProvidedComment: "patient teacher",
		ReceivedRating:  9,
		ReceivedComment: "quick learner",
		ReviewerID:      1,
	})

	assert.ErrorIs(t, err, ErrValidation)
	store.AssertNotCalled(t, "CreatePair")
}

func TestSubmitSwapPair_Duplicate(t *testing.T) {
	store := new(MockStore)
	gate := new(MockBookingGate)
	gate.On("GetByID", mock.Anything, int64(50)).Return(completedBooking(true), nil)
	store.On("Exists", mock.Anything, int64(50), int64(1), domain.SwapDirectionProvided).Return(true, nil)

	svc := NewService(store, gate)
	_, err := svc.SubmitSwapPair(context.Background(), SubmitSwapReviewRequest{
		BookingID:       50,
		ProvidedRating:  5,
		ProvidedComment: "patient teacher",
		ReceivedRating:  4,
		ReceivedComment: "quick learner",
		ReviewerID:      1,
	})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
