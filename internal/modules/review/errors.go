package review

import "errors"

var (
	ErrValidation      = errors.New("invalid review request")
	ErrNotFound        = errors.New("booking not found")
	ErrNotParticipant  = errors.New("reviewer is not part of this booking")
	ErrBookingNotDone  = errors.New("booking is not completed")
	ErrAlreadyReviewed = errors.New("review already submitted")
)
