package review

type SubmitReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment,omitempty"`

	// ReviewerID comes from the identity context, never from the body.
	ReviewerID int64 `json:"-"`
}

// SubmitSwapReviewRequest carries both halves of a skill-swap review:
// one rating for the skill the counterparty provided, one for how they
// received the reviewer's. The two records land atomically.
type SubmitSwapReviewRequest struct {
	BookingID       int64  `json:"booking_id" binding:"required"`
	ProvidedRating  int    `json:"provided_rating" binding:"required"`
	ProvidedComment string `json:"provided_comment,omitempty"`
	ReceivedRating  int    `json:"received_rating" binding:"required"`
	ReceivedComment string `json:"received_comment,omitempty"`

	ReviewerID int64 `json:"-"`
}
