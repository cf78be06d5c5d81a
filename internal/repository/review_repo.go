package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex:idx_one_review_per_direction"`
	ReviewerID int64     `gorm:"column:reviewer_id;uniqueIndex:idx_one_review_per_direction"`
	RevieweeID int64     `gorm:"column:reviewee_id;index"`
	Rating     int       `gorm:"column:rating"`
	Comment    string    `gorm:"column:comment"`
	Direction  string    `gorm:"column:direction;uniqueIndex:idx_one_review_per_direction"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		ReviewerID: m.ReviewerID,
		RevieweeID: m.RevieweeID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		Direction:  domain.SwapDirection(m.Direction),
		CreatedAt:  m.CreatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:         rv.ID,
		BookingID:  rv.BookingID,
		ReviewerID: rv.ReviewerID,
		RevieweeID: rv.RevieweeID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		Direction:  string(rv.Direction),
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

// CreatePair stores both halves of a swap review atomically. Reviews are a
// single table, so a native transaction covers this; the saga machinery is
// only needed across entity types.
func (r *ReviewRepository) CreatePair(ctx context.Context, a, b *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ma := toReviewModel(a)
		if err := tx.Create(&ma).Error; err != nil {
			return err
		}
		mb := toReviewModel(b)
		if err := tx.Create(&mb).Error; err != nil {
			return err
		}
		*a = *toDomainReview(ma)
		*b = *toDomainReview(mb)
		return nil
	})
}

func (r *ReviewRepository) Exists(ctx context.Context, bookingID, reviewerID int64, direction domain.SwapDirection) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("booking_id = ? AND reviewer_id = ? AND direction = ?", bookingID, reviewerID, string(direction)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *ReviewRepository) ListByReviewee(ctx context.Context, userID int64, limit, offset int) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}
