package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type SwapRepository struct {
	db *gorm.DB
}

func NewSwapRepository(db *gorm.DB) *SwapRepository {
	return &SwapRepository{db: db}
}

type swapAgreementModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	BookingID        int64     `gorm:"column:booking_id;uniqueIndex"`
	ProposerID       int64     `gorm:"column:proposer_id"`
	RecipientID      int64     `gorm:"column:recipient_id"`
	ProposerSkillID  int64     `gorm:"column:proposer_skill_id"`
	RecipientSkillID int64     `gorm:"column:recipient_skill_id"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (swapAgreementModel) TableName() string { return "skill_swap_agreements" }

func toDomainAgreement(m swapAgreementModel) *domain.SkillSwapAgreement {
	return &domain.SkillSwapAgreement{
		ID:               m.ID,
		BookingID:        m.BookingID,
		ProposerID:       m.ProposerID,
		RecipientID:      m.RecipientID,
		ProposerSkillID:  m.ProposerSkillID,
		RecipientSkillID: m.RecipientSkillID,
		Status:           domain.SwapStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *SwapRepository) Create(ctx context.Context, a *domain.SkillSwapAgreement) error {
	m := swapAgreementModel{
		BookingID:        a.BookingID,
		ProposerID:       a.ProposerID,
		RecipientID:      a.RecipientID,
		ProposerSkillID:  a.ProposerSkillID,
		RecipientSkillID: a.RecipientSkillID,
		Status:           string(a.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAgreement(m)
	return nil
}

func (r *SwapRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.SkillSwapAgreement, error) {
	var m swapAgreementModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAgreement(m), nil
}

// UpdateStatus mirrors the booking-side conditional write: false means the
// agreement was no longer in `from`.
func (r *SwapRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.SwapStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&swapAgreementModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// Delete removes an agreement created by a transition that is unwinding.
func (r *SwapRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&swapAgreementModel{}, id).Error
}
