package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

type skillModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	OwnerID     int64     `gorm:"column:owner_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (skillModel) TableName() string { return "skills" }

func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	m := skillModel{
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt
	return nil
}

// IsOwnedBy answers the swap coordinator's ownership check. A missing
// skill counts as not owned.
func (r *SkillRepository) IsOwnedBy(ctx context.Context, skillID, userID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&skillModel{}).
		Where("id = ? AND owner_id = ?", skillID, userID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *SkillRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Skill, error) {
	var models []skillModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Skill, 0, len(models))
	for _, m := range models {
		out = append(out, domain.Skill{
			ID:          m.ID,
			OwnerID:     m.OwnerID,
			Name:        m.Name,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
