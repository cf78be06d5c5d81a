package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type timeSlotModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ProviderID  int64     `gorm:"column:provider_id;index"`
	Date        time.Time `gorm:"column:date"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	IsAvailable bool      `gorm:"column:is_available;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (timeSlotModel) TableName() string { return "time_slots" }

func toDomainSlot(m timeSlotModel) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		Date:        m.Date,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.TimeSlot) error {
	m := timeSlotModel{
		ProviderID:  s.ProviderID,
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		IsAvailable: s.IsAvailable,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSlot(m)
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSlot(m), nil
}

// Reserve flips the availability flag off, conditionally on it being on.
// Returns (false, nil) when the slot exists but is already held;
// gorm.ErrRecordNotFound when the slot does not exist.
func (r *SlotRepository) Reserve(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&timeSlotModel{}).
		Where("id = ? AND is_available = ?", id, true).
		Updates(map[string]any{
			"is_available": false,
			"updated_at":   time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 1 {
		return true, nil
	}

	var cnt int64
	if err := r.db.WithContext(ctx).Model(&timeSlotModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	if cnt == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return false, nil
}

// Release makes the slot available again. Releasing an already-available
// slot is a no-op, so compensation can call it twice safely.
func (r *SlotRepository) Release(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&timeSlotModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_available": true,
			"updated_at":   time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SlotRepository) ListOpenByProvider(ctx context.Context, providerID int64, from, to time.Time) ([]domain.TimeSlot, error) {
	var models []timeSlotModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ? AND is_available = ? AND date >= ? AND date < ?", providerID, true, from, to).
		Order("start_time ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TimeSlot, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}
