package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ProviderID    int64      `gorm:"column:provider_id;index"`
	SeekerID      int64      `gorm:"column:seeker_id;index"`
	SlotID        *int64     `gorm:"column:slot_id"`
	StartTime     time.Time  `gorm:"column:start_time"`
	EndTime       time.Time  `gorm:"column:end_time"`
	ServiceLabel  string     `gorm:"column:service_label"`
	Notes         *string    `gorm:"column:notes"`
	Status        string     `gorm:"column:status;index"`
	PaymentStatus string     `gorm:"column:payment_status"`
	IsSkillSwap   bool       `gorm:"column:is_skill_swap"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:            m.ID,
		ProviderID:    m.ProviderID,
		SeekerID:      m.SeekerID,
		SlotID:        m.SlotID,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		ServiceLabel:  m.ServiceLabel,
		Notes:         notes,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		IsSkillSwap:   m.IsSkillSwap,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CancelledAt:   m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:            b.ID,
		ProviderID:    b.ProviderID,
		SeekerID:      b.SeekerID,
		SlotID:        b.SlotID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		ServiceLabel:  b.ServiceLabel,
		Notes:         notes,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		IsSkillSwap:   b.IsSkillSwap,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CancelledAt:   b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// Delete is a compensation-only operation: it removes a partially created
// booking while a failed Create transition unwinds. Committed bookings are
// never deleted.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

// UpdateStatus is a conditional write keyed on the current status. It
// returns false without error when the row was not in `from` anymore, which
// is how a concurrent transition loses the race.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	if to == domain.BookingCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	} else if from == domain.BookingCancelled {
		// restoring a pre-cancel state during rollback
		updates["cancelled_at"] = nil
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// UpdatePaymentStatus is the payment-side conditional write; status is left
// untouched.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND payment_status = ?", id, string(from)).
		Updates(map[string]any{
			"payment_status": string(to),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *BookingRepository) ListByParticipant(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("provider_id = ? OR seeker_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
