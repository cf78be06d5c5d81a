package domain

import "time"

// Skill is a catalog entry owned by one user. The engine only reads skills
// to verify ownership when a swap is proposed; the catalog itself is
// managed elsewhere.
type Skill struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}
