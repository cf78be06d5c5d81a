package swap

import (
	"context"

	"skillswap/internal/domain"
)

// AgreementRepository defines the store operations for swap agreements.
type AgreementRepository interface {
	Create(ctx context.Context, a *domain.SkillSwapAgreement) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.SkillSwapAgreement, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.SwapStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// SkillCatalog answers ownership checks against the external skill catalog.
type SkillCatalog interface {
	IsOwnedBy(ctx context.Context, skillID, userID int64) (bool, error)
}
