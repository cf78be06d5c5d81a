package swap

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

// Service is the coordinator for the agreement half of a skill-swap
// booking. It is invoked only as a sub-step of a booking transition and
// never drives state on its own.
type Service struct {
	agreements AgreementRepository
	skills     SkillCatalog
}

func NewService(agreements AgreementRepository, skills SkillCatalog) *Service {
	return &Service{agreements: agreements, skills: skills}
}

type ProposeRequest struct {
	BookingID        int64
	ProposerID       int64
	RecipientID      int64
	ProposerSkillID  int64
	RecipientSkillID int64
}

// validTransitions mirrors the booking state machine: an agreement is
// accepted/rejected from pending and completed/rejected from accepted.
var validTransitions = map[domain.SwapStatus][]domain.SwapStatus{
	domain.SwapPending:  {domain.SwapAccepted, domain.SwapRejected},
	domain.SwapAccepted: {domain.SwapCompleted, domain.SwapRejected},
}

func canTransition(from, to domain.SwapStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *Service) Propose(ctx context.Context, req ProposeRequest) (*domain.SkillSwapAgreement, error) {
	if req.BookingID <= 0 || req.ProposerID <= 0 || req.RecipientID <= 0 ||
		req.ProposerSkillID <= 0 || req.RecipientSkillID <= 0 {
		return nil, ErrValidation
	}

	ok, err := s.skills.IsOwnedBy(ctx, req.ProposerSkillID, req.ProposerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSkillOwnership
	}

	ok, err = s.skills.IsOwnedBy(ctx, req.RecipientSkillID, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSkillOwnership
	}

	a := &domain.SkillSwapAgreement{
		BookingID:        req.BookingID,
		ProposerID:       req.ProposerID,
		RecipientID:      req.RecipientID,
		ProposerSkillID:  req.ProposerSkillID,
		RecipientSkillID: req.RecipientSkillID,
		Status:           domain.SwapPending,
	}
	if err := s.agreements.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Transition moves the agreement from `from` to `to` with a conditional
// write. The caller supplies `from` so a lost race surfaces as
// ErrInvalidTransition instead of silently overwriting.
func (s *Service) Transition(ctx context.Context, agreementID int64, from, to domain.SwapStatus) error {
	if !canTransition(from, to) {
		return ErrInvalidTransition
	}

	ok, err := s.agreements.UpdateStatus(ctx, agreementID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

// Revert restores a prior agreement status during rollback, bypassing the
// forward-only transition table.
func (s *Service) Revert(ctx context.Context, agreementID int64, from, to domain.SwapStatus) error {
	_, err := s.agreements.UpdateStatus(ctx, agreementID, from, to)
	return err
}

// Remove deletes an agreement whose creating transition is unwinding.
func (s *Service) Remove(ctx context.Context, agreementID int64) error {
	return s.agreements.Delete(ctx, agreementID)
}

func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*domain.SkillSwapAgreement, error) {
	a, err := s.agreements.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
