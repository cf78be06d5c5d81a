package notification

import (
	"context"

	"skillswap/internal/domain"
)

// Repository is the feed's slice of the persistence store.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	Delete(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

// Service is the notification sink plus the feed read side. Delivery to
// live clients is somebody else's problem; the engine only has to leave the
// right records behind.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Enqueue persists one notification record. The id assigned by the store is
// written back so the caller can register a compensating Discard.
func (s *Service) Enqueue(ctx context.Context, n *domain.Notification) error {
	return s.repo.Create(ctx, n)
}

// Discard removes a notification written by a transition that is rolling
// back.
func (s *Service) Discard(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
