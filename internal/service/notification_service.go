package service

import (
	"context"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/repository"
	customError "github.com/segyhp/placement-engine/pkg/errors"
)

type NotificationService struct {
	NotificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		NotificationRepo: notificationRepo,
	}
}

// ListByUser returns the notifications delivered to a user, newest first
func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications, err := s.NotificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return notifications, nil
}
