package service

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/logger"
	"github.com/segyhp/placement-engine/internal/notify"
	"github.com/segyhp/placement-engine/internal/repository"
	"github.com/segyhp/placement-engine/internal/schedule"
	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/sirupsen/logrus"
)

type ReminderService struct {
	ContractRepo repository.ContractRepository
	cache        repository.CacheRepository
	dispatcher   *notify.Dispatcher
	windowDays   int
	logger       logrus.FieldLogger
}

func NewReminderService(
	contractRepo repository.ContractRepository,
	cache repository.CacheRepository,
	dispatcher *notify.Dispatcher,
	windowDays int,
	logger logrus.FieldLogger,
) *ReminderService {
	return &ReminderService{
		ContractRepo: contractRepo,
		cache:        cache,
		dispatcher:   dispatcher,
		windowDays:   windowDays,
		logger:       logger,
	}
}

// SendUpcomingReminders notifies the owners of active contracts about pending
// installments due within the window starting at now. Every installment is
// reminded at most once. It returns how many reminders were delivered.
func (s *ReminderService) SendUpcomingReminders(ctx context.Context, now time.Time) (int, error) {
	contracts, err := s.ContractRepo.ListByStatus(ctx, domain.ContractStatusActive)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	// keep the marker until the window has passed the due date
	ttl := time.Duration(s.windowDays+2) * 24 * time.Hour

	sent := 0
	for _, contract := range contracts {
		terms, err := contract.Terms()
		if err != nil {
			logger.LogError(s.logger, "reminder", "SendUpcomingReminders", contract.ID, err)
			continue
		}

		events, err := schedule.Generate(terms)
		if err != nil {
			logger.LogError(s.logger, "reminder", "SendUpcomingReminders", contract.ID, err)
			continue
		}

		for _, event := range schedule.DueBetween(events, now, now.AddDate(0, 0, s.windowDays)) {
			if err := ctx.Err(); err != nil {
				return sent, err
			}

			first, err := s.cache.MarkOnce(ctx, reminderKey(contract.ID, event.Index), ttl)
			if err != nil {
				logger.LogError(s.logger, "reminder", "SendUpcomingReminders", contract.ID, customError.WrapCacheError(err))
				continue
			}
			if !first {
				continue
			}

			if s.dispatcher.Dispatch(ctx, notify.ReminderMessage(*contract, event)) {
				sent++
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"contracts": len(contracts),
		"sent":      sent,
	}).Info("upcoming installment reminders sent")

	return sent, nil
}

func reminderKey(contractID string, index int) string {
	return fmt.Sprintf("reminder:%s:%d", contractID, index)
}
