// Package notify delivers user notifications produced by document reviews,
// payments and installment reminders.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/segyhp/placement-engine/internal/config"
	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/logger"
	"github.com/segyhp/placement-engine/internal/repository"
	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sender delivers one notification to one recipient.
type Sender interface {
	Send(ctx context.Context, recipientID, title, body string) error
}

// DatabaseSender stores notifications so the portal can list them per user.
type DatabaseSender struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewDatabaseSender(repo repository.NotificationRepository) *DatabaseSender {
	return &DatabaseSender{
		repo: repo,
		now:  time.Now,
	}
}

func (s *DatabaseSender) Send(ctx context.Context, recipientID, title, body string) error {
	return s.repo.Create(ctx, &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    recipientID,
		Title:     title,
		Body:      body,
		Read:      false,
		CreatedAt: s.now(),
	})
}

// LogSender only writes the notification to the log.
type LogSender struct {
	logger logrus.FieldLogger
}

func NewLogSender(logger logrus.FieldLogger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, recipientID, title, body string) error {
	s.logger.WithFields(logrus.Fields{
		"recipientId": recipientID,
		"title":       title,
	}).Info(body)
	return nil
}

// Dispatcher sends notifications after a state change has been committed.
// Delivery failures are logged and never returned.
type Dispatcher struct {
	sender Sender
	logger logrus.FieldLogger
}

func NewDispatcher(sender Sender, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: logger,
	}
}

// Dispatch reports whether the notification was delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) bool {
	if err := d.sender.Send(ctx, msg.RecipientID, msg.Title, msg.Body); err != nil {
		logger.LogError(d.logger, "notify", "Dispatch", msg,
			customError.WrapNotificationDeliveryFailed(msg.RecipientID, err))
		return false
	}
	return true
}

// NewSenderFromConfig builds the Sender selected by cfg.Driver. The returned
// func releases the driver's resources.
func NewSenderFromConfig(ctx context.Context, cfg config.NotifierConfig, repo repository.NotificationRepository, logger logrus.FieldLogger) (Sender, func(), error) {
	switch cfg.Driver {
	case "pubsub":
		client, err := NewPubSubClient(ctx, cfg.ProjectID, cfg.CredentialsJSON)
		if err != nil {
			return nil, nil, fmt.Errorf("pubsub client: %w", err)
		}
		sender := NewPubSubSender(client, cfg.Topic)
		return sender, func() {
			sender.Stop()
			_ = client.Close()
		}, nil
	case "log":
		return NewLogSender(logger), func() {}, nil
	default:
		return NewDatabaseSender(repo), func() {}, nil
	}
}
