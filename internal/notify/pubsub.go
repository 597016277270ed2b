package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubPayload is the JSON body published for every notification.
type pubsubPayload struct {
	RecipientID string    `json:"recipientId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sentAt"`
}

// NewPubSubClient connects to Pub/Sub using credentialsJSON when given,
// Application Default Credentials otherwise.
func NewPubSubClient(ctx context.Context, projectID, credentialsJSON string) (*pubsub.Client, error) {
	if credentialsJSON != "" {
		return pubsub.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	return pubsub.NewClient(ctx, projectID)
}

// PubSubSender publishes notifications to a topic consumed by the push
// notification workers.
type PubSubSender struct {
	topic *pubsub.Topic
	now   func() time.Time
}

func NewPubSubSender(client *pubsub.Client, topicID string) *PubSubSender {
	return &PubSubSender{
		topic: client.Topic(topicID),
		now:   time.Now,
	}
}

func (s *PubSubSender) Send(ctx context.Context, recipientID, title, body string) error {
	data, err := json.Marshal(pubsubPayload{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
		SentAt:      s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	result := s.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"recipientId": recipientID},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Stop flushes pending messages.
func (s *PubSubSender) Stop() {
	s.topic.Stop()
}
