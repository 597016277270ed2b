package repository

import (
	"context"
	"errors"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup
	ErrNotFound = errors.New("record not found")

	// ErrPreconditionFailed is returned when a conditional update matched zero rows
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ContractRepository defines the interface for contract data operations
type ContractRepository interface {
	// GetByID retrieves a contract by its ID
	GetByID(ctx context.Context, id string) (*domain.Contract, error)

	// ListByStatus retrieves all contracts in the given status
	ListByStatus(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error)
}

// DocumentRepository defines the interface for approvable document operations
type DocumentRepository interface {
	// Create stores a new document
	Create(ctx context.Context, doc *domain.ApprovableDocument) error

	// GetByID retrieves a document by its ID
	GetByID(ctx context.Context, id string) (*domain.ApprovableDocument, error)

	// List retrieves documents matching the filter, newest first
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.ApprovableDocument, error)

	// UpdateStatus writes status, rejectionReason and paidAt of doc only when the
	// stored status is one of allowedFrom and the stored version equals doc.Version.
	// The version is incremented on success. Zero rows affected is ErrPreconditionFailed.
	UpdateStatus(ctx context.Context, doc *domain.ApprovableDocument, allowedFrom []domain.DocumentStatus) (*domain.ApprovableDocument, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	// Create stores a new notification
	Create(ctx context.Context, notification *domain.Notification) error

	// ListByUser retrieves the notifications of a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
}

// CacheRepository defines the small key/value surface used for de-duplication
type CacheRepository interface {
	// MarkOnce sets key if absent and reports whether this call set it
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func statusStrings(statuses []domain.DocumentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
