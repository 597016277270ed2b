package service

import (
	"context"
	"errors"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/notify"
	"github.com/segyhp/placement-engine/internal/repository"
	"github.com/segyhp/placement-engine/internal/workflow"
	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ApprovalService struct {
	DocumentRepo repository.DocumentRepository
	dispatcher   *notify.Dispatcher
	logger       logrus.FieldLogger
	now          func() time.Time
}

func NewApprovalService(
	documentRepo repository.DocumentRepository,
	dispatcher *notify.Dispatcher,
	logger logrus.FieldLogger,
) *ApprovalService {
	return &ApprovalService{
		DocumentRepo: documentRepo,
		dispatcher:   dispatcher,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit stores a new document waiting for review
func (s *ApprovalService) Submit(ctx context.Context, request *domain.SubmitDocumentRequest) (*domain.ApprovableDocument, error) {
	now := s.now()
	doc := &domain.ApprovableDocument{
		ID:             uuid.New().String(),
		Kind:           request.Kind,
		OwnerID:        request.OwnerID,
		Title:          request.Title,
		Amount:         request.Amount,
		FileReference:  request.FileReference,
		ReferenceMonth: request.ReferenceMonth,
		ReferenceYear:  request.ReferenceYear,
		Status:         domain.DocumentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"documentId": doc.ID,
		"ownerId":    doc.OwnerID,
	}).Info("document submitted")

	return doc, nil
}

// Get returns a single document
func (s *ApprovalService) Get(ctx context.Context, documentID string) (*domain.ApprovableDocument, error) {
	doc, err := s.DocumentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapDocumentNotFound(documentID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return doc, nil
}

// List returns the documents matching filter, newest first
func (s *ApprovalService) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.ApprovableDocument, error) {
	docs, err := s.DocumentRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return docs, nil
}

// Review applies a reviewer decision and notifies the document owner
func (s *ApprovalService) Review(ctx context.Context, documentID string, decision domain.DocumentStatus, reason string) (*domain.ApprovableDocument, error) {
	current, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Review(*current, decision, reason)
	if err != nil {
		return nil, err
	}

	saved, err := s.commit(ctx, current, next)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"documentId": saved.ID,
		"from":       current.Status,
		"to":         saved.Status,
	}).Info("document reviewed")

	s.dispatcher.Dispatch(ctx, notify.ReviewMessage(*saved))
	return saved, nil
}

// MarkPaid records the payment of an approved document and notifies its owner
func (s *ApprovalService) MarkPaid(ctx context.Context, documentID string) (*domain.ApprovableDocument, error) {
	current, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	next, err := workflow.MarkPaid(*current, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.commit(ctx, current, next)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"documentId": saved.ID,
		"paidAt":     saved.PaidAt,
	}).Info("document paid")

	s.dispatcher.Dispatch(ctx, notify.PaymentMessage(*saved))
	return saved, nil
}

// commit writes next only if the stored row is still the one next was derived from,
// so of two concurrent decisions on the same document exactly one lands.
func (s *ApprovalService) commit(ctx context.Context, current *domain.ApprovableDocument, next domain.ApprovableDocument) (*domain.ApprovableDocument, error) {
	next.UpdatedAt = s.now()

	saved, err := s.DocumentRepo.UpdateStatus(ctx, &next, []domain.DocumentStatus{current.Status})
	if err != nil {
		if errors.Is(err, repository.ErrPreconditionFailed) {
			return nil, customError.WrapInvalidTransition(current.ID, string(current.Status), string(next.Status))
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return saved, nil
}
