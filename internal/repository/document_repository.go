package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/segyhp/placement-engine/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const documentColumns = `id, kind, "ownerId", title, amount, "fileReference", "referenceMonth", "referenceYear",
	"rejectionReason", status, "createdAt", "paidAt", "updatedAt", version`

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.ApprovableDocument) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Kind,
		doc.OwnerID,
		doc.Title,
		doc.Amount,
		doc.FileReference,
		doc.ReferenceMonth,
		doc.ReferenceYear,
		doc.RejectionReason,
		doc.Status,
		doc.CreatedAt,
		doc.PaidAt,
		doc.UpdatedAt,
		doc.Version,
	)

	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.ApprovableDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`

	var doc domain.ApprovableDocument
	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.ApprovableDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($1 = '' OR "ownerId" = $1) AND ($2 = '' OR status = $2)
		ORDER BY "createdAt" DESC
	`

	docs := []*domain.ApprovableDocument{}
	err := r.db.SelectContext(ctx, &docs, query, filter.OwnerID, string(filter.Status))
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) UpdateStatus(ctx context.Context, doc *domain.ApprovableDocument, allowedFrom []domain.DocumentStatus) (*domain.ApprovableDocument, error) {
	// The precondition is evaluated by Postgres against the stored row. Matching the
	// version read by the caller also separates two identical decisions made from
	// the same read, such as keeping a document under review twice.
	query := `
		UPDATE documents
		SET status = $2, "rejectionReason" = $3, "paidAt" = $4, "updatedAt" = $5, version = version + 1
		WHERE id = $1 AND status = ANY($6) AND version = $7
		RETURNING ` + documentColumns

	var updated domain.ApprovableDocument
	err := r.db.GetContext(ctx, &updated, query,
		doc.ID,
		doc.Status,
		doc.RejectionReason,
		doc.PaidAt,
		doc.UpdatedAt,
		pq.Array(statusStrings(allowedFrom)),
		doc.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreconditionFailed
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
