package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus values are stored verbatim, matching existing portal data
type DocumentStatus string

const (
	DocumentStatusPending     DocumentStatus = "Pendente"
	DocumentStatusUnderReview DocumentStatus = "Em análise"
	DocumentStatusApproved    DocumentStatus = "Aprovada"
	DocumentStatusRejected    DocumentStatus = "Rejeitada"
	DocumentStatusPaid        DocumentStatus = "Paga"
)

// IsValid reports whether s is a known document status
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusUnderReview, DocumentStatusApproved,
		DocumentStatusRejected, DocumentStatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether no review action may leave s
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentStatusRejected || s == DocumentStatusPaid
}

// DocumentKind distinguishes invoices from commission reports
type DocumentKind string

const (
	DocumentKindInvoice          DocumentKind = "invoice"
	DocumentKindCommissionReport DocumentKind = "commission_report"
)

// ApprovableDocument is an invoice or commission report under review.
// Version increases on every committed status change.
type ApprovableDocument struct {
	ID              string          `json:"id" db:"id"`
	Kind            DocumentKind    `json:"kind" db:"kind"`
	OwnerID         string          `json:"ownerId" db:"ownerId"`
	Title           string          `json:"title" db:"title"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	FileReference   string          `json:"fileReference" db:"fileReference"`
	ReferenceMonth  *int            `json:"referenceMonth,omitempty" db:"referenceMonth"`
	ReferenceYear   *int            `json:"referenceYear,omitempty" db:"referenceYear"`
	RejectionReason *string         `json:"rejectionReason,omitempty" db:"rejectionReason"`
	Status          DocumentStatus  `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"createdAt"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paidAt"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updatedAt"`
	Version         int64           `json:"version" db:"version"`
}

// DocumentFilter narrows document listings; empty fields match everything
type DocumentFilter struct {
	OwnerID string
	Status  DocumentStatus
}

// DTOs for requests and responses

type SubmitDocumentRequest struct {
	Kind           DocumentKind    `json:"kind" validate:"required,oneof=invoice commission_report"`
	OwnerID        string          `json:"ownerId" validate:"required"`
	Title          string          `json:"title" validate:"required,max=200"`
	Amount         decimal.Decimal `json:"amount" validate:"decimal_gt0"`
	FileReference  string          `json:"fileReference" validate:"required"`
	ReferenceMonth *int            `json:"referenceMonth,omitempty" validate:"omitempty,min=1,max=12"`
	ReferenceYear  *int            `json:"referenceYear,omitempty" validate:"omitempty,min=2000,max=2100"`
}

type ReviewRequest struct {
	Decision DocumentStatus `json:"decision" validate:"required,review_decision"`
	Reason   string         `json:"reason"`
}

type DocumentResponse struct {
	Document *ApprovableDocument `json:"document"`
	FileURL  string              `json:"fileUrl,omitempty"`
}
