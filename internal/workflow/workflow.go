// Package workflow holds the approval state machine for invoices and
// commission reports. Transitions are pure: they take a document value and
// return the next one, leaving persistence and notification to the caller.
//
//	Pendente   -> Em análise | Aprovada | Rejeitada
//	Em análise -> Em análise | Aprovada | Rejeitada
//	Aprovada   -> Paga
//
// Rejeitada and Paga are terminal. Nothing returns to Pendente.
package workflow

import (
	"slices"
	"strings"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	customError "github.com/segyhp/placement-engine/pkg/errors"
)

var (
	reviewable = []domain.DocumentStatus{domain.DocumentStatusPending, domain.DocumentStatusUnderReview}
	payable    = []domain.DocumentStatus{domain.DocumentStatusApproved}
)

// ReviewPreconditions returns the statuses a review may start from
func ReviewPreconditions() []domain.DocumentStatus {
	return append([]domain.DocumentStatus(nil), reviewable...)
}

// PaymentPreconditions returns the statuses a payment may start from
func PaymentPreconditions() []domain.DocumentStatus {
	return append([]domain.DocumentStatus(nil), payable...)
}

// IsReviewDecision reports whether decision is an outcome a reviewer may pick
func IsReviewDecision(decision domain.DocumentStatus) bool {
	switch decision {
	case domain.DocumentStatusApproved, domain.DocumentStatusRejected, domain.DocumentStatusUnderReview:
		return true
	}
	return false
}

// Review applies a reviewer decision. A rejection needs a non-blank reason;
// any other decision clears a previous one.
func Review(doc domain.ApprovableDocument, decision domain.DocumentStatus, reason string) (domain.ApprovableDocument, error) {
	if !IsReviewDecision(decision) || !slices.Contains(reviewable, doc.Status) {
		return domain.ApprovableDocument{}, customError.WrapInvalidTransition(doc.ID, string(doc.Status), string(decision))
	}

	next := doc
	next.Status = decision
	next.RejectionReason = nil

	if decision == domain.DocumentStatusRejected {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return domain.ApprovableDocument{}, customError.WrapMissingRejectionReason(doc.ID)
		}
		next.RejectionReason = &reason
	}

	return next, nil
}

// MarkPaid settles an approved document at now
func MarkPaid(doc domain.ApprovableDocument, now time.Time) (domain.ApprovableDocument, error) {
	if !slices.Contains(payable, doc.Status) {
		return domain.ApprovableDocument{}, customError.WrapInvalidTransition(doc.ID, string(doc.Status), string(domain.DocumentStatusPaid))
	}

	next := doc
	next.Status = domain.DocumentStatusPaid
	next.PaidAt = &now
	next.RejectionReason = nil

	return next, nil
}
