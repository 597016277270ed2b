package domain

import (
	"time"

	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/shopspring/decimal"
)

// ContractStatus mirrors the contract status stored by the portal
type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "Rascunho"
	ContractStatusSigned     ContractStatus = "Assinado"
	ContractStatusProcessing ContractStatus = "Em processo"
	ContractStatusActive     ContractStatus = "Vigente"
	ContractStatusClosed     ContractStatus = "Encerrado"
)

// ContractTerms are the economic parameters fixed at contract signing
type ContractTerms struct {
	Principal   decimal.Decimal `json:"principal"`
	MonthlyRate decimal.Decimal `json:"monthlyRate"`
	TermMonths  int             `json:"termMonths"`
	StartDate   time.Time       `json:"startDate"`
}

// Validate enforces principal > 0, monthlyRate >= 0, termMonths >= 1 and a start date
func (t ContractTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return customError.WrapInvalidTerms("principal must be greater than 0")
	}
	if t.MonthlyRate.IsNegative() {
		return customError.WrapInvalidTerms("monthly rate must not be negative")
	}
	if t.TermMonths < 1 {
		return customError.WrapInvalidTerms("term must be at least 1 month")
	}
	if t.StartDate.IsZero() {
		return customError.WrapInvalidTerms("start date is required")
	}
	return nil
}

// Contract is the persisted contract record
type Contract struct {
	ID             string          `json:"id" db:"id"`
	Code           string          `json:"code" db:"code"`
	OwnerID        string          `json:"ownerId" db:"ownerId"`
	ConsultantID   *string         `json:"consultantId,omitempty" db:"consultantId"`
	Principal      decimal.Decimal `json:"principal" db:"principal"`
	MonthlyRate    decimal.Decimal `json:"monthlyRate" db:"monthlyRate"`
	TermMonths     int             `json:"termMonths" db:"termMonths"`
	StartDate      *time.Time      `json:"startDate,omitempty" db:"startDate"`
	Status         ContractStatus  `json:"status" db:"status"`
	ConsultantRate decimal.Decimal `json:"consultantRate" db:"consultantRate"`
	LeaderRate     decimal.Decimal `json:"leaderRate" db:"leaderRate"`
	CreatedAt      time.Time       `json:"createdAt" db:"createdAt"`
}

// Terms converts the stored record into validated ContractTerms.
// Draft contracts may lack a start date; those fail with InvalidTerms.
func (c *Contract) Terms() (ContractTerms, error) {
	terms := ContractTerms{
		Principal:   c.Principal,
		MonthlyRate: c.MonthlyRate,
		TermMonths:  c.TermMonths,
	}
	if c.StartDate != nil {
		terms.StartDate = *c.StartDate
	}

	if err := terms.Validate(); err != nil {
		return ContractTerms{}, err
	}
	return terms, nil
}

// IsActive reports whether the contract is running
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}
