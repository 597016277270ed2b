package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentKind classifies a projected cash-flow line
type InstallmentKind string

const (
	InstallmentKindContribution    InstallmentKind = "Contribution"
	InstallmentKindYieldPayment    InstallmentKind = "YieldPayment"
	InstallmentKindPrincipalReturn InstallmentKind = "PrincipalReturn"
)

// InstallmentStatus is derived from the kind, never from posted payments
type InstallmentStatus string

const (
	InstallmentStatusPaid    InstallmentStatus = "Paid"
	InstallmentStatusPending InstallmentStatus = "Pending"
)

// InstallmentEvent is one projected line of a contract schedule
type InstallmentEvent struct {
	Index   int               `json:"index"`
	DueDate time.Time         `json:"dueDate"`
	Amount  decimal.Decimal   `json:"amount"`
	Kind    InstallmentKind   `json:"kind"`
	Status  InstallmentStatus `json:"status"`
}

// Beneficiary of a commission line
type Beneficiary string

const (
	BeneficiaryConsultant Beneficiary = "Consultant"
	BeneficiaryLeader     Beneficiary = "Leader"
)

// CommissionEvent is one projected commission line
type CommissionEvent struct {
	Index       int             `json:"index"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Beneficiary Beneficiary     `json:"beneficiary"`
}

// ProjectionSummary aggregates a schedule for display
type ProjectionSummary struct {
	MonthlyYield     decimal.Decimal `json:"monthlyYield"`
	TotalYield       decimal.Decimal `json:"totalYield"`
	YieldPercent     decimal.Decimal `json:"yieldPercent"`
	FirstPaymentDate time.Time       `json:"firstPaymentDate"`
	LastPaymentDate  time.Time       `json:"lastPaymentDate"`
	EndDate          time.Time       `json:"endDate"`
}

// DTOs for requests and responses

type SimulationRequest struct {
	Principal      decimal.Decimal `json:"principal" validate:"decimal_gt0"`
	MonthlyRate    decimal.Decimal `json:"monthlyRate" validate:"decimal_gte0"`
	TermMonths     int             `json:"termMonths" validate:"required,gt=0"`
	StartDate      string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	ConsultantRate decimal.Decimal `json:"consultantRate" validate:"decimal_gte0"`
	LeaderRate     decimal.Decimal `json:"leaderRate" validate:"decimal_gte0"`
}

type ScheduleResponse struct {
	ContractID            string             `json:"contractId,omitempty"`
	Schedule              []InstallmentEvent `json:"schedule"`
	Summary               ProjectionSummary  `json:"summary"`
	ConsultantCommissions []CommissionEvent  `json:"consultantCommissions,omitempty"`
	LeaderCommissions     []CommissionEvent  `json:"leaderCommissions,omitempty"`
}
