// Package schedule projects the cash flows of a contract from its terms.
// Everything here is pure: no I/O, no clock, safe for concurrent use.
package schedule

import (
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Generate returns the termMonths+2 projected events of a contract ordered by index:
// the contribution, one yield payment per month and the principal return.
func Generate(terms domain.ContractTerms) ([]domain.InstallmentEvent, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	events := make([]domain.InstallmentEvent, 0, terms.TermMonths+2)

	// 1. Contribution, already settled when the contract starts
	events = append(events, domain.InstallmentEvent{
		Index:   0,
		DueDate: terms.StartDate,
		Amount:  terms.Principal,
		Kind:    domain.InstallmentKindContribution,
		Status:  domain.InstallmentStatusPaid,
	})

	// 2. Monthly yield on calendar months
	monthlyYield := utils.CalculateMonthlyYield(terms.Principal, terms.MonthlyRate)
	for month := 1; month <= terms.TermMonths; month++ {
		events = append(events, domain.InstallmentEvent{
			Index:   month,
			DueDate: utils.AddMonths(terms.StartDate, month),
			Amount:  monthlyYield,
			Kind:    domain.InstallmentKindYieldPayment,
			Status:  domain.InstallmentStatusPending,
		})
	}

	// 3. Principal return on the last yield date
	events = append(events, domain.InstallmentEvent{
		Index:   terms.TermMonths + 1,
		DueDate: utils.AddMonths(terms.StartDate, terms.TermMonths),
		Amount:  terms.Principal,
		Kind:    domain.InstallmentKindPrincipalReturn,
		Status:  domain.InstallmentStatusPending,
	})

	return events, nil
}

// Commissions projects the monthly consultant and leader commissions of a contract.
// Lines fall on the first day of each month following the start date, one per
// term month; a zero rate yields no lines for that beneficiary.
func Commissions(terms domain.ContractTerms, consultantRate, leaderRate decimal.Decimal) ([]domain.CommissionEvent, []domain.CommissionEvent, error) {
	if err := terms.Validate(); err != nil {
		return nil, nil, err
	}

	var consultant, leader []domain.CommissionEvent
	consultantAmount := terms.Principal.Mul(consultantRate)
	leaderAmount := terms.Principal.Mul(leaderRate)

	for i := 0; i < terms.TermMonths; i++ {
		dueDate := utils.FirstOfMonth(terms.StartDate, i+1)

		if consultantAmount.IsPositive() {
			consultant = append(consultant, domain.CommissionEvent{
				Index:       i + 1,
				DueDate:     dueDate,
				Amount:      consultantAmount,
				Beneficiary: domain.BeneficiaryConsultant,
			})
		}
		if leaderAmount.IsPositive() {
			leader = append(leader, domain.CommissionEvent{
				Index:       i + 1,
				DueDate:     dueDate,
				Amount:      leaderAmount,
				Beneficiary: domain.BeneficiaryLeader,
			})
		}
	}

	return consultant, leader, nil
}

// Summarize aggregates a generated schedule
func Summarize(terms domain.ContractTerms, events []domain.InstallmentEvent) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		MonthlyYield: utils.CalculateMonthlyYield(terms.Principal, terms.MonthlyRate),
		TotalYield:   decimal.Zero,
		YieldPercent: decimal.Zero,
		EndDate:      utils.AddMonths(terms.StartDate, terms.TermMonths),
	}

	for _, event := range events {
		if event.Kind != domain.InstallmentKindYieldPayment {
			continue
		}
		if summary.FirstPaymentDate.IsZero() {
			summary.FirstPaymentDate = event.DueDate
		}
		summary.LastPaymentDate = event.DueDate
		summary.TotalYield = summary.TotalYield.Add(event.Amount)
	}

	if terms.Principal.IsPositive() {
		summary.YieldPercent = summary.TotalYield.Div(terms.Principal).Mul(hundred).Round(4)
	}

	return summary
}

// DueBetween returns the pending events due between from and to, inclusive
func DueBetween(events []domain.InstallmentEvent, from, to time.Time) []domain.InstallmentEvent {
	var due []domain.InstallmentEvent
	for _, event := range events {
		if event.Status != domain.InstallmentStatusPending {
			continue
		}
		if utils.IsBetweenDays(event.DueDate, from, to) {
			due = append(due, event)
		}
	}
	return due
}
