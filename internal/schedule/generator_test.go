package schedule

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func exampleTerms() domain.ContractTerms {
	return domain.ContractTerms{
		Principal:   decimal.NewFromInt(10000),
		MonthlyRate: decimal.RequireFromString("0.02"),
		TermMonths:  3,
		StartDate:   date(2025, 1, 15),
	}
}

func TestGenerate_Example(t *testing.T) {
	events, err := Generate(exampleTerms())
	require.NoError(t, err)

	expected := []struct {
		index   int
		dueDate time.Time
		amount  int64
		kind    domain.InstallmentKind
		status  domain.InstallmentStatus
	}{
		{0, date(2025, 1, 15), 10000, domain.InstallmentKindContribution, domain.InstallmentStatusPaid},
		{1, date(2025, 2, 15), 200, domain.InstallmentKindYieldPayment, domain.InstallmentStatusPending},
		{2, date(2025, 3, 15), 200, domain.InstallmentKindYieldPayment, domain.InstallmentStatusPending},
		{3, date(2025, 4, 15), 200, domain.InstallmentKindYieldPayment, domain.InstallmentStatusPending},
		{4, date(2025, 4, 15), 10000, domain.InstallmentKindPrincipalReturn, domain.InstallmentStatusPending},
	}

	require.Len(t, events, len(expected))
	for i, want := range expected {
		got := events[i]
		assert.Equal(t, want.index, got.Index)
		assert.Equal(t, want.dueDate, got.DueDate)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(want.amount)),
			"event %d: expected %d, got %v", i, want.amount, got.Amount)
		assert.Equal(t, want.kind, got.Kind)
		assert.Equal(t, want.status, got.Status)
	}
}

func TestGenerate_Shape(t *testing.T) {
	tests := []struct {
		name  string
		terms domain.ContractTerms
	}{
		{
			name:  "single month",
			terms: domain.ContractTerms{Principal: decimal.NewFromInt(5000), MonthlyRate: decimal.RequireFromString("0.015"), TermMonths: 1, StartDate: date(2025, 6, 1)},
		},
		{
			name:  "one year",
			terms: domain.ContractTerms{Principal: decimal.NewFromInt(250000), MonthlyRate: decimal.RequireFromString("0.0185"), TermMonths: 12, StartDate: date(2024, 8, 31)},
		},
		{
			name:  "zero rate",
			terms: domain.ContractTerms{Principal: decimal.NewFromInt(1000), MonthlyRate: decimal.Zero, TermMonths: 6, StartDate: date(2025, 3, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Generate(tt.terms)
			require.NoError(t, err)
			require.Len(t, events, tt.terms.TermMonths+2)

			for i, event := range events {
				assert.Equal(t, i, event.Index)
				if i == 0 {
					assert.Equal(t, domain.InstallmentKindContribution, event.Kind)
					assert.Equal(t, domain.InstallmentStatusPaid, event.Status)
					continue
				}
				assert.Equal(t, domain.InstallmentStatusPending, event.Status)
			}

			last := events[len(events)-1]
			assert.Equal(t, domain.InstallmentKindPrincipalReturn, last.Kind)
			assert.True(t, last.Amount.Equal(tt.terms.Principal))
			assert.Equal(t, events[len(events)-2].DueDate, last.DueDate)
		})
	}
}

func TestGenerate_CalendarMonthRollover(t *testing.T) {
	terms := domain.ContractTerms{
		Principal:   decimal.NewFromInt(10000),
		MonthlyRate: decimal.RequireFromString("0.02"),
		TermMonths:  1,
		StartDate:   date(2024, 1, 31),
	}

	events, err := Generate(terms)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), events[1].DueDate)
	assert.Equal(t, date(2024, 2, 29), events[2].DueDate)
}

func TestGenerate_EndOfMonthDoesNotDrift(t *testing.T) {
	terms := domain.ContractTerms{
		Principal:   decimal.NewFromInt(10000),
		MonthlyRate: decimal.RequireFromString("0.02"),
		TermMonths:  3,
		StartDate:   date(2025, 1, 31),
	}

	events, err := Generate(terms)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 28), events[1].DueDate)
	assert.Equal(t, date(2025, 3, 31), events[2].DueDate)
	assert.Equal(t, date(2025, 4, 30), events[3].DueDate)
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(exampleTerms())
	require.NoError(t, err)
	second, err := Generate(exampleTerms())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_ConcurrentCallers(t *testing.T) {
	expected, err := Generate(exampleTerms())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]domain.InstallmentEvent, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(exampleTerms())
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, expected, result)
	}
}

func TestGenerate_InvalidTerms(t *testing.T) {
	tests := []struct {
		name  string
		terms domain.ContractTerms
	}{
		{name: "zero principal", terms: domain.ContractTerms{Principal: decimal.Zero, MonthlyRate: decimal.RequireFromString("0.02"), TermMonths: 3, StartDate: date(2025, 1, 15)}},
		{name: "zero term", terms: domain.ContractTerms{Principal: decimal.NewFromInt(100), MonthlyRate: decimal.RequireFromString("0.02"), TermMonths: 0, StartDate: date(2025, 1, 15)}},
		{name: "no start date", terms: domain.ContractTerms{Principal: decimal.NewFromInt(100), MonthlyRate: decimal.RequireFromString("0.02"), TermMonths: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Generate(tt.terms)
			assert.Nil(t, events)
			assert.True(t, errors.Is(err, customError.ErrInvalidTerms))
		})
	}
}

func TestCommissions(t *testing.T) {
	terms := exampleTerms()

	consultant, leader, err := Commissions(terms, decimal.RequireFromString("0.0015"), decimal.RequireFromString("0.001"))
	require.NoError(t, err)
	require.Len(t, consultant, 3)
	require.Len(t, leader, 3)

	assert.Equal(t, date(2025, 2, 1), consultant[0].DueDate)
	assert.Equal(t, date(2025, 4, 1), consultant[2].DueDate)
	assert.True(t, consultant[0].Amount.Equal(decimal.NewFromInt(15))) // 10,000 * 0.15%
	assert.True(t, leader[0].Amount.Equal(decimal.NewFromInt(10)))     // 10,000 * 0.10%
	assert.Equal(t, domain.BeneficiaryLeader, leader[1].Beneficiary)
	assert.Equal(t, 2, leader[1].Index)
}

func TestCommissions_ZeroRatesSkipped(t *testing.T) {
	consultant, leader, err := Commissions(exampleTerms(), decimal.RequireFromString("0.002"), decimal.Zero)
	require.NoError(t, err)
	assert.Len(t, consultant, 3)
	assert.Empty(t, leader)
}

func TestSummarize(t *testing.T) {
	terms := exampleTerms()
	events, err := Generate(terms)
	require.NoError(t, err)

	summary := Summarize(terms, events)
	assert.True(t, summary.MonthlyYield.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.TotalYield.Equal(decimal.NewFromInt(600)))
	assert.True(t, summary.YieldPercent.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, date(2025, 2, 15), summary.FirstPaymentDate)
	assert.Equal(t, date(2025, 4, 15), summary.LastPaymentDate)
	assert.Equal(t, date(2025, 4, 15), summary.EndDate)
}

func TestDueBetween(t *testing.T) {
	events, err := Generate(exampleTerms())
	require.NoError(t, err)

	due := DueBetween(events, date(2025, 4, 13), date(2025, 4, 16))
	require.Len(t, due, 2)
	assert.Equal(t, 3, due[0].Index)
	assert.Equal(t, 4, due[1].Index)

	assert.Empty(t, DueBetween(events, date(2025, 4, 16), date(2025, 4, 13)))

	// the contribution is never reminded even on its own date
	assert.Empty(t, DueBetween(events, date(2025, 1, 15), date(2025, 1, 15)))
}
