package service

import (
	"context"
	"errors"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/repository"
	"github.com/segyhp/placement-engine/internal/schedule"
	customError "github.com/segyhp/placement-engine/pkg/errors"
	"github.com/segyhp/placement-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

type ScheduleService struct {
	ContractRepo repository.ContractRepository
}

func NewScheduleService(contractRepo repository.ContractRepository) *ScheduleService {
	return &ScheduleService{
		ContractRepo: contractRepo,
	}
}

// GetContractSchedule projects the installments and commissions of a stored contract
func (s *ScheduleService) GetContractSchedule(ctx context.Context, contractID string) (*domain.ScheduleResponse, error) {
	contract, err := s.ContractRepo.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customError.WrapContractNotFound(contractID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	terms, err := contract.Terms()
	if err != nil {
		return nil, err
	}
	terms.StartDate = utils.DateOnly(terms.StartDate)

	projection, err := project(terms, contract.ConsultantRate, contract.LeaderRate)
	if err != nil {
		return nil, err
	}
	projection.ContractID = contract.ID

	return projection, nil
}

// Simulate projects a schedule from raw terms, nothing is stored
func (s *ScheduleService) Simulate(request *domain.SimulationRequest) (*domain.ScheduleResponse, error) {
	startDate, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidTerms("startDate must be formatted as YYYY-MM-DD")
	}

	terms := domain.ContractTerms{
		Principal:   request.Principal,
		MonthlyRate: request.MonthlyRate,
		TermMonths:  request.TermMonths,
		StartDate:   startDate,
	}

	return project(terms, request.ConsultantRate, request.LeaderRate)
}

func project(terms domain.ContractTerms, consultantRate, leaderRate decimal.Decimal) (*domain.ScheduleResponse, error) {
	events, err := schedule.Generate(terms)
	if err != nil {
		return nil, err
	}

	consultant, leader, err := schedule.Commissions(terms, consultantRate, leaderRate)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleResponse{
		Schedule:              events,
		Summary:               schedule.Summarize(terms, events),
		ConsultantCommissions: consultant,
		LeaderCommissions:     leader,
	}, nil
}
