package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/logger"
	"github.com/segyhp/placement-engine/internal/mocks"
	"github.com/segyhp/placement-engine/internal/notify"
	"github.com/segyhp/placement-engine/internal/repository"
	customError "github.com/segyhp/placement-engine/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReminderService(contracts repository.ContractRepository, cache repository.CacheRepository, sender *mocks.MockSender) *ReminderService {
	return NewReminderService(contracts, cache, notify.NewDispatcher(sender, logger.Discard()), 3, logger.Discard())
}

func TestSendUpcomingReminders(t *testing.T) {
	broken := *activeContract("c-broken")
	broken.StartDate = nil
	draft := *activeContract("c-draft")
	draft.Status = domain.ContractStatusDraft

	contracts := repository.NewContractRepositoryMemory(*activeContract("c-1"), broken, draft)
	cache := repository.NewMemoryCache()
	sender := &mocks.MockSender{}
	sender.On("Send", mock.Anything, "investor-1", "Pagamento Próximo",
		"O pagamento de rendimento do contrato CT-0042 no valor de R$ 200,00 está previsto para 15/02/2025.").Return(nil).Once()

	service := newReminderService(contracts, cache, sender)
	now := time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC)

	sent, err := service.SendUpcomingReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// the same installment is not reminded twice
	sent, err = service.SendUpcomingReminders(context.Background(), now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	sender.AssertExpectations(t)
}

func TestSendUpcomingReminders_LastMonth(t *testing.T) {
	contracts := repository.NewContractRepositoryMemory(*activeContract("c-1"))
	sender := &mocks.MockSender{}
	sender.On("Send", mock.Anything, "investor-1", "Pagamento Próximo", mock.Anything).Return(nil)

	service := newReminderService(contracts, repository.NewMemoryCache(), sender)

	// the last yield and the principal return share a due date
	sent, err := service.SendUpcomingReminders(context.Background(), time.Date(2025, 4, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestSendUpcomingReminders_NothingDue(t *testing.T) {
	contracts := repository.NewContractRepositoryMemory(*activeContract("c-1"))
	sender := &mocks.MockSender{}

	service := newReminderService(contracts, repository.NewMemoryCache(), sender)

	sent, err := service.SendUpcomingReminders(context.Background(), time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendUpcomingReminders_DeliveryFailure(t *testing.T) {
	contracts := repository.NewContractRepositoryMemory(*activeContract("c-1"))
	sender := &mocks.MockSender{}
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("unavailable"))

	service := newReminderService(contracts, repository.NewMemoryCache(), sender)

	sent, err := service.SendUpcomingReminders(context.Background(), time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendUpcomingReminders_CacheFailureSkipsInstallment(t *testing.T) {
	contracts := repository.NewContractRepositoryMemory(*activeContract("c-1"))
	cache := &mocks.MockCacheRepository{}
	cache.On("MarkOnce", mock.Anything, "reminder:c-1:1", 5*24*time.Hour).Return(false, errors.New("redis down"))
	sender := &mocks.MockSender{}

	service := newReminderService(contracts, cache, sender)

	sent, err := service.SendUpcomingReminders(context.Background(), time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, sent)
	cache.AssertExpectations(t)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendUpcomingReminders_RepositoryFailure(t *testing.T) {
	contracts := &mocks.MockContractRepository{}
	contracts.On("ListByStatus", mock.Anything, domain.ContractStatusActive).Return(nil, errors.New("timeout"))

	service := newReminderService(contracts, repository.NewMemoryCache(), &mocks.MockSender{})

	_, err := service.SendUpcomingReminders(context.Background(), time.Now())
	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
}
