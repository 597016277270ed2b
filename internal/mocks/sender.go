package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, recipientID, title, body string) error {
	args := m.Called(ctx, recipientID, title, body)
	return args.Error(0)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) URL(ctx context.Context, fileReference string) (string, error) {
	args := m.Called(ctx, fileReference)
	return args.String(0), args.Error(1)
}
