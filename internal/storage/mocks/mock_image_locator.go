package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockImageLocator struct {
	mock.Mock
}

func (m *MockImageLocator) ImageURL(id string) string {
	args := m.Called(id)
	return args.String(0)
}

func (m *MockImageLocator) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
