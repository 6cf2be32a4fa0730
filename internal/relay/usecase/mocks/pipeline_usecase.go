// Package mocks provides mock implementations for testing CLI commands.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cityops/esb-relay/internal/relay/usecase"
)

// MockPipelineUseCase is a mock implementation of usecase.UseCase for testing.
type MockPipelineUseCase struct {
	mock.Mock
}

// Run mocks the Run method of usecase.UseCase.
func (m *MockPipelineUseCase) Run(ctx context.Context) (*usecase.RunResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RunResult), args.Error(1)
}
