package mocks

import (
	"context"

	"math-roulette/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAIClient is a mock type for the AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, prompt, params
func (_m *MockAIClient) GenerateText(ctx context.Context, prompt string, params service.GenerationParams) (string, service.UsageInfo, error) {
	ret := _m.Called(ctx, prompt, params)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, service.GenerationParams) string); ok {
		r0 = rf(ctx, prompt, params)
	} else {
		r0 = ret.String(0)
	}

	var r1 service.UsageInfo
	if rf, ok := ret.Get(1).(func(context.Context, string, service.GenerationParams) service.UsageInfo); ok {
		r1 = rf(ctx, prompt, params)
	} else if ret.Get(1) != nil {
		r1 = ret.Get(1).(service.UsageInfo)
	}

	return r0, r1, ret.Error(2)
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAIClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.AIClient = (*MockAIClient)(nil)
