package mocks

import (
	"context"

	"math-roulette/internal/domain"
	"math-roulette/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockGameService is a mock type for the GameService type
type MockGameService struct {
	mock.Mock
}

// GetState provides a mock function with given fields: ctx
func (_m *MockGameService) GetState(ctx context.Context) (*domain.Document, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Document
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Document)
	}
	return r0, ret.Error(1)
}

// ApplyTransition provides a mock function with given fields: ctx, req
func (_m *MockGameService) ApplyTransition(ctx context.Context, req *domain.UpdateRequest) error {
	ret := _m.Called(ctx, req)
	return ret.Error(0)
}

// NewMockGameService creates a new instance of MockGameService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockGameService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGameService {
	m := &MockGameService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ service.GameService = (*MockGameService)(nil)
