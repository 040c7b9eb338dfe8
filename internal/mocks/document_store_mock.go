package mocks

import (
	"context"

	"math-roulette/internal/domain"
	"math-roulette/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock type for the DocumentStore type
type MockDocumentStore struct {
	mock.Mock
}

// Backend provides a mock function with given fields:
func (_m *MockDocumentStore) Backend() string {
	ret := _m.Called()
	return ret.String(0)
}

// Configured provides a mock function with given fields:
func (_m *MockDocumentStore) Configured() bool {
	ret := _m.Called()
	return ret.Bool(0)
}

// EnsureExists provides a mock function with given fields: ctx
func (_m *MockDocumentStore) EnsureExists(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// Load provides a mock function with given fields: ctx
func (_m *MockDocumentStore) Load(ctx context.Context) (*domain.Document, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Document
	if rf, ok := ret.Get(0).(func(context.Context) *domain.Document); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Document)
	}
	return r0, ret.Error(1)
}

// Revision provides a mock function with given fields: ctx
func (_m *MockDocumentStore) Revision(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// Save provides a mock function with given fields: ctx, doc, revision
func (_m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document, revision string) error {
	ret := _m.Called(ctx, doc, revision)
	return ret.Error(0)
}

// NewMockDocumentStore creates a new instance of MockDocumentStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDocumentStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDocumentStore {
	m := &MockDocumentStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ store.DocumentStore = (*MockDocumentStore)(nil)
