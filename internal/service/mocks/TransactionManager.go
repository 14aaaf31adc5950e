package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// TransactionManager is a mock type for the TransactionManager type
type TransactionManager struct {
	mock.Mock
}

// RunInTransaction provides a mock function with given fields: ctx, fn
func (_m *TransactionManager) RunInTransaction(ctx context.Context, fn func(context.Context) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(context.Context) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}
