package mocks

import (
	context "context"

	events "user-group-app/internal/events"

	mock "github.com/stretchr/testify/mock"
)

// Publisher is a mock type for the Publisher type
type Publisher struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, ev
func (_m *Publisher) Publish(ctx context.Context, ev events.EntityEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

// Close provides a mock function with given fields:
func (_m *Publisher) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}
