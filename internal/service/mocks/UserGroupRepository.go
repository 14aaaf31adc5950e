package mocks

import (
	context "context"

	model "user-group-app/internal/model"

	mock "github.com/stretchr/testify/mock"
)

// UserGroupRepository is a mock type for the UserGroupRepository type
type UserGroupRepository struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, sort
func (_m *UserGroupRepository) List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error) {
	ret := _m.Called(ctx, sort)

	var r0 []model.UserGroup
	if rf, ok := ret.Get(0).(func(context.Context, *model.Sort) []model.UserGroup); ok {
		r0 = rf(ctx, sort)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.UserGroup)
	}

	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *UserGroupRepository) Get(ctx context.Context, id int64) (model.UserGroup, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// GetForUpdate provides a mock function with given fields: ctx, id
func (_m *UserGroupRepository) GetForUpdate(ctx context.Context, id int64) (model.UserGroup, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// Exists provides a mock function with given fields: ctx, id
func (_m *UserGroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, g
func (_m *UserGroupRepository) Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	ret := _m.Called(ctx, g)

	var r0 model.UserGroup
	if rf, ok := ret.Get(0).(func(context.Context, model.UserGroup) model.UserGroup); ok {
		r0 = rf(ctx, g)
	} else {
		r0 = ret.Get(0).(model.UserGroup)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, g
func (_m *UserGroupRepository) Update(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	ret := _m.Called(ctx, g)

	var r0 model.UserGroup
	if rf, ok := ret.Get(0).(func(context.Context, model.UserGroup) model.UserGroup); ok {
		r0 = rf(ctx, g)
	} else {
		r0 = ret.Get(0).(model.UserGroup)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *UserGroupRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
