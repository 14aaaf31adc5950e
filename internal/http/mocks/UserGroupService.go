package mocks

import (
	context "context"

	model "user-group-app/internal/model"

	mock "github.com/stretchr/testify/mock"
)

// UserGroupService is a mock type for the UserGroupService type
type UserGroupService struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, sort
func (_m *UserGroupService) List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error) {
	ret := _m.Called(ctx, sort)

	var r0 []model.UserGroup
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.UserGroup)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *UserGroupService) Get(ctx context.Context, id int64) (model.UserGroup, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, g
func (_m *UserGroupService) Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	ret := _m.Called(ctx, g)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, id, g
func (_m *UserGroupService) Update(ctx context.Context, id int64, g model.UserGroup) (model.UserGroup, error) {
	ret := _m.Called(ctx, id, g)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// Patch provides a mock function with given fields: ctx, id, g
func (_m *UserGroupService) Patch(ctx context.Context, id int64, g model.UserGroup) (model.UserGroup, error) {
	ret := _m.Called(ctx, id, g)
	return ret.Get(0).(model.UserGroup), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *UserGroupService) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
