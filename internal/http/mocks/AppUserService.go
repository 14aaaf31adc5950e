package mocks

import (
	context "context"

	model "user-group-app/internal/model"

	mock "github.com/stretchr/testify/mock"
)

// AppUserService is a mock type for the AppUserService type
type AppUserService struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, sort
func (_m *AppUserService) List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error) {
	ret := _m.Called(ctx, sort)

	var r0 []model.AppUser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.AppUser)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *AppUserService) Get(ctx context.Context, id int64) (model.AppUser, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, u
func (_m *AppUserService) Create(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	ret := _m.Called(ctx, u)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, id, u
func (_m *AppUserService) Update(ctx context.Context, id int64, u model.AppUser) (model.AppUser, error) {
	ret := _m.Called(ctx, id, u)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// Patch provides a mock function with given fields: ctx, id, u
func (_m *AppUserService) Patch(ctx context.Context, id int64, u model.AppUser) (model.AppUser, error) {
	ret := _m.Called(ctx, id, u)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *AppUserService) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
