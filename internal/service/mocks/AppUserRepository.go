package mocks

import (
	context "context"

	model "user-group-app/internal/model"

	mock "github.com/stretchr/testify/mock"
)

// AppUserRepository is a mock type for the AppUserRepository type
type AppUserRepository struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, sort
func (_m *AppUserRepository) List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error) {
	ret := _m.Called(ctx, sort)

	var r0 []model.AppUser
	if rf, ok := ret.Get(0).(func(context.Context, *model.Sort) []model.AppUser); ok {
		r0 = rf(ctx, sort)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.AppUser)
	}

	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *AppUserRepository) Get(ctx context.Context, id int64) (model.AppUser, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// GetForUpdate provides a mock function with given fields: ctx, id
func (_m *AppUserRepository) GetForUpdate(ctx context.Context, id int64) (model.AppUser, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.AppUser), ret.Error(1)
}

// Exists provides a mock function with given fields: ctx, id
func (_m *AppUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, u
func (_m *AppUserRepository) Create(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	ret := _m.Called(ctx, u)

	var r0 model.AppUser
	if rf, ok := ret.Get(0).(func(context.Context, model.AppUser) model.AppUser); ok {
		r0 = rf(ctx, u)
	} else {
		r0 = ret.Get(0).(model.AppUser)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, u
func (_m *AppUserRepository) Update(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	ret := _m.Called(ctx, u)

	var r0 model.AppUser
	if rf, ok := ret.Get(0).(func(context.Context, model.AppUser) model.AppUser); ok {
		r0 = rf(ctx, u)
	} else {
		r0 = ret.Get(0).(model.AppUser)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *AppUserRepository) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
