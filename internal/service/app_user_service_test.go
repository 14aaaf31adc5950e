package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"user-group-app/internal/events"
	"user-group-app/internal/model"
	"user-group-app/internal/repository"
	"user-group-app/internal/service"
	"user-group-app/internal/service/mocks"
)

func sampleAppUser() model.AppUser {
	return model.AppUser{
		ExternalUserID: model.Ptr("lest"),
		Username:       model.Ptr("patiently yet expatiate"),
		FirstName:      model.Ptr("Kaley"),
		LastName:       model.Ptr("Gleichner"),
		Email:          model.Ptr("Eva_Howe54@yahoo.com"),
	}
}

func passThroughTx(tm *mocks.TransactionManager) {
	tm.On("RunInTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestAppUserService_Create(t *testing.T) {
	withID := sampleAppUser()
	withID.ID = model.Ptr(int64(7))

	missingEmail := sampleAppUser()
	missingEmail.Email = nil

	tests := []struct {
		name       string
		input      model.AppUser
		setupMocks func(repo *mocks.AppUserRepository, pub *mocks.Publisher)
		wantCode   string
	}{
		{
			name:  "Success",
			input: sampleAppUser(),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {
				repo.On("Create", mock.Anything, sampleAppUser()).
					Return(func(_ context.Context, u model.AppUser) model.AppUser {
						u.ID = model.Ptr(int64(1))
						return u
					}, nil)
				pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev events.EntityEvent) bool {
					return ev.Entity == events.EntityAppUser && ev.Action == events.ActionCreate && ev.ID == 1
				})).Return(nil)
			},
		},
		{
			name:       "Fail: id already set",
			input:      withID,
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {},
			wantCode:   service.CodeIDExists,
		},
		{
			name:       "Fail: required field missing",
			input:      missingEmail,
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {},
			wantCode:   "BAD_REQUEST",
		},
		{
			name:  "Fail: storage error",
			input: sampleAppUser(),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {
				repo.On("Create", mock.Anything, mock.Anything).Return(model.AppUser{}, errors.New("db down"))
			},
			wantCode: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.AppUserRepository)
			tm := new(mocks.TransactionManager)
			pub := new(mocks.Publisher)
			tt.setupMocks(repo, pub)

			svc := service.NewAppUserService(repo, tm, pub)
			got, err := svc.Create(context.Background(), tt.input)

			if tt.wantCode != "" {
				var appErr *service.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), got.EntityID())
				assert.Equal(t, "Kaley", *got.FirstName)
			}

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestAppUserService_Update(t *testing.T) {
	withID := func(id int64) model.AppUser {
		u := sampleAppUser()
		u.ID = model.Ptr(id)
		return u
	}

	tests := []struct {
		name       string
		pathID     int64
		input      model.AppUser
		setupMocks func(repo *mocks.AppUserRepository, pub *mocks.Publisher)
		wantCode   string
		wantStatus int
	}{
		{
			name:   "Success",
			pathID: 3,
			input:  withID(3),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {
				repo.On("Exists", mock.Anything, int64(3)).Return(true, nil)
				repo.On("Update", mock.Anything, withID(3)).Return(withID(3), nil)
				pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:       "Fail: id null",
			pathID:     3,
			input:      sampleAppUser(),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {},
			wantCode:   service.CodeIDNull,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Fail: id mismatch",
			pathID:     3,
			input:      withID(4),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {},
			wantCode:   service.CodeIDInvalid,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Fail: not found",
			pathID: 3,
			input:  withID(3),
			setupMocks: func(repo *mocks.AppUserRepository, pub *mocks.Publisher) {
				repo.On("Exists", mock.Anything, int64(3)).Return(false, nil)
			},
			wantCode:   service.CodeIDNotFound,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.AppUserRepository)
			tm := new(mocks.TransactionManager)
			pub := new(mocks.Publisher)
			tt.setupMocks(repo, pub)

			svc := service.NewAppUserService(repo, tm, pub)
			_, err := svc.Update(context.Background(), tt.pathID, tt.input)

			if tt.wantCode != "" {
				var appErr *service.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.Equal(t, tt.wantStatus, appErr.Status)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestAppUserService_Patch(t *testing.T) {
	existing := sampleAppUser()
	existing.ID = model.Ptr(int64(5))

	t.Run("Success: only non-null fields are merged", func(t *testing.T) {
		repo := new(mocks.AppUserRepository)
		tm := new(mocks.TransactionManager)
		pub := new(mocks.Publisher)
		passThroughTx(tm)

		patch := model.AppUser{ID: model.Ptr(int64(5)), FirstName: model.Ptr("Kaylee")}

		repo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
		repo.On("GetForUpdate", mock.Anything, int64(5)).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u model.AppUser) bool {
			return *u.FirstName == "Kaylee" && *u.LastName == "Gleichner" && *u.Email == "Eva_Howe54@yahoo.com"
		})).Return(func(_ context.Context, u model.AppUser) model.AppUser { return u }, nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev events.EntityEvent) bool {
			return ev.Action == events.ActionPatch && ev.ID == 5
		})).Return(nil)

		svc := service.NewAppUserService(repo, tm, pub)
		got, err := svc.Patch(context.Background(), 5, patch)

		require.NoError(t, err)
		assert.Equal(t, "Kaylee", *got.FirstName)
		assert.Equal(t, "lest", *got.ExternalUserID)
		repo.AssertExpectations(t)
		tm.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("Fail: row vanished inside transaction", func(t *testing.T) {
		repo := new(mocks.AppUserRepository)
		tm := new(mocks.TransactionManager)
		pub := new(mocks.Publisher)
		passThroughTx(tm)

		repo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
		repo.On("GetForUpdate", mock.Anything, int64(5)).Return(model.AppUser{}, repository.ErrAppUserNotFound)

		svc := service.NewAppUserService(repo, tm, pub)
		_, err := svc.Patch(context.Background(), 5, model.AppUser{ID: model.Ptr(int64(5))})

		assert.True(t, service.IsNotFound(err))
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestAppUserService_GetAndList(t *testing.T) {
	repo := new(mocks.AppUserRepository)
	pub := new(mocks.Publisher)
	svc := service.NewAppUserService(repo, new(mocks.TransactionManager), pub)

	repo.On("Get", mock.Anything, int64(99)).Return(model.AppUser{}, repository.ErrAppUserNotFound)
	_, err := svc.Get(context.Background(), 99)
	assert.True(t, service.IsNotFound(err))

	sort := &model.Sort{Field: "nope", Order: model.ASC}
	repo.On("List", mock.Anything, sort).Return(nil, repository.ErrUnknownSortField)
	_, err = svc.List(context.Background(), sort)
	var appErr *service.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestAppUserService_Delete(t *testing.T) {
	repo := new(mocks.AppUserRepository)
	pub := new(mocks.Publisher)
	svc := service.NewAppUserService(repo, new(mocks.TransactionManager), pub)

	repo.On("Delete", mock.Anything, int64(8)).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	// сбой публикации не влияет на результат удаления
	assert.NoError(t, svc.Delete(context.Background(), 8))
	repo.AssertExpectations(t)
}
