package service

import (
	"context"
	"errors"

	"user-group-app/internal/events"
	"user-group-app/internal/model"
	"user-group-app/internal/repository"
)

// AppUserRepository описывает контракт репозитория пользователей для бизнес-слоя.
type AppUserRepository interface {
	List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error)
	Get(ctx context.Context, id int64) (model.AppUser, error)
	GetForUpdate(ctx context.Context, id int64) (model.AppUser, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, u model.AppUser) (model.AppUser, error)
	Update(ctx context.Context, u model.AppUser) (model.AppUser, error)
	Delete(ctx context.Context, id int64) error
}

// AppUserService содержит бизнес-логику CRUD над пользователями.
type AppUserService struct {
	repo      AppUserRepository
	txManager TransactionManager
	events    events.Publisher
}

// NewAppUserService создаёт новый сервис для операций над пользователями.
func NewAppUserService(repo AppUserRepository, txManager TransactionManager, publisher events.Publisher) *AppUserService {
	return &AppUserService{
		repo:      repo,
		txManager: txManager,
		events:    publisher,
	}
}

// List возвращает всех пользователей; sort может быть nil.
func (s *AppUserService) List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error) {
	users, err := s.repo.List(ctx, sort)
	if err != nil {
		if appErr := mapSortError(err); appErr != nil {
			return nil, appErr
		}
		return nil, ErrInternal("failed to list app users", err)
	}
	return users, nil
}

// Get возвращает пользователя по id.
func (s *AppUserService) Get(ctx context.Context, id int64) (model.AppUser, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAppUserNotFound) {
			return model.AppUser{}, ErrNotFound("app user not found")
		}
		return model.AppUser{}, ErrInternal("failed to get app user", err)
	}
	return u, nil
}

// Create создаёт пользователя. Новый пользователь не может уже иметь id.
func (s *AppUserService) Create(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	if u.ID != nil {
		return model.AppUser{}, ErrAlert(CodeIDExists, "A new appUser cannot already have an ID")
	}
	if err := checkRequired("appUser", u.MissingRequired()); err != nil {
		return model.AppUser{}, err
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return model.AppUser{}, ErrInternal("failed to create app user", err)
	}

	publish(ctx, s.events, events.EntityAppUser, events.ActionCreate, created.EntityID())
	return created, nil
}

// Update полностью заменяет пользователя с идентификатором id.
func (s *AppUserService) Update(ctx context.Context, id int64, u model.AppUser) (model.AppUser, error) {
	if err := checkWriteID(id, u.ID); err != nil {
		return model.AppUser{}, err
	}
	if err := checkRequired("appUser", u.MissingRequired()); err != nil {
		return model.AppUser{}, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return model.AppUser{}, err
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrAppUserNotFound) {
			return model.AppUser{}, ErrAlert(CodeIDNotFound, "Entity not found")
		}
		return model.AppUser{}, ErrInternal("failed to update app user", err)
	}

	publish(ctx, s.events, events.EntityAppUser, events.ActionUpdate, id)
	return updated, nil
}

// Patch переносит не-nil поля patch на существующего пользователя в одной транзакции.
func (s *AppUserService) Patch(ctx context.Context, id int64, patch model.AppUser) (model.AppUser, error) {
	if err := checkWriteID(id, patch.ID); err != nil {
		return model.AppUser{}, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return model.AppUser{}, err
	}

	var result model.AppUser
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		existing.MergeFrom(patch)

		result, err = s.repo.Update(ctx, existing)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrAppUserNotFound) {
			return model.AppUser{}, ErrNotFound("app user not found")
		}
		return model.AppUser{}, ErrInternal("failed to patch app user", err)
	}

	publish(ctx, s.events, events.EntityAppUser, events.ActionPatch, id)
	return result, nil
}

// Delete удаляет пользователя; удаление отсутствующего не ошибка.
func (s *AppUserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrInternal("failed to delete app user", err)
	}

	publish(ctx, s.events, events.EntityAppUser, events.ActionDelete, id)
	return nil
}

func (s *AppUserService) ensureExists(ctx context.Context, id int64) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return ErrInternal("failed to check app user", err)
	}
	if !ok {
		return ErrAlert(CodeIDNotFound, "Entity not found")
	}
	return nil
}
