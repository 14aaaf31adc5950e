package service

import (
	"context"
	"errors"

	"user-group-app/internal/events"
	"user-group-app/internal/model"
	"user-group-app/internal/repository"
)

// UserGroupRepository описывает контракт репозитория групп для бизнес-слоя.
type UserGroupRepository interface {
	List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error)
	Get(ctx context.Context, id int64) (model.UserGroup, error)
	GetForUpdate(ctx context.Context, id int64) (model.UserGroup, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error)
	Update(ctx context.Context, g model.UserGroup) (model.UserGroup, error)
	Delete(ctx context.Context, id int64) error
}

// UserGroupService содержит бизнес-логику CRUD над группами.
// Ссылка на AppUser проверяется внешним ключом в БД.
type UserGroupService struct {
	repo      UserGroupRepository
	txManager TransactionManager
	events    events.Publisher
}

// NewUserGroupService создаёт новый сервис для операций над группами.
func NewUserGroupService(repo UserGroupRepository, txManager TransactionManager, publisher events.Publisher) *UserGroupService {
	return &UserGroupService{
		repo:      repo,
		txManager: txManager,
		events:    publisher,
	}
}

// List возвращает все группы; sort может быть nil.
func (s *UserGroupService) List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error) {
	groups, err := s.repo.List(ctx, sort)
	if err != nil {
		if appErr := mapSortError(err); appErr != nil {
			return nil, appErr
		}
		return nil, ErrInternal("failed to list user groups", err)
	}
	return groups, nil
}

// Get возвращает группу по id.
func (s *UserGroupService) Get(ctx context.Context, id int64) (model.UserGroup, error) {
	g, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserGroupNotFound) {
			return model.UserGroup{}, ErrNotFound("user group not found")
		}
		return model.UserGroup{}, ErrInternal("failed to get user group", err)
	}
	return g, nil
}

// Create создаёт группу. Новая группа не может уже иметь id.
func (s *UserGroupService) Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	if g.ID != nil {
		return model.UserGroup{}, ErrAlert(CodeIDExists, "A new userGroup cannot already have an ID")
	}
	if err := checkRequired("userGroup", g.MissingRequired()); err != nil {
		return model.UserGroup{}, err
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return model.UserGroup{}, mapGroupWriteError("failed to create user group", err)
	}

	publish(ctx, s.events, events.EntityUserGroup, events.ActionCreate, created.EntityID())
	return created, nil
}

// Update полностью заменяет группу с идентификатором id.
func (s *UserGroupService) Update(ctx context.Context, id int64, g model.UserGroup) (model.UserGroup, error) {
	if err := checkWriteID(id, g.ID); err != nil {
		return model.UserGroup{}, err
	}
	if err := checkRequired("userGroup", g.MissingRequired()); err != nil {
		return model.UserGroup{}, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return model.UserGroup{}, err
	}

	updated, err := s.repo.Update(ctx, g)
	if err != nil {
		if errors.Is(err, repository.ErrUserGroupNotFound) {
			return model.UserGroup{}, ErrAlert(CodeIDNotFound, "Entity not found")
		}
		return model.UserGroup{}, mapGroupWriteError("failed to update user group", err)
	}

	publish(ctx, s.events, events.EntityUserGroup, events.ActionUpdate, id)
	return updated, nil
}

// Patch переносит не-nil поля patch на существующую группу в одной транзакции.
func (s *UserGroupService) Patch(ctx context.Context, id int64, patch model.UserGroup) (model.UserGroup, error) {
	if err := checkWriteID(id, patch.ID); err != nil {
		return model.UserGroup{}, err
	}
	if err := s.ensureExists(ctx, id); err != nil {
		return model.UserGroup{}, err
	}

	var result model.UserGroup
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
		if errors.Is(err, repository.ErrUserGroupNotFound) {
			return model.UserGroup{}, ErrNotFound("user group not found")
		}
		return model.UserGroup{}, mapGroupWriteError("failed to patch user group", err)
	}

	publish(ctx, s.events, events.EntityUserGroup, events.ActionPatch, id)
	return result, nil
}

// Delete удаляет группу; удаление отсутствующей не ошибка.
func (s *UserGroupService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrInternal("failed to delete user group", err)
	}

	publish(ctx, s.events, events.EntityUserGroup, events.ActionDelete, id)
	return nil
}

func (s *UserGroupService) ensureExists(ctx context.Context, id int64) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return ErrInternal("failed to check user group", err)
	}
	if !ok {
		return ErrAlert(CodeIDNotFound, "Entity not found")
	}
	return nil
}

func mapGroupWriteError(msg string, err error) error {
	if errors.Is(err, repository.ErrAppUserRefNotFound) {
		return ErrAlert(CodeAppUserMissing, "referenced appUser does not exist")
	}
	return ErrInternal(msg, err)
}
