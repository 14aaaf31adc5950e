// Package service содержит бизнес-правила REST-бэкенда для AppUser и UserGroup:
// проверки идентификаторов и обязательных полей, частичное обновление, события.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"user-group-app/internal/events"
	"user-group-app/internal/repository"

	"github.com/rs/zerolog"
)

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// checkWriteID проверяет идентификатор в теле PUT/PATCH против идентификатора из пути.
func checkWriteID(pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return ErrAlert(CodeIDNull, "Invalid id")
	}
	if *bodyID != pathID {
		return ErrAlert(CodeIDInvalid, "Invalid ID")
	}
	return nil
}

func checkRequired(entity string, missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return ErrBadRequest(fmt.Sprintf("%s: %s must not be null", entity, strings.Join(missing, ", ")))
}

func mapSortError(err error) error {
	if errors.Is(err, repository.ErrUnknownSortField) {
		return ErrBadRequest(err.Error())
	}
	return nil
}

// publish отправляет событие; сбой брокера не отменяет уже выполненную запись.
func publish(ctx context.Context, p events.Publisher, entity string, action events.Action, id int64) {
	if err := p.Publish(ctx, events.EntityEvent{Entity: entity, Action: action, ID: id}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("entity", entity).
			Str("action", string(action)).
			Int64("id", id).
			Msg("failed to publish entity event")
	}
}
