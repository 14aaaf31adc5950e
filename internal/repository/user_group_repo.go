package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-group-app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var userGroupColumns = map[string]string{
	"id":         "g.id",
	"name":       "g.name",
	"appUser":    "g.app_user_id",
	"appUser.id": "g.app_user_id",
}

const userGroupSelect = `
SELECT g.id, g.name,
       u.id, u.external_user_id, u.username, u.first_name, u.last_name, u.email, u.registered_date, u.last_login_date
FROM user_group g
LEFT JOIN app_user u ON u.id = g.app_user_id
`

// SQLSTATE нарушения внешнего ключа.
const pgForeignKeyViolation = "23503"

// UserGroupRepo реализует репозиторий групп на базе PostgreSQL.
type UserGroupRepo struct {
	db *Postgres
}

// NewUserGroupRepo создаёт новый экземпляр UserGroupRepo c переданным подключением к PostgreSQL.
func NewUserGroupRepo(db *Postgres) *UserGroupRepo {
	return &UserGroupRepo{db: db}
}

// List возвращает все группы вместе со связанными пользователями.
func (r *UserGroupRepo) List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error) {
	order, err := orderBy(sort, userGroupColumns, "g.id")
	if err != nil {
		return nil, err
	}

	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, userGroupSelect+order)
	if err != nil {
		return nil, fmt.Errorf("query user groups: %w", err)
	}
	defer rows.Close()

	groups := make([]model.UserGroup, 0)
	for rows.Next() {
		g, err := scanUserGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return groups, nil
}

// Get возвращает группу по id. Если группа не найдена, возвращает ErrUserGroupNotFound.
func (r *UserGroupRepo) Get(ctx context.Context, id int64) (model.UserGroup, error) {
	return r.get(ctx, userGroupSelect+"WHERE g.id = $1", id)
}

// GetForUpdate работает как Get, но блокирует строку группы до конца транзакции.
func (r *UserGroupRepo) GetForUpdate(ctx context.Context, id int64) (model.UserGroup, error) {
	return r.get(ctx, userGroupSelect+"WHERE g.id = $1 FOR UPDATE OF g", id)
}

func (r *UserGroupRepo) get(ctx context.Context, query string, id int64) (model.UserGroup, error) {
	q := r.db.GetQueryExecutor(ctx)
	g, err := scanUserGroup(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserGroup{}, ErrUserGroupNotFound
		}
		return model.UserGroup{}, fmt.Errorf("get user group: %w", err)
	}
	return g, nil
}

// Exists проверяет наличие группы с данным id.
func (r *UserGroupRepo) Exists(ctx context.Context, id int64) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_group WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user group: %w", err)
	}
	return exists, nil
}

// Create сохраняет новую группу и возвращает её вместе со связанным пользователем.
// Ссылка на несуществующего пользователя даёт ErrAppUserRefNotFound.
func (r *UserGroupRepo) Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	q := r.db.GetQueryExecutor(ctx)

	var id int64
	err := q.QueryRow(ctx, `
INSERT INTO user_group (name, app_user_id)
VALUES ($1, $2)
RETURNING id
`, g.Name, appUserRef(g)).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.UserGroup{}, ErrAppUserRefNotFound
		}
		return model.UserGroup{}, fmt.Errorf("insert user group: %w", err)
	}

	return r.Get(ctx, id)
}

// Update полностью заменяет поля группы. Если группа не найдена, возвращает ErrUserGroupNotFound.
func (r *UserGroupRepo) Update(ctx context.Context, g model.UserGroup) (model.UserGroup, error) {
	q := r.db.GetQueryExecutor(ctx)

	tag, err := q.Exec(ctx, `
UPDATE user_group
SET name = $2,
    app_user_id = $3
WHERE id = $1
`, g.EntityID(), g.Name, appUserRef(g))
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.UserGroup{}, ErrAppUserRefNotFound
		}
		return model.UserGroup{}, fmt.Errorf("update user group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.UserGroup{}, ErrUserGroupNotFound
	}

	return r.Get(ctx, g.EntityID())
}

// Delete удаляет группу. Отсутствие строки ошибкой не считается.
func (r *UserGroupRepo) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQueryExecutor(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM user_group WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user group: %w", err)
	}
	return nil
}

func appUserRef(g model.UserGroup) *int64 {
	if id, ok := g.AppUserID(); ok {
		return &id
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

func scanUserGroup(row pgx.Row) (model.UserGroup, error) {
	var g model.UserGroup
	var id int64

	var userID *int64
	var externalUserID, username, firstName, lastName, email *string
	var registeredDate, lastLoginDate *time.Time

	if err := row.Scan(&id, &g.Name,
		&userID, &externalUserID, &username, &firstName, &lastName, &email, &registeredDate, &lastLoginDate,
	); err != nil {
		return model.UserGroup{}, err
	}
	g.ID = &id

	if userID != nil {
		g.AppUser = &model.AppUser{
			ID:             userID,
			ExternalUserID: externalUserID,
			Username:       username,
			FirstName:      firstName,
			LastName:       lastName,
			Email:          email,
			RegisteredDate: registeredDate,
			LastLoginDate:  lastLoginDate,
		}
	}
	return g, nil
}
