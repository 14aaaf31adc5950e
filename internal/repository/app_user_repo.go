package repository

import (
	"context"
	"errors"
	"fmt"

	"user-group-app/internal/model"

	"github.com/jackc/pgx/v5"
)

var appUserColumns = map[string]string{
	"id":             "id",
	"externalUserId": "external_user_id",
	"username":       "username",
	"firstName":      "first_name",
	"lastName":       "last_name",
	"email":          "email",
	"registeredDate": "registered_date",
	"lastLoginDate":  "last_login_date",
}

const appUserSelect = `
SELECT id, external_user_id, username, first_name, last_name, email, registered_date, last_login_date
FROM app_user
`

// AppUserRepo реализует репозиторий пользователей на базе PostgreSQL.
type AppUserRepo struct {
	db *Postgres
}

// NewAppUserRepo создаёт новый экземпляр AppUserRepo c переданным подключением к PostgreSQL.
func NewAppUserRepo(db *Postgres) *AppUserRepo {
	return &AppUserRepo{db: db}
}

// List возвращает всех пользователей, опционально отсортированных.
func (r *AppUserRepo) List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error) {
	order, err := orderBy(sort, appUserColumns, "id")
	if err != nil {
		return nil, err
	}

	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, appUserSelect+order)
	if err != nil {
		return nil, fmt.Errorf("query app users: %w", err)
	}
	defer rows.Close()

	users := make([]model.AppUser, 0)
	for rows.Next() {
		u, err := scanAppUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

// Get возвращает пользователя по id. Если пользователь не найден, возвращает ErrAppUserNotFound.
func (r *AppUserRepo) Get(ctx context.Context, id int64) (model.AppUser, error) {
	return r.get(ctx, appUserSelect+"WHERE id = $1", id)
}

// GetForUpdate работает как Get, но блокирует строку до конца текущей транзакции.
func (r *AppUserRepo) GetForUpdate(ctx context.Context, id int64) (model.AppUser, error) {
	return r.get(ctx, appUserSelect+"WHERE id = $1 FOR UPDATE", id)
}

func (r *AppUserRepo) get(ctx context.Context, query string, id int64) (model.AppUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanAppUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AppUser{}, ErrAppUserNotFound
		}
		return model.AppUser{}, fmt.Errorf("get app user: %w", err)
	}
	return u, nil
}

// Exists проверяет наличие пользователя с данным id.
func (r *AppUserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM app_user WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check app user: %w", err)
	}
	return exists, nil
}

// Create сохраняет нового пользователя; id назначает БД.
func (r *AppUserRepo) Create(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	row := q.QueryRow(ctx, `
INSERT INTO app_user (external_user_id, username, first_name, last_name, email, registered_date, last_login_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, external_user_id, username, first_name, last_name, email, registered_date, last_login_date
`, u.ExternalUserID, u.Username, u.FirstName, u.LastName, u.Email, u.RegisteredDate, u.LastLoginDate)

	created, err := scanAppUser(row)
	if err != nil {
		return model.AppUser{}, fmt.Errorf("insert app user: %w", err)
	}
	return created, nil
}

// Update полностью заменяет поля пользователя. Если пользователь не найден, возвращает ErrAppUserNotFound.
func (r *AppUserRepo) Update(ctx context.Context, u model.AppUser) (model.AppUser, error) {
	q := r.db.GetQueryExecutor(ctx)
	row := q.QueryRow(ctx, `
UPDATE app_user
SET external_user_id = $2,
    username         = $3,
    first_name       = $4,
    last_name        = $5,
    email            = $6,
    registered_date  = $7,
    last_login_date  = $8
WHERE id = $1
RETURNING id, external_user_id, username, first_name, last_name, email, registered_date, last_login_date
`, u.EntityID(), u.ExternalUserID, u.Username, u.FirstName, u.LastName, u.Email, u.RegisteredDate, u.LastLoginDate)

	updated, err := scanAppUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AppUser{}, ErrAppUserNotFound
		}
		return model.AppUser{}, fmt.Errorf("update app user: %w", err)
	}
	return updated, nil
}

// Delete удаляет пользователя. Ссылки из групп обнуляются внешним ключом (ON DELETE SET NULL).
// Отсутствие строки ошибкой не считается.
func (r *AppUserRepo) Delete(ctx context.Context, id int64) error {
	q := r.db.GetQueryExecutor(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete app user: %w", err)
	}
	return nil
}

func scanAppUser(row pgx.Row) (model.AppUser, error) {
	var u model.AppUser
	var id int64
	if err := row.Scan(&id, &u.ExternalUserID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.RegisteredDate, &u.LastLoginDate); err != nil {
		return model.AppUser{}, err
	}
	u.ID = &id
	return u, nil
}
