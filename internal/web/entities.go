package web

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"user-group-app/internal/client"
	"user-group-app/internal/model"
)

func newAppUserVertical() *vertical[model.AppUser] {
	return &vertical[model.AppUser]{
		route:    "/app-user",
		title:    "AppUser",
		page:     "app-user",
		slice:    func(s *Store) *client.Slice[model.AppUser] { return s.AppUsers },
		fromForm: appUserFromForm,
		withID: func(u model.AppUser, id int64) model.AppUser {
			u.ID = &id
			return u
		},
	}
}

func newUserGroupVertical() *vertical[model.UserGroup] {
	return &vertical[model.UserGroup]{
		route:    "/user-group",
		title:    "UserGroup",
		page:     "user-group",
		slice:    func(s *Store) *client.Slice[model.UserGroup] { return s.UserGroups },
		fromForm: userGroupFromForm,
		withID: func(g model.UserGroup, id int64) model.UserGroup {
			g.ID = &id
			return g
		},
		prepareForm: loadAppUserOptions,
	}
}

// loadAppUserOptions заполняет выпадающий список пользователей для формы группы.
func loadAppUserOptions(ctx context.Context, store *Store, data *HTMLData) {
	if err := store.AppUsers.List(ctx, nil); err != nil {
		if data.ErrorMessage == "" {
			data.ErrorMessage = err.Error()
		}
		return
	}
	data.AppUsers = store.AppUsers.Snapshot().Entities
}

func appUserFromForm(form url.Values) (model.AppUser, error) {
	var (
		u   model.AppUser
		err error
	)
	if u.ID, err = formID(form, "id"); err != nil {
		return u, err
	}
	u.ExternalUserID = formString(form, "externalUserId")
	u.Username = formString(form, "username")
	u.FirstName = formString(form, "firstName")
	u.LastName = formString(form, "lastName")
	u.Email = formString(form, "email")
	if u.RegisteredDate, err = formDateTime(form, "registeredDate"); err != nil {
		return u, err
	}
	if u.LastLoginDate, err = formDateTime(form, "lastLoginDate"); err != nil {
		return u, err
	}
	return u, nil
}

func userGroupFromForm(form url.Values) (model.UserGroup, error) {
	var (
		g   model.UserGroup
		err error
	)
	if g.ID, err = formID(form, "id"); err != nil {
		return g, err
	}
	g.Name = formString(form, "name")

	appUserID, err := formID(form, "appUser")
	if err != nil {
		return g, err
	}
	if appUserID != nil {
		g.AppUser = &model.AppUser{ID: appUserID}
	}
	return g, nil
}

// formString возвращает nil для пустого значения: пустое поле формы не отправляется.
func formString(form url.Values, key string) *string {
	v := form.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func formID(form url.Values, key string) (*int64, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &id, nil
}

// formDateTime разбирает значение datetime-local в локальной зоне и приводит его к UTC.
func formDateTime(form url.Values, key string) (*time.Time, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(inputDateFormat, v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date and time", key)
	}
	t = t.UTC()
	return &t, nil
}
