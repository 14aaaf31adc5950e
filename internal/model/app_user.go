// Package model содержит доменные структуры AppUser и UserGroup.
package model

import "time"

// AppUser описывает пользователя приложения.
// Все поля опциональны на уровне wire-формата: nil не попадает в JSON.
type AppUser struct {
	ID             *int64     `json:"id,omitempty"`
	ExternalUserID *string    `json:"externalUserId,omitempty"`
	Username       *string    `json:"username,omitempty"`
	FirstName      *string    `json:"firstName,omitempty"`
	LastName       *string    `json:"lastName,omitempty"`
	Email          *string    `json:"email,omitempty"`
	RegisteredDate *time.Time `json:"registeredDate,omitempty"`
	LastLoginDate  *time.Time `json:"lastLoginDate,omitempty"`
}

// EntityID возвращает идентификатор или 0, если он не назначен.
func (u AppUser) EntityID() int64 {
	return derefID(u.ID)
}

// SortValue возвращает значение поля по его JSON-имени для сортировки на клиенте.
func (u AppUser) SortValue(field string) (any, bool) {
	switch field {
	case "id":
		return optional(u.ID), true
	case "externalUserId":
		return optional(u.ExternalUserID), true
	case "username":
		return optional(u.Username), true
	case "firstName":
		return optional(u.FirstName), true
	case "lastName":
		return optional(u.LastName), true
	case "email":
		return optional(u.Email), true
	case "registeredDate":
		return optional(u.RegisteredDate), true
	case "lastLoginDate":
		return optional(u.LastLoginDate), true
	}
	return nil, false
}

// MissingRequired возвращает JSON-имена незаполненных обязательных полей.
func (u AppUser) MissingRequired() []string {
	var missing []string
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"externalUserId", u.ExternalUserID},
		{"username", u.Username},
		{"firstName", u.FirstName},
		{"lastName", u.LastName},
		{"email", u.Email},
	} {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// MergeFrom переносит в u все не-nil поля patch (семантика PATCH).
func (u *AppUser) MergeFrom(patch AppUser) {
	if patch.ExternalUserID != nil {
		u.ExternalUserID = patch.ExternalUserID
	}
	if patch.Username != nil {
		u.Username = patch.Username
	}
	if patch.FirstName != nil {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = patch.LastName
	}
	if patch.Email != nil {
		u.Email = patch.Email
	}
	if patch.RegisteredDate != nil {
		u.RegisteredDate = patch.RegisteredDate
	}
	if patch.LastLoginDate != nil {
		u.LastLoginDate = patch.LastLoginDate
	}
}
