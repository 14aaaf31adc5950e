package model

// UserGroup описывает группу пользователей.
// AppUser является невладеющей ссылкой: при записи значим только AppUser.ID.
type UserGroup struct {
	ID      *int64   `json:"id,omitempty"`
	Name    *string  `json:"name,omitempty"`
	AppUser *AppUser `json:"appUser,omitempty"`
}

// EntityID возвращает идентификатор или 0, если он не назначен.
func (g UserGroup) EntityID() int64 {
	return derefID(g.ID)
}

// AppUserID возвращает идентификатор связанного пользователя, если ссылка задана.
func (g UserGroup) AppUserID() (int64, bool) {
	if g.AppUser == nil || g.AppUser.ID == nil {
		return 0, false
	}
	return *g.AppUser.ID, true
}

// SortValue возвращает значение поля по его JSON-имени для сортировки на клиенте.
func (g UserGroup) SortValue(field string) (any, bool) {
	switch field {
	case "id":
		return optional(g.ID), true
	case "name":
		return optional(g.Name), true
	case "appUser", "appUser.id":
		if id, ok := g.AppUserID(); ok {
			return id, true
		}
		return nil, true
	}
	return nil, false
}

// MissingRequired возвращает JSON-имена незаполненных обязательных полей.
func (g UserGroup) MissingRequired() []string {
	if g.Name == nil {
		return []string{"name"}
	}
	return nil
}

// MergeFrom переносит в g все не-nil поля patch (семантика PATCH).
func (g *UserGroup) MergeFrom(patch UserGroup) {
	if patch.Name != nil {
		g.Name = patch.Name
	}
	if patch.AppUser != nil {
		g.AppUser = patch.AppUser
	}
}
