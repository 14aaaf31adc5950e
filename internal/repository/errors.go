package repository

import "errors"

var (
	// ErrAppUserNotFound возвращается, если пользователь не найден в БД.
	ErrAppUserNotFound = errors.New("app user not found")

	// ErrUserGroupNotFound возвращается, если группа не найдена.
	ErrUserGroupNotFound = errors.New("user group not found")

	// ErrAppUserRefNotFound возвращается, если группа ссылается на несуществующего пользователя.
	ErrAppUserRefNotFound = errors.New("referenced app user not found")

	// ErrUnknownSortField возвращается при сортировке по полю вне белого списка.
	ErrUnknownSortField = errors.New("unknown sort field")
)
