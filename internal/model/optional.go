package model

import "time"

// Ptr возвращает указатель на копию v. Удобно для заполнения опциональных полей.
func Ptr[T any](v T) *T {
	return &v
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// optional разыменовывает указатель, nil остаётся nil (интерфейсным).
func optional[T int64 | string | time.Time](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
