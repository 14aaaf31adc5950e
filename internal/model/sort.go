package model

import (
	"fmt"
	"strings"
)

// SortOrder задаёт направление сортировки.
type SortOrder string

const (
	// ASC сортирует по возрастанию.
	ASC SortOrder = "asc"
	// DESC сортирует по убыванию.
	DESC SortOrder = "desc"
)

// Sort описывает параметр сортировки списка в форме "field,dir".
type Sort struct {
	Field string
	Order SortOrder
}

// ParseSort разбирает значение query-параметра sort.
// По умолчанию направление ASC.
func ParseSort(raw string) (*Sort, error) {
	if raw == "" {
		return nil, nil
	}
	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, fmt.Errorf("sort field is empty in %q", raw)
	}

	s := &Sort{Field: field, Order: ASC}
	switch SortOrder(strings.ToLower(strings.TrimSpace(dir))) {
	case "", ASC:
	case DESC:
		s.Order = DESC
	default:
		return nil, fmt.Errorf("unknown sort direction %q", dir)
	}
	return s, nil
}

// String возвращает wire-представление "field,dir".
func (s Sort) String() string {
	order := s.Order
	if order == "" {
		order = ASC
	}
	return s.Field + "," + string(order)
}
