package repository

import (
	"fmt"

	"user-group-app/internal/model"
)

// orderBy строит ORDER BY по белому списку колонок. Без сортировки порядок задаёт fallback.
// NULL идут первыми при ASC и последними при DESC.
func orderBy(sort *model.Sort, columns map[string]string, fallback string) (string, error) {
	if sort == nil {
		return "ORDER BY " + fallback, nil
	}
	col, ok := columns[sort.Field]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSortField, sort.Field)
	}
	dir, nulls := "ASC", "FIRST"
	if sort.Order == model.DESC {
		dir, nulls = "DESC", "LAST"
	}
	return fmt.Sprintf("ORDER BY %s %s NULLS %s, %s", col, dir, nulls, fallback), nil
}
