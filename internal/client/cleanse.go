package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cleanse возвращает JSON-представление v без null-полей.
// Вложенные объекты-связи без id тоже отбрасываются.
// Числа остаются json.Number, чтобы int64-идентификаторы не теряли точность.
func Cleanse(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cleanse: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("cleanse: %w", err)
	}

	for k, val := range fields {
		switch typed := val.(type) {
		case nil:
			delete(fields, k)
		case map[string]any:
			if !hasID(typed) {
				delete(fields, k)
			}
		}
	}
	return fields, nil
}

func hasID(obj map[string]any) bool {
	id, ok := obj["id"]
	if !ok || id == nil {
		return false
	}
	if s, isString := id.(string); isString && s == "" {
		return false
	}
	return true
}
