package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"user-group-app/internal/model"
	"user-group-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// ValidatePathID разбирает {id} из пути.
func ValidatePathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, service.ErrBadRequest(fmt.Sprintf("id must be an integer, got %q", raw))
	}
	return id, nil
}

// ValidateSortQuery разбирает query-параметр sort=field,dir. cacheBuster игнорируется.
func ValidateSortQuery(r *http.Request) (*model.Sort, error) {
	sort, err := model.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		return nil, service.ErrBadRequest(err.Error())
	}
	return sort, nil
}

// DecodeBody читает JSON-тело запроса в v.
func DecodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.ErrBadRequest("invalid JSON")
	}
	return nil
}
