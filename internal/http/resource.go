package http

import (
	"context"
	"fmt"
	"net/http"

	"user-group-app/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type entity interface {
	EntityID() int64
}

// crudService обобщает AppUserService и UserGroupService.
type crudService[T entity] interface {
	List(ctx context.Context, sort *model.Sort) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, id int64, e T) (T, error)
	Patch(ctx context.Context, id int64, e T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// resource описывает REST-ресурс одной сущности: /api/<path> и /api/<path>/{id}.
type resource[T entity] struct {
	name string
	path string
	svc  crudService[T]
}

func newAppUserResource(svc AppUserService) *resource[model.AppUser] {
	return &resource[model.AppUser]{name: "app_user", path: "/api/app-users", svc: svc}
}

func newUserGroupResource(svc UserGroupService) *resource[model.UserGroup] {
	return &resource[model.UserGroup]{name: "user_group", path: "/api/user-groups", svc: svc}
}

func mountResource[T entity](r chi.Router, res *resource[T]) {
	r.Get("/", res.handleList)
	r.Post("/", res.handleCreate)
	r.Get("/{id}", res.handleGet)
	r.Put("/{id}", res.handleUpdate)
	r.With(middleware.AllowContentType("application/json", "application/merge-patch+json")).
		Patch("/{id}", res.handlePatch)
	r.Delete("/{id}", res.handleDelete)
}

func (res *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	handlerName := res.name + "_list"

	sort, err := ValidateSortQuery(r)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	items, err := res.svc.List(r.Context(), sort)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (res *resource[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	handlerName := res.name + "_get"

	id, err := ValidatePathID(r)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	item, err := res.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res *resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	handlerName := res.name + "_create"

	var req T
	if err := DecodeBody(r, &req); err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	created, err := res.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", res.path, created.EntityID()))
	writeJSON(w, http.StatusCreated, created)
}

func (res *resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	res.handleWrite(w, r, res.name+"_update", res.svc.Update)
}

func (res *resource[T]) handlePatch(w http.ResponseWriter, r *http.Request) {
	res.handleWrite(w, r, res.name+"_patch", res.svc.Patch)
}

func (res *resource[T]) handleWrite(w http.ResponseWriter, r *http.Request, handlerName string, write func(context.Context, int64, T) (T, error)) {
	id, err := ValidatePathID(r)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	var req T
	if err := DecodeBody(r, &req); err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	updated, err := write(r.Context(), id, req)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (res *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	handlerName := res.name + "_delete"

	id, err := ValidatePathID(r)
	if err != nil {
		writeError(w, r, handlerName, err)
		return
	}

	if err := res.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, handlerName, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
