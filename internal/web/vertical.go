package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"user-group-app/internal/client"
	"user-group-app/internal/model"

	"github.com/go-chi/chi/v5"
)

// vertical описывает страницы одной сущности: список, детали, форма и подтверждение удаления.
type vertical[T client.Entity] struct {
	route string
	title string
	page  string

	slice    func(*Store) *client.Slice[T]
	fromForm func(url.Values) (T, error)
	withID   func(T, int64) T
	// prepareForm дозагружает данные для формы, например список AppUser для выбора связи.
	prepareForm func(ctx context.Context, store *Store, data *HTMLData)
}

func mountVertical[T client.Entity](r chi.Router, app *App, v *vertical[T]) {
	h := &verticalHandler[T]{app: app, v: v}

	r.Get("/", h.index)
	r.Get("/new", h.newForm)
	r.Post("/new", h.create)
	r.Get("/{id}", h.detail)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}/edit", h.update)
	r.Get("/{id}/delete", h.confirmDelete)
	r.Post("/{id}/delete", h.remove)
}

type verticalHandler[T client.Entity] struct {
	app *App
	v   *vertical[T]
}

func (h *verticalHandler[T]) index(w http.ResponseWriter, r *http.Request) {
	slice := h.v.slice(storeFrom(r.Context()))

	sort, err := model.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		h.app.ClientError(w, http.StatusBadRequest)
		return
	}

	_ = slice.List(r.Context(), sort)
	st := slice.Snapshot()
	h.app.RenderHTML(w, r, h.v.page+".list", &HTMLData{
		Title:        h.v.title + "s",
		ErrorMessage: st.ErrorMessage,
		Sort:         sort,
		Entities:     st.Entities,
	}, http.StatusOK)
}

func (h *verticalHandler[T]) detail(w http.ResponseWriter, r *http.Request) {
	h.withEntity(w, r, ".detail")
}

func (h *verticalHandler[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	h.withEntity(w, r, ".delete")
}

func (h *verticalHandler[T]) editForm(w http.ResponseWriter, r *http.Request) {
	h.withEntity(w, r, ".form")
}

// withEntity загружает сущность по {id} и рендерит страницу с ней.
func (h *verticalHandler[T]) withEntity(w http.ResponseWriter, r *http.Request, suffix string) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	store := storeFrom(r.Context())
	slice := h.v.slice(store)
	if err := slice.FetchOne(r.Context(), id); err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			h.app.NotFound(w)
			return
		}
		h.app.RenderHTML(w, r, h.v.page+suffix, h.pageData(r.Context(), store, suffix, slice.Snapshot()), http.StatusBadGateway)
		return
	}

	h.app.RenderHTML(w, r, h.v.page+suffix, h.pageData(r.Context(), store, suffix, slice.Snapshot()), http.StatusOK)
}

func (h *verticalHandler[T]) pageData(ctx context.Context, store *Store, suffix string, st client.State[T]) *HTMLData {
	data := &HTMLData{
		Title:        h.v.title,
		ErrorMessage: st.ErrorMessage,
		Entity:       st.Entity,
	}
	if suffix == ".form" && h.v.prepareForm != nil {
		h.v.prepareForm(ctx, store, data)
	}
	return data
}

func (h *verticalHandler[T]) newForm(w http.ResponseWriter, r *http.Request) {
	var zero T
	data := &HTMLData{Title: h.v.title, IsNew: true, Entity: zero}
	if h.v.prepareForm != nil {
		h.v.prepareForm(r.Context(), storeFrom(r.Context()), data)
	}
	h.app.RenderHTML(w, r, h.v.page+".form", data, http.StatusOK)
}

func (h *verticalHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.parseForm(w, r, true)
	if !ok {
		return
	}

	slice := h.v.slice(storeFrom(r.Context()))
	err := slice.Create(r.Context(), entity)
	h.afterWrite(w, r, err, entity, true)
}

func (h *verticalHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	entity, ok := h.parseForm(w, r, false)
	if !ok {
		return
	}
	entity = h.v.withID(entity, id)

	slice := h.v.slice(storeFrom(r.Context()))
	var err error
	if r.PostForm.Get("partial") == "true" {
		err = slice.PartialUpdate(r.Context(), entity)
	} else {
		err = slice.Update(r.Context(), entity)
	}
	h.afterWrite(w, r, err, entity, false)
}

func (h *verticalHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	store := storeFrom(r.Context())
	slice := h.v.slice(store)
	if err := slice.Remove(r.Context(), id); err != nil {
		st := slice.Snapshot()
		data := &HTMLData{Title: h.v.title, ErrorMessage: st.ErrorMessage, Entity: h.v.withID(st.Entity, id)}
		h.app.RenderHTML(w, r, h.v.page+".delete", data, http.StatusOK)
		return
	}
	http.Redirect(w, r, h.v.route, http.StatusSeeOther)
}

// afterWrite уводит на список после успешной записи, иначе показывает форму с ошибкой.
func (h *verticalHandler[T]) afterWrite(w http.ResponseWriter, r *http.Request, err error, submitted T, isNew bool) {
	store := storeFrom(r.Context())
	if err == nil {
		http.Redirect(w, r, h.v.route, http.StatusSeeOther)
		return
	}

	st := h.v.slice(store).Snapshot()
	data := &HTMLData{
		Title:        h.v.title,
		IsNew:        isNew,
		ErrorMessage: st.ErrorMessage,
		Entity:       submitted,
	}
	if h.v.prepareForm != nil {
		h.v.prepareForm(r.Context(), store, data)
	}
	h.app.RenderHTML(w, r, h.v.page+".form", data, http.StatusOK)
}

func (h *verticalHandler[T]) parseForm(w http.ResponseWriter, r *http.Request, isNew bool) (T, bool) {
	var zero T
	if err := r.ParseForm(); err != nil {
		h.app.ClientError(w, http.StatusBadRequest)
		return zero, false
	}

	entity, err := h.v.fromForm(r.PostForm)
	if err != nil {
		data := &HTMLData{Title: h.v.title, IsNew: isNew, ErrorMessage: err.Error(), Entity: zero}
		if h.v.prepareForm != nil {
			h.v.prepareForm(r.Context(), storeFrom(r.Context()), data)
		}
		h.app.RenderHTML(w, r, h.v.page+".form", data, http.StatusUnprocessableEntity)
		return zero, false
	}
	return entity, true
}

func (h *verticalHandler[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.app.NotFound(w)
		return 0, false
	}
	return id, true
}
