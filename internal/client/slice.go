package client

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"time"

	"user-group-app/internal/model"

	"github.com/rs/zerolog"
)

// Пути REST-ресурсов.
const (
	AppUsersPath   = "/api/app-users"
	UserGroupsPath = "/api/user-groups"
)

// Entity описывает запись, которой умеет управлять Slice.
type Entity interface {
	EntityID() int64
	SortValue(field string) (any, bool)
}

// State хранит клиентский кэш одного типа сущностей и флаги запросов.
type State[T Entity] struct {
	Loading       bool
	Updating      bool
	UpdateSuccess bool
	ErrorMessage  string
	Entities      []T
	Entity        T
}

func (st State[T]) clone() State[T] {
	st.Entities = slices.Clone(st.Entities)
	return st
}

// Slice владеет состоянием одного типа сущностей в рамках сессии
// и выполняет операции чтения и записи через REST API.
// Операции можно вызывать конкурентно: побеждает последняя запись в состояние.
// Подписчики получают снимки строго в порядке изменений.
type Slice[T Entity] struct {
	transport *Transport
	path      string
	now       func() time.Time

	// deliverMu держится от изменения состояния до конца рассылки снимка.
	deliverMu sync.Mutex
	mu        sync.Mutex
	state     State[T]
	listeners map[int]func(State[T])
	nextID    int
}

func NewSlice[T Entity](transport *Transport, path string) *Slice[T] {
	return &Slice[T]{
		transport: transport,
		path:      path,
		now:       time.Now,
		listeners: make(map[int]func(State[T])),
	}
}

func NewAppUserSlice(transport *Transport) *Slice[model.AppUser] {
	return NewSlice[model.AppUser](transport, AppUsersPath)
}

func NewUserGroupSlice(transport *Transport) *Slice[model.UserGroup] {
	return NewSlice[model.UserGroup](transport, UserGroupsPath)
}

// Snapshot возвращает копию текущего состояния.
func (s *Slice[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe регистрирует fn, вызываемую после каждого изменения состояния.
// fn вызывается синхронно и не должна запускать операции этого Slice,
// кроме Snapshot, Subscribe и отписки.
// Возвращённая функция снимает подписку.
func (s *Slice[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Reset возвращает состояние к начальному.
func (s *Slice[T]) Reset() {
	s.mutate(func(st *State[T]) {
		*st = State[T]{}
	})
}

func (s *Slice[T]) mutate(fn func(st *State[T])) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	listeners := make([]func(State[T]), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// List загружает всю коллекцию. При заданной сортировке результат
// дополнительно упорядочивается на клиенте, без неё сохраняется порядок сервера.
func (s *Slice[T]) List(ctx context.Context, sort *model.Sort) error {
	return s.list(ctx, sort, false)
}

// list с keepSuccess не трогает UpdateSuccess: так обновление после записи
// не сбрасывает признак успешной записи.
func (s *Slice[T]) list(ctx context.Context, sort *model.Sort, keepSuccess bool) error {
	s.mutate(func(st *State[T]) {
		st.Loading = true
		st.ErrorMessage = ""
		if !keepSuccess {
			st.UpdateSuccess = false
		}
	})

	query := url.Values{}
	if sort != nil {
		query.Set("sort", sort.String())
	}
	query.Set("cacheBuster", strconv.FormatInt(s.now().UnixMilli(), 10))

	var items []T
	err := s.transport.do(ctx, request{method: http.MethodGet, path: s.path, query: query}, &items)
	if err != nil {
		s.reject(ctx, "list", err, keepSuccess)
		return err
	}

	if sort != nil {
		sortEntities(items, *sort)
	}
	s.mutate(func(st *State[T]) {
		st.Loading = false
		st.Entities = items
	})
	return nil
}

// FetchOne загружает одну сущность и делает её текущей.
func (s *Slice[T]) FetchOne(ctx context.Context, id int64) error {
	s.mutate(func(st *State[T]) {
		st.Loading = true
		st.ErrorMessage = ""
		st.UpdateSuccess = false
	})

	var item T
	err := s.transport.do(ctx, request{method: http.MethodGet, path: s.entityPath(id)}, &item)
	if err != nil {
		s.reject(ctx, "fetch_one", err, false)
		return err
	}

	s.mutate(func(st *State[T]) {
		st.Loading = false
		st.Entity = item
	})
	return nil
}

// Create отправляет очищенную от null-полей сущность и перечитывает список.
func (s *Slice[T]) Create(ctx context.Context, e T) error {
	return s.write(ctx, "create", request{method: http.MethodPost, path: s.path}, e)
}

// Update полностью заменяет сущность по её id.
func (s *Slice[T]) Update(ctx context.Context, e T) error {
	return s.write(ctx, "update", request{method: http.MethodPut, path: s.entityPath(e.EntityID())}, e)
}

// PartialUpdate заменяет только переданные поля сущности.
func (s *Slice[T]) PartialUpdate(ctx context.Context, e T) error {
	return s.write(ctx, "partial_update", request{
		method:      http.MethodPatch,
		path:        s.entityPath(e.EntityID()),
		contentType: contentTypeMergePatch,
	}, e)
}

// Remove удаляет сущность, очищает текущую и перечитывает список.
func (s *Slice[T]) Remove(ctx context.Context, id int64) error {
	s.beginWrite()

	if err := s.transport.do(ctx, request{method: http.MethodDelete, path: s.entityPath(id)}, nil); err != nil {
		s.reject(ctx, "remove", err, false)
		return err
	}

	s.mutate(func(st *State[T]) {
		var zero T
		st.Updating = false
		st.UpdateSuccess = true
		st.Entity = zero
	})
	_ = s.list(ctx, nil, true)
	return nil
}

func (s *Slice[T]) write(ctx context.Context, op string, req request, e T) error {
	s.beginWrite()

	body, err := Cleanse(e)
	if err != nil {
		s.reject(ctx, op, err, false)
		return err
	}
	req.body = body

	var saved T
	if err := s.transport.do(ctx, req, &saved); err != nil {
		s.reject(ctx, op, err, false)
		return err
	}

	s.mutate(func(st *State[T]) {
		st.Updating = false
		st.Loading = false
		st.UpdateSuccess = true
		st.Entity = saved
	})
	// Ошибка обновления списка остаётся в ErrorMessage, запись уже прошла.
	_ = s.list(ctx, nil, true)
	return nil
}

func (s *Slice[T]) beginWrite() {
	s.mutate(func(st *State[T]) {
		st.Updating = true
		st.ErrorMessage = ""
		st.UpdateSuccess = false
	})
}

func (s *Slice[T]) reject(ctx context.Context, op string, err error, keepSuccess bool) {
	zerolog.Ctx(ctx).Warn().Err(err).Str("resource", s.path).Str("op", op).Msg("entity operation failed")
	s.mutate(func(st *State[T]) {
		st.Loading = false
		st.Updating = false
		if !keepSuccess {
			st.UpdateSuccess = false
		}
		st.ErrorMessage = err.Error()
	})
}

func (s *Slice[T]) entityPath(id int64) string {
	return fmt.Sprintf("%s/%d", s.path, id)
}

// sortEntities упорядочивает items по полю sort.Field; незаданные значения идут первыми при ASC.
// Неизвестное поле оставляет порядок как есть.
func sortEntities[T Entity](items []T, sort model.Sort) {
	slices.SortStableFunc(items, func(a, b T) int {
		av, okA := a.SortValue(sort.Field)
		bv, okB := b.SortValue(sort.Field)
		if !okA || !okB {
			return 0
		}
		c := compareValues(av, bv)
		if sort.Order == model.DESC {
			return -c
		}
		return c
	})
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}
