package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"user-group-app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI держит в памяти минимальный REST-бэкенд одного ресурса.
type fakeAPI struct {
	mu         sync.Mutex
	path       string
	items      []map[string]any
	nextID     int64
	listCalls  int
	lastQuery  string
	lastBody   map[string]any
	lastCT     string
	failStatus int
	// failList ломает только чтение списка.
	failList int
}

func newFakeAPI(t *testing.T, path string, items ...map[string]any) (*fakeAPI, *httptest.Server) {
	api := &fakeAPI{path: path, items: items, nextID: int64(len(items)) + 1}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStatus != 0 {
		w.WriteHeader(f.failStatus)
		_, _ = io.WriteString(w, `{"error":{"code":"idexists","message":"A new entity cannot already have an ID"}}`)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, f.path)
	var id int64
	if rest != "" {
		id, _ = strconv.ParseInt(strings.TrimPrefix(rest, "/"), 10, 64)
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		f.lastBody = nil
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		f.lastCT = r.Header.Get("Content-Type")
	}

	switch {
	case r.Method == http.MethodGet && rest == "":
		f.listCalls++
		f.lastQuery = r.URL.RawQuery
		if f.failList != 0 {
			w.WriteHeader(f.failList)
			return
		}
		writeTestJSON(w, http.StatusOK, f.items)
	case r.Method == http.MethodGet:
		if item := f.find(id); item != nil {
			writeTestJSON(w, http.StatusOK, item)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPost:
		item := make(map[string]any, len(f.lastBody)+1)
		for k, v := range f.lastBody {
			item[k] = v
		}
		item["id"] = f.nextID
		f.nextID++
		f.items = append(f.items, item)
		writeTestJSON(w, http.StatusCreated, item)
	case r.Method == http.MethodPut, r.Method == http.MethodPatch:
		item := f.find(id)
		if item == nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range f.lastBody {
			item[k] = v
		}
		writeTestJSON(w, http.StatusOK, item)
	case r.Method == http.MethodDelete:
		for i, item := range f.items {
			if itemID(item) == id {
				f.items = append(f.items[:i], f.items[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *fakeAPI) find(id int64) map[string]any {
	for _, item := range f.items {
		if itemID(item) == id {
			return item
		}
	}
	return nil
}

func (f *fakeAPI) body() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func (f *fakeAPI) contentType() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCT
}

func (f *fakeAPI) lists() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func itemID(item map[string]any) int64 {
	switch v := item["id"].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func appUserSlice(srv *httptest.Server) *Slice[model.AppUser] {
	return NewAppUserSlice(NewTransport(srv.URL, srv.Client()))
}

func TestSlice_ListKeepsServerOrderWithoutSort(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath,
		map[string]any{"id": 3, "username": "c"},
		map[string]any{"id": 1, "username": "a"},
		map[string]any{"id": 2, "username": "b"},
	)
	s := appUserSlice(srv)

	require.NoError(t, s.List(context.Background(), nil))

	st := s.Snapshot()
	assert.False(t, st.Loading)
	require.Len(t, st.Entities, 3)
	assert.Equal(t, []int64{3, 1, 2}, ids(st.Entities))
}

func TestSlice_ListSortsOnClient(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath,
		map[string]any{"id": 3, "username": "c"},
		map[string]any{"id": 1},
		map[string]any{"id": 2, "username": "b"},
	)
	s := appUserSlice(srv)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	tests := []struct {
		name string
		sort model.Sort
		want []int64
	}{
		{name: "asc puts missing first", sort: model.Sort{Field: "username", Order: model.ASC}, want: []int64{1, 2, 3}},
		{name: "desc", sort: model.Sort{Field: "username", Order: model.DESC}, want: []int64{3, 2, 1}},
		{name: "by id", sort: model.Sort{Field: "id", Order: model.DESC}, want: []int64{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.List(context.Background(), &tt.sort))
			assert.Equal(t, tt.want, ids(s.Snapshot().Entities))
		})
	}

	assert.Equal(t, "cacheBuster=1700000000000&sort=id%2Cdesc", api.lastQuery)
}

func TestSlice_CreateCleansesAndRefreshesOnce(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath)
	s := appUserSlice(srv)

	err := s.Create(context.Background(), model.AppUser{
		ExternalUserID: model.Ptr("lest"),
		Username:       model.Ptr("patiently yet expatiate"),
		FirstName:      model.Ptr("Kaley"),
		LastName:       model.Ptr("Gleichner"),
		Email:          model.Ptr("Eva_Howe54@yahoo.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"externalUserId": "lest",
		"username":       "patiently yet expatiate",
		"firstName":      "Kaley",
		"lastName":       "Gleichner",
		"email":          "Eva_Howe54@yahoo.com",
	}, api.body())
	assert.Equal(t, 1, api.lists())

	st := s.Snapshot()
	assert.True(t, st.UpdateSuccess)
	assert.False(t, st.Updating)
	assert.Equal(t, int64(1), st.Entity.EntityID())
	require.Len(t, st.Entities, 1)
	assert.Equal(t, "Eva_Howe54@yahoo.com", *st.Entities[0].Email)
}

func TestSlice_UpdateAndPartialUpdate(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath, map[string]any{"id": 1, "firstName": "Kaley", "lastName": "Gleichner"})
	s := appUserSlice(srv)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, model.AppUser{ID: model.Ptr(int64(1)), FirstName: model.Ptr("Kay")}))
	assert.Equal(t, "application/json", api.contentType())

	require.NoError(t, s.PartialUpdate(ctx, model.AppUser{ID: model.Ptr(int64(1)), LastName: model.Ptr("G")}))
	assert.Equal(t, "application/merge-patch+json", api.contentType())
	assert.Equal(t, map[string]any{"id": float64(1), "lastName": "G"}, api.body())

	assert.Equal(t, 2, api.lists())
	st := s.Snapshot()
	assert.Equal(t, "Kay", *st.Entity.FirstName)
	assert.Equal(t, "G", *st.Entity.LastName)
}

func TestSlice_RemoveClearsEntity(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath, map[string]any{"id": 1}, map[string]any{"id": 2})
	s := appUserSlice(srv)
	ctx := context.Background()

	require.NoError(t, s.FetchOne(ctx, 2))
	require.Equal(t, int64(2), s.Snapshot().Entity.EntityID())

	require.NoError(t, s.Remove(ctx, 2))

	st := s.Snapshot()
	assert.True(t, st.UpdateSuccess)
	assert.Equal(t, model.AppUser{}, st.Entity)
	assert.Equal(t, []int64{1}, ids(st.Entities))
	assert.Equal(t, 1, api.lists())
}

func TestSlice_FetchOneIsIdempotent(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath, map[string]any{"id": 5, "username": "kaley"})
	s := appUserSlice(srv)
	ctx := context.Background()

	require.NoError(t, s.FetchOne(ctx, 5))
	first := s.Snapshot()
	require.NoError(t, s.FetchOne(ctx, 5))

	assert.Equal(t, first, s.Snapshot())
}

func TestSlice_ErrorsAreStored(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath)
	api.failStatus = http.StatusBadRequest
	s := appUserSlice(srv)

	err := s.Create(context.Background(), model.AppUser{ID: model.Ptr(int64(9))})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))

	st := s.Snapshot()
	assert.False(t, st.Updating)
	assert.False(t, st.UpdateSuccess)
	assert.Equal(t, "request failed with status code 400: A new entity cannot already have an ID", st.ErrorMessage)
	assert.Equal(t, 0, api.lists(), "failed write must not refresh the list")
}

func TestSlice_RefreshFailureAfterWrite(t *testing.T) {
	api, srv := newFakeAPI(t, AppUsersPath)
	api.failList = http.StatusInternalServerError
	s := appUserSlice(srv)

	err := s.Create(context.Background(), model.AppUser{Username: model.Ptr("kaley")})
	require.NoError(t, err, "write itself succeeded")

	st := s.Snapshot()
	assert.True(t, st.UpdateSuccess)
	assert.False(t, st.Updating)
	assert.False(t, st.Loading)
	assert.Equal(t, "request failed with status code 500", st.ErrorMessage)
	assert.Equal(t, int64(1), st.Entity.EntityID())
	assert.Equal(t, 1, api.lists())
}

func TestSlice_ConcurrentListAndCreate(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath)
	s := appUserSlice(srv)
	ctx := context.Background()

	const n = 10
	errs := make(chan error, 2*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- s.List(ctx, &model.Sort{Field: "id", Order: model.ASC})
		}()
		go func(i int) {
			defer wg.Done()
			errs <- s.Create(ctx, model.AppUser{Username: model.Ptr("user-" + strconv.Itoa(i))})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.False(t, st.Updating)
	assert.Empty(t, st.ErrorMessage)
	assert.LessOrEqual(t, len(st.Entities), n)

	require.NoError(t, s.List(ctx, nil))
	assert.Len(t, s.Snapshot().Entities, n)
}

func TestSlice_ListenersSeeStateInOrder(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath, map[string]any{"id": 1})
	s := appUserSlice(srv)
	ctx := context.Background()

	var (
		mu       sync.Mutex
		received int
		stale    int
		last     State[model.AppUser]
	)
	s.Subscribe(func(st State[model.AppUser]) {
		current := s.Snapshot()
		mu.Lock()
		defer mu.Unlock()
		received++
		if !assert.ObjectsAreEqual(current, st) {
			stale++
		}
		last = st
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = s.List(ctx, nil)
		}()
		go func() {
			defer wg.Done()
			_ = s.FetchOne(ctx, 1)
		}()
		go func() {
			defer wg.Done()
			_ = s.Create(ctx, model.AppUser{Username: model.Ptr("kaley")})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Positive(t, received)
	assert.Zero(t, stale, "every snapshot must match the state at delivery time")
	assert.Equal(t, s.Snapshot(), last)
}

func TestSlice_NotFound(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath)
	s := appUserSlice(srv)

	err := s.FetchOne(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "request failed with status code 404", s.Snapshot().ErrorMessage)
}

func TestSlice_TransportFailure(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath)
	s := appUserSlice(srv)
	srv.Close()

	require.Error(t, s.List(context.Background(), nil))
	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.ErrorMessage)
}

func TestSlice_SubscribeAndReset(t *testing.T) {
	_, srv := newFakeAPI(t, AppUsersPath, map[string]any{"id": 1})
	s := appUserSlice(srv)

	var seen []State[model.AppUser]
	unsubscribe := s.Subscribe(func(st State[model.AppUser]) {
		seen = append(seen, st)
	})

	require.NoError(t, s.List(context.Background(), nil))
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.Len(t, seen[1].Entities, 1)

	unsubscribe()
	s.Reset()
	assert.Len(t, seen, 2)
	assert.Equal(t, State[model.AppUser]{}, s.Snapshot())
}

func TestUserGroupSlice_CreateDropsEmptyRelation(t *testing.T) {
	api, srv := newFakeAPI(t, UserGroupsPath)
	s := NewUserGroupSlice(NewTransport(srv.URL, srv.Client()))

	require.NoError(t, s.Create(context.Background(), model.UserGroup{Name: model.Ptr("spirit"), AppUser: &model.AppUser{}}))

	assert.Equal(t, map[string]any{"name": "spirit"}, api.body())
	st := s.Snapshot()
	assert.Equal(t, "spirit", *st.Entity.Name)
	assert.Nil(t, st.Entity.AppUser)
}

func ids(items []model.AppUser) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.EntityID())
	}
	return out
}
