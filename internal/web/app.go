// Package web отдаёт серверные HTML-страницы для AppUser и UserGroup.
// Каждая браузерная сессия получает собственный Store срезов состояния,
// страницы читают состояние срезов после выполнения их операций.
package web

import (
	"net/http"

	"user-group-app/internal/client"
	httpapi "user-group-app/internal/http"
	"user-group-app/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App реализует веб-интерфейс поверх REST API.
type App struct {
	sessions *sessionStore
	pages    *pageSet

	appUsers   *vertical[model.AppUser]
	userGroups *vertical[model.UserGroup]
}

// NewApp создаёт UI, который ходит в REST API через transport.
func NewApp(transport *client.Transport) (*App, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &App{
		sessions:   newSessionStore(transport),
		pages:      pages,
		appUsers:   newAppUserVertical(),
		userGroups: newUserGroupVertical(),
	}, nil
}

// Router объявляет маршруты: для каждой сущности index, new, :id, :id/edit, :id/delete.
func (app *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httpapi.WithLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(app.withSession)

		r.Get("/", app.home)
		r.Route(app.appUsers.route, func(r chi.Router) {
			mountVertical(r, app, app.appUsers)
		})
		r.Route(app.userGroups.route, func(r chi.Router) {
			mountVertical(r, app, app.userGroups)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.NotFound(w)
	})

	return r
}

func (app *App) home(w http.ResponseWriter, r *http.Request) {
	app.RenderHTML(w, r, "home", &HTMLData{Title: "Home"}, http.StatusOK)
}
