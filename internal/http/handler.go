package http

import (
	"context"
	"encoding/json"
	"net/http"

	"user-group-app/internal/model"
	"user-group-app/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// AppUserService описывает операции над пользователями, нужные обработчикам.
type AppUserService interface {
	List(ctx context.Context, sort *model.Sort) ([]model.AppUser, error)
	Get(ctx context.Context, id int64) (model.AppUser, error)
	Create(ctx context.Context, u model.AppUser) (model.AppUser, error)
	Update(ctx context.Context, id int64, u model.AppUser) (model.AppUser, error)
	Patch(ctx context.Context, id int64, u model.AppUser) (model.AppUser, error)
	Delete(ctx context.Context, id int64) error
}

// UserGroupService описывает операции над группами, нужные обработчикам.
type UserGroupService interface {
	List(ctx context.Context, sort *model.Sort) ([]model.UserGroup, error)
	Get(ctx context.Context, id int64) (model.UserGroup, error)
	Create(ctx context.Context, g model.UserGroup) (model.UserGroup, error)
	Update(ctx context.Context, id int64, g model.UserGroup) (model.UserGroup, error)
	Patch(ctx context.Context, id int64, g model.UserGroup) (model.UserGroup, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	AppUsers       AppUserService
	UserGroups     UserGroupService
	AllowedOrigins []string
}

func NewHandler(appUsers AppUserService, userGroups UserGroupService, allowedOrigins []string) *Handler {
	return &Handler{
		AppUsers:       appUsers,
		UserGroups:     userGroups,
		AllowedOrigins: allowedOrigins,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(WithLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/app-users", func(r chi.Router) {
			mountResource(r, newAppUserResource(h.AppUsers))
		})
		r.Route("/user-groups", func(r chi.Router) {
			mountResource(r, newUserGroupResource(h.UserGroups))
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func writeError(w http.ResponseWriter, r *http.Request, handlerName string, err error) {
	appErr, ok := err.(*service.AppError)
	if !ok {
		appErr = service.ErrInternal("internal error", err)
	}

	logger := zerolog.Ctx(r.Context())
	ev := logger.Warn()
	if appErr.Status >= http.StatusInternalServerError {
		ev = logger.Error()
	}
	ev.Err(appErr.Err).
		Str("handler", handlerName).
		Str("code", appErr.Code).
		Int("status", appErr.Status).
		Msg(appErr.Message)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	writeJSON(w, appErr.Status, resp)
}
