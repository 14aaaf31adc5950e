package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"user-group-app/internal/client"
	"user-group-app/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	SessionCookieName = "session_token"
	sessionTTL        = 24 * time.Hour
)

// Store хранит срезы состояния одной сессии.
type Store struct {
	AppUsers   *client.Slice[model.AppUser]
	UserGroups *client.Slice[model.UserGroup]
}

func NewStore(transport *client.Transport) *Store {
	return &Store{
		AppUsers:   client.NewAppUserSlice(transport),
		UserGroups: client.NewUserGroupSlice(transport),
	}
}

type session struct {
	store    *Store
	lastSeen time.Time
}

type sessionStore struct {
	transport *client.Transport
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore(transport *client.Transport) *sessionStore {
	return &sessionStore{
		transport: transport,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// get возвращает Store сессии token; created=true, если сессия новая.
func (s *sessionStore) get(token string) (string, *Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[token]; ok && now.Sub(sess.lastSeen) < sessionTTL {
		sess.lastSeen = now
		return token, sess.store, false
	}

	s.evictExpired(now)
	token = uuid.NewString()
	store := NewStore(s.transport)
	s.sessions[token] = &session{store: store, lastSeen: now}
	return token, store, true
}

func (s *sessionStore) evictExpired(now time.Time) {
	for token, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= sessionTTL {
			delete(s.sessions, token)
		}
	}
}

type storeKey struct{}

// withSession находит или заводит сессию по cookie и кладёт её Store в контекст.
func (app *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, store, created := app.sessions.get(getSessionToken(r))
		if created {
			setSessionCookie(w, token)
			zerolog.Ctx(r.Context()).Debug().Str("session", token).Msg("session started")
		}

		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), storeKey{}, store)))
	})
}

func storeFrom(ctx context.Context) *Store {
	return ctx.Value(storeKey{}).(*Store)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getSessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
