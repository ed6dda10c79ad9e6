// Package session holds the admin's bearer token for the lifetime of the
// process and tells interested parties when it changes.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/brokeradda/adda-admin/internal/envelope"
	"github.com/brokeradda/adda-admin/internal/logger"
)

// DefaultCookieName is the name of the cookie mirroring the token.
const DefaultCookieName = "adminToken"

// ErrNoTokenInResponse is returned when a login succeeds at the HTTP level but
// the body carries no token.
var ErrNoTokenInResponse = errors.New("login response contained no token")

// tokenPaths is the login response fallback chain.
var tokenPaths = []string{"token", "data.token", "accessToken", "data.accessToken"}

// adminIDPaths locate the signed-in admin in a login response.
var adminIDPaths = []string{
	"data.admin.id", "data.admin._id", "admin.id", "admin._id",
	"data.user.id", "data.user._id", "user.id", "user._id",
	"data.adminId", "adminId",
}

// Authenticator exchanges credentials for a raw login response.
type Authenticator interface {
	Login(ctx context.Context, email, password string) ([]byte, error)
}

// Store persists the token across processes.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	adminID   string
	listeners map[int]func(token string)
	nextID    int

	store        Store
	cookieName   string
	cookieMaxAge int
}

// Option configures a Session.
type Option func(*Session)

// WithStore persists the token through s. The stored token, if any, is
// loaded by New.
func WithStore(s Store) Option {
	return func(sess *Session) {
		sess.store = s
	}
}

// WithCookie sets the mirror cookie name and max age in seconds.
func WithCookie(name string, maxAge int) Option {
	return func(sess *Session) {
		if name != "" {
			sess.cookieName = name
		}
		sess.cookieMaxAge = maxAge
	}
}

// New creates a session, restoring a persisted token when a store is set.
func New(opts ...Option) *Session {
	s := &Session{
		listeners:  make(map[int]func(string)),
		cookieName: DefaultCookieName,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store != nil {
		token, err := s.store.Load()
		if err != nil {
			logger.Warn("failed to restore session token", logger.Err(err))
		}
		s.token = strings.TrimSpace(token)
	}
	return s
}

// Token returns the current token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// SetToken replaces the token, persists it and notifies listeners. Setting
// the same token again is a no-op.
func (s *Session) SetToken(token string) {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	if token == s.token {
		s.mu.Unlock()
		return
	}
	s.token = token
	s.adminID = ""
	listeners := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	if s.store != nil {
		var err error
		if token == "" {
			err = s.store.Clear()
		} else {
			err = s.store.Save(token)
		}
		if err != nil {
			logger.Warn("failed to persist session token", logger.Err(err))
		}
	}

	for _, fn := range listeners {
		fn(token)
	}
}

// Clear drops the token.
func (s *Session) Clear() {
	s.SetToken("")
}

// OnChange registers fn to run after every token change. The returned
// function unregisters it.
func (s *Session) OnChange(fn func(token string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Login authenticates against the backend and stores the returned token.
func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) (string, error) {
	body, err := auth.Login(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, ok := TokenFromResponse(body)
	if !ok {
		return "", ErrNoTokenInResponse
	}

	s.SetToken(token)
	adminID, _ := AdminIDFromResponse(body)
	s.mu.Lock()
	s.adminID = adminID
	s.mu.Unlock()

	logger.Ctx(logger.WithAdminID(ctx, adminID)).Info("admin logged in")
	return token, nil
}

// AdminID returns the id of the admin who logged in, or "" when unknown.
// A token restored from the store carries no id.
func (s *Session) AdminID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminID
}

// Logout clears the token.
func (s *Session) Logout(ctx context.Context) {
	s.Clear()
	logger.Ctx(ctx).Info("admin logged out")
}

// TokenFromResponse extracts the bearer token from a login response.
func TokenFromResponse(body []byte) (string, bool) {
	return envelope.String(envelope.Decode(body), tokenPaths...)
}

// AdminIDFromResponse extracts the admin id from a login response.
func AdminIDFromResponse(body []byte) (string, bool) {
	return envelope.String(envelope.Decode(body), adminIDPaths...)
}

// CookieName returns the mirror cookie name.
func (s *Session) CookieName() string {
	return s.cookieName
}

// Cookie returns the mirror cookie carrying the current token.
func (s *Session) Cookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    s.Token(),
		Path:     "/",
		MaxAge:   s.cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie returns a cookie that deletes the mirror cookie.
func (s *Session) ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Matches reports whether token equals the held token. An empty session
// matches nothing.
func (s *Session) Matches(token string) bool {
	current := s.Token()
	return current != "" && subtle.ConstantTimeCompare([]byte(token), []byte(current)) == 1
}
