package session

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	body []byte
	err  error
}

func (f fakeAuth) Login(context.Context, string, string) ([]byte, error) {
	return f.body, f.err
}

func TestTokenFromResponseChain(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{`{"token":"a","data":{"token":"b"}}`, "a", true},
		{`{"data":{"token":"b"},"accessToken":"c"}`, "b", true},
		{`{"accessToken":"c","data":{"accessToken":"d"}}`, "c", true},
		{`{"data":{"accessToken":"d"}}`, "d", true},
		{`{"token":"","data":{"accessToken":"d"}}`, "d", true},
		{`{"success":true}`, "", false},
		{`not json`, "", false},
	}
	for _, tt := range tests {
		got, ok := TokenFromResponse([]byte(tt.body))
		assert.Equal(t, tt.ok, ok, tt.body)
		assert.Equal(t, tt.want, got, tt.body)
	}
}

func TestOnChangeFiresOnSetAndClear(t *testing.T) {
	s := New()
	var seen []string
	unsubscribe := s.OnChange(func(token string) { seen = append(seen, token) })

	s.SetToken("t1")
	s.SetToken("t1")
	s.Clear()
	unsubscribe()
	s.SetToken("t2")

	assert.Equal(t, []string{"t1", ""}, seen)
	assert.Equal(t, "t2", s.Token())
}

func TestLoginStoresToken(t *testing.T) {
	s := New()

	token, err := s.Login(context.Background(), fakeAuth{body: []byte(`{"data":{"token":"xyz"}}`)}, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)
	assert.True(t, s.LoggedIn())
	assert.True(t, s.Matches("xyz"))

	s.Logout(context.Background())
	assert.False(t, s.LoggedIn())
	assert.False(t, s.Matches(""))
}

func TestLoginRemembersAdminID(t *testing.T) {
	s := New()

	_, err := s.Login(context.Background(), fakeAuth{body: []byte(`{"data":{"token":"xyz","admin":{"_id":"64f1c0a9","email":"ops@brokeradda.in"}}}`)}, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "64f1c0a9", s.AdminID())

	s.SetToken("other")
	assert.Empty(t, s.AdminID())

	_, err = s.Login(context.Background(), fakeAuth{body: []byte(`{"token":"abc"}`)}, "a@b.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, s.AdminID())
}

func TestAdminIDFromResponseChain(t *testing.T) {
	tests := []struct {
		body string
		want string
		ok   bool
	}{
		{`{"data":{"admin":{"id":"a1"},"user":{"id":"u1"}}}`, "a1", true},
		{`{"admin":{"_id":"a2"}}`, "a2", true},
		{`{"data":{"user":{"id":"u1"}}}`, "u1", true},
		{`{"adminId":42}`, "42", true},
		{`{"token":"t"}`, "", false},
	}
	for _, tt := range tests {
		got, ok := AdminIDFromResponse([]byte(tt.body))
		assert.Equal(t, tt.ok, ok, tt.body)
		assert.Equal(t, tt.want, got, tt.body)
	}
}

func TestLoginFailures(t *testing.T) {
	s := New()

	_, err := s.Login(context.Background(), fakeAuth{body: []byte(`{"message":"ok"}`)}, "a", "b")
	assert.ErrorIs(t, err, ErrNoTokenInResponse)

	boom := errors.New("boom")
	_, err = s.Login(context.Background(), fakeAuth{err: boom}, "a", "b")
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.LoggedIn())
}

func TestFileStorePersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	first := New(WithStore(NewFileStore(path)))
	first.SetToken("persisted")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second := New(WithStore(NewFileStore(path)))
	assert.Equal(t, "persisted", second.Token())

	second.Clear()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCookies(t *testing.T) {
	s := New(WithCookie("adda", 3600))
	s.SetToken("abc")

	c := s.Cookie(true)
	assert.Equal(t, "adda", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	cleared := s.ClearCookie(false)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
