package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/redis"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return value, nil
}

func (s *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.data[key] = fmt.Sprintf("%v", value)
	return nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *memStore) SessionKey(sessionID string) string {
	return "um:session:" + sessionID
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "umsession",
		ProfileKey: "profile",
		IDTokenKey: "jwt_payload",
		AccessKey:  "token",
		TTL:        time.Hour,
	}
}

func establishedRequest(t *testing.T, mgr *Manager) (*http.Request, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	sessionID := mgr.Establish(rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req, sessionID
}

func TestManagerLoginRoundTrip(t *testing.T) {
	mgr, err := NewManager(newMemStore(), testSessionConfig())
	require.NoError(t, err)

	req, sessionID := establishedRequest(t, mgr)
	ctx := context.Background()

	login := Login{
		Profile: Profile{
			UserID:   "auth0|abc123",
			Name:     "Pat Example",
			Picture:  "https://cdn.example.com/p.png",
			Nickname: "pat",
		},
		IDToken:     "id-token-value",
		AccessToken: "access-token-value",
	}
	require.NoError(t, mgr.SetLogin(ctx, sessionID, login))

	profile, err := mgr.Profile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, login.Profile, *profile)

	token, err := mgr.AccessToken(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "access-token-value", token)
}

func TestManagerNoCookie(t *testing.T) {
	mgr, err := NewManager(newMemStore(), testSessionConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err = mgr.Profile(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = mgr.AccessToken(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerCookieWithoutRecord(t *testing.T) {
	mgr, err := NewManager(newMemStore(), testSessionConfig())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "umsession", Value: "stale-session-id"})

	_, err = mgr.AccessToken(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerStateRoundTrip(t *testing.T) {
	mgr, err := NewManager(newMemStore(), testSessionConfig())
	require.NoError(t, err)

	req, sessionID := establishedRequest(t, mgr)
	ctx := context.Background()

	require.NoError(t, mgr.SetState(ctx, sessionID, "xyzzy"))

	state, err := mgr.State(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "xyzzy", state)
}

func TestManagerClear(t *testing.T) {
	store := newMemStore()
	mgr, err := NewManager(store, testSessionConfig())
	require.NoError(t, err)

	req, sessionID := establishedRequest(t, mgr)
	ctx := context.Background()

	require.NoError(t, mgr.SetLogin(ctx, sessionID, Login{AccessToken: "tok"}))

	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Clear(ctx, rec, req))

	assert.Empty(t, store.data)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "umsession", cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestManagerCookieAttributes(t *testing.T) {
	mgr, err := NewManager(newMemStore(), testSessionConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mgr.Establish(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, int(time.Hour/time.Second), cookies[0].MaxAge)
}
