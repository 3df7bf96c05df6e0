package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/minliz/udacimarket-backend/pkg/config"
	"github.com/minliz/udacimarket-backend/pkg/redis"
)

// stateKey is the slot the login round-trip state parameter is parked in.
const stateKey = "oauth_state"

// ErrNoSession is returned when the request carries no usable session.
var ErrNoSession = errors.New("no active session")

// Store is the minimal persistence surface the manager needs; satisfied by
// *redis.Client.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// Profile is the identity snapshot kept server-side after login.
type Profile struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Nickname string `json:"nickname"`
}

// Login bundles everything the callback stores for a signed-in user.
type Login struct {
	Profile     Profile
	IDToken     string
	AccessToken string
}

// Wrapper shapes match what downstream consumers historically read out of
// the session slots.
type idTokenWrapper struct {
	ID string `json:"id"`
}

type accessTokenWrapper struct {
	Access string `json:"access"`
}

// Manager keeps session records in the shared store, keyed by a cookie-held
// session id. Slot names come from configuration.
type Manager struct {
	store Store
	cfg   config.SessionConfig
}

// NewManager builds a session manager backed by the provided store.
func NewManager(store Store, cfg config.SessionConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cfg.CookieName == "" {
		return nil, fmt.Errorf("session cookie name required")
	}
	return &Manager{store: store, cfg: cfg}, nil
}

// Establish creates a fresh session id and sets the cookie. Existing session
// data under the old id, if any, is left to expire.
func (m *Manager) Establish(w http.ResponseWriter) string {
	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.cfg.TTL / time.Second),
	})
	return sessionID
}

// SessionID reads the session cookie from the request.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SetLogin stores the profile and token wrappers under the configured slot
// names for the given session id.
func (m *Manager) SetLogin(ctx context.Context, sessionID string, login Login) error {
	record, err := m.record(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := putSlot(record, m.cfg.ProfileKey, login.Profile); err != nil {
		return err
	}
	if err := putSlot(record, m.cfg.IDTokenKey, idTokenWrapper{ID: login.IDToken}); err != nil {
		return err
	}
	if err := putSlot(record, m.cfg.AccessKey, accessTokenWrapper{Access: login.AccessToken}); err != nil {
		return err
	}

	return m.save(ctx, sessionID, record)
}

// SetState parks the login state parameter for the callback to validate.
func (m *Manager) SetState(ctx context.Context, sessionID, state string) error {
	record, err := m.record(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := putSlot(record, stateKey, state); err != nil {
		return err
	}
	return m.save(ctx, sessionID, record)
}

// State returns the parked login state for the request's session.
func (m *Manager) State(ctx context.Context, r *http.Request) (string, error) {
	record, err := m.recordForRequest(ctx, r)
	if err != nil {
		return "", err
	}
	var state string
	if err := getSlot(record, stateKey, &state); err != nil {
		return "", err
	}
	return state, nil
}

// Profile returns the stored profile, or ErrNoSession when the visitor is
// not logged in.
func (m *Manager) Profile(ctx context.Context, r *http.Request) (*Profile, error) {
	record, err := m.recordForRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := getSlot(record, m.cfg.ProfileKey, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AccessToken returns the access token stored at login time.
func (m *Manager) AccessToken(ctx context.Context, r *http.Request) (string, error) {
	record, err := m.recordForRequest(ctx, r)
	if err != nil {
		return "", err
	}
	var wrapper accessTokenWrapper
	if err := getSlot(record, m.cfg.AccessKey, &wrapper); err != nil {
		return "", err
	}
	return wrapper.Access, nil
}

// Clear removes the server-side record and expires the cookie.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	sessionID, ok := m.SessionID(r)
	if !ok {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(sessionID))
}

func (m *Manager) recordForRequest(ctx context.Context, r *http.Request) (map[string]json.RawMessage, error) {
	sessionID, ok := m.SessionID(r)
	if !ok {
		return nil, ErrNoSession
	}
	raw, err := m.store.Get(ctx, m.store.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	record := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return record, nil
}

func (m *Manager) record(ctx context.Context, sessionID string) (map[string]json.RawMessage, error) {
	raw, err := m.store.Get(ctx, m.store.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	record := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return record, nil
}

func (m *Manager) save(ctx context.Context, sessionID string, record map[string]json.RawMessage) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return m.store.Set(ctx, m.store.SessionKey(sessionID), string(payload), m.cfg.TTL)
}

func putSlot(record map[string]json.RawMessage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding session slot %q: %w", key, err)
	}
	record[key] = raw
	return nil
}

func getSlot(record map[string]json.RawMessage, key string, dest any) error {
	raw, ok := record[key]
	if !ok {
		return ErrNoSession
	}
	return json.Unmarshal(raw, dest)
}
