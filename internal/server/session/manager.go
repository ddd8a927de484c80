package session

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/shared"
)

// Manager binds sessions in a Store to browser cookies.
type Manager struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// NewManager uses secret to sign cookies. An empty secret is replaced by
// random bytes, which is fine because sessions do not survive a restart.
func NewManager(store *Store, secret string, ttl time.Duration) *Manager {
	key := []byte(secret)
	if len(key) == 0 {
		key = shared.GenerateRandByteArray(32)
	}
	return &Manager{store: store, secret: key, ttl: ttl}
}

// Start creates a session and sets its cookie on w.
func (m *Manager) Start(w http.ResponseWriter, email, name string, role Role) (*Session, error) {
	sess, err := m.store.Create(email, name, role)
	if err != nil {
		return nil, err
	}

	token, err := generateToken(sess.ID, m.secret, sess.ExpiresAt)
	if err != nil {
		m.store.Delete(sess.ID)
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Load returns the session named by the request cookie, if it is valid
// and still live.
func (m *Manager) Load(r *http.Request) (*Session, bool) {
	id, ok := m.sessionID(r)
	if !ok {
		return nil, false
	}
	return m.store.Get(id)
}

// Update mutates the stored session behind sess.
func (m *Manager) Update(sess *Session, fn func(*Session)) bool {
	return m.store.Update(sess.ID, fn)
}

// Destroy drops the session, if any, and clears the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	if id, ok := m.sessionID(r); ok {
		m.store.Delete(id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := sessionIDFromToken(c.Value, m.secret)
	if err != nil {
		return "", false
	}
	return id, true
}
