// Package session owns the authenticated-operator state: the persisted
// credential pair, the in-memory profile, and the login/logout lifecycle
// every other component gates on.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/greencart/console/internal/api"
	"github.com/greencart/console/internal/db"
	"github.com/greencart/console/internal/fleet"
)

// Status is the session state machine.
type Status int

const (
	StatusAnonymous Status = iota
	StatusVerifying
	StatusAuthenticated
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusVerifying:
		return "verifying"
	case StatusAuthenticated:
		return "authenticated"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Manager is the single writer of the persisted credential. It implements
// oauth2.TokenSource so the API client reads the live credential on every
// request, and it registers itself as the client's unauthorized hook so any
// 401 anywhere forces a logout.
type Manager struct {
	gdb    *gorm.DB
	client *api.Client

	mu     sync.Mutex
	token  string
	user   *fleet.User
	status Status
	errMsg string

	resolveOnce sync.Once
	resolved    chan struct{}
}

// New wires a Manager to the state database and the API client.
func New(gdb *gorm.DB, client *api.Client) *Manager {
	m := &Manager{
		gdb:      gdb,
		client:   client,
		status:   StatusAnonymous,
		resolved: make(chan struct{}),
	}
	client.SetTokenSource(m)
	client.SetUnauthorizedHook(m.expire)
	return m
}

// Token implements oauth2.TokenSource. An empty access token means the
// request goes out anonymous.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &oauth2.Token{AccessToken: m.token}, nil
}

// Restore hydrates the session from the state file at startup. A cached pair
// is trusted optimistically while /auth/me confirms it; on any verification
// failure the persisted state is cleared and the session ends up anonymous.
// Restore never returns an error: a broken credential must not break startup.
func (m *Manager) Restore(ctx context.Context) {
	defer m.markResolved()

	token, userJSON, ok, err := db.LoadSession(m.gdb)
	if err != nil {
		log.Printf("session: restore: %v", err)
		return
	}
	if !ok {
		return
	}

	var cached fleet.User
	if err := json.Unmarshal([]byte(userJSON), &cached); err != nil {
		log.Printf("session: restore: corrupt cached profile: %v", err)
		m.clear()
		return
	}

	m.mu.Lock()
	m.token = token
	m.user = &cached
	m.status = StatusAuthenticated
	m.mu.Unlock()

	verified, err := m.client.Me(ctx)
	if err != nil {
		// The 401 path has already cleared state via the client hook;
		// clear again for transport failures. Either way, startup survives.
		log.Printf("session: verify cached credential: %v", err)
		m.clear()
		return
	}

	m.mu.Lock()
	m.user = &verified
	m.mu.Unlock()
}

// Login authenticates and persists the credential pair. A failed attempt
// leaves any previously persisted session untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (fleet.User, error) {
	m.mu.Lock()
	m.status = StatusVerifying
	m.errMsg = ""
	m.mu.Unlock()

	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		msg := api.Reason(err, "Login failed")
		m.mu.Lock()
		m.status = StatusFailed
		m.errMsg = msg
		m.mu.Unlock()
		return fleet.User{}, err
	}

	userJSON, err := json.Marshal(res.User)
	if err != nil {
		m.mu.Lock()
		m.status = StatusFailed
		m.errMsg = "Login failed"
		m.mu.Unlock()
		return fleet.User{}, fmt.Errorf("session: encode profile: %w", err)
	}
	if err := db.SaveSession(m.gdb, res.Token, string(userJSON)); err != nil {
		m.mu.Lock()
		m.status = StatusFailed
		m.errMsg = "Login failed"
		m.mu.Unlock()
		return fleet.User{}, err
	}

	u := res.User
	m.mu.Lock()
	m.token = res.Token
	m.user = &u
	m.status = StatusAuthenticated
	m.mu.Unlock()
	m.markResolved()
	return u, nil
}

// Logout clears the persisted pair and the in-memory session. It never calls
// the server.
func (m *Manager) Logout() {
	m.clear()
}

// expire is the unauthorized hook: identical to Logout but records why, so
// the next view can show "session expired" instead of nothing.
func (m *Manager) expire() {
	m.clear()
	m.mu.Lock()
	m.errMsg = "Session expired, please log in again"
	m.mu.Unlock()
}

func (m *Manager) clear() {
	if err := db.ClearSession(m.gdb); err != nil {
		log.Printf("session: %v", err)
	}
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.status = StatusAnonymous
	m.errMsg = ""
	m.mu.Unlock()
}

// Current returns the profile (nil when anonymous), status, and the last
// error message.
func (m *Manager) Current() (*fleet.User, Status, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.status, m.errMsg
}

// Authenticated reports whether a confirmed or optimistically restored
// session is active.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusAuthenticated
}

// Resolved returns a channel closed once the initial Restore has finished
// (or a login completed first). The route guard renders a neutral
// placeholder until then.
func (m *Manager) Resolved() <-chan struct{} {
	return m.resolved
}

func (m *Manager) markResolved() {
	m.resolveOnce.Do(func() { close(m.resolved) })
}
