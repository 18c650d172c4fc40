package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/pkg/kvstore"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one user's GM run: its own ledger, its own cap, thrown
// away when the session ends. Handlers pass sessions around by id,
// never through package state.
type Session struct {
	ID     string
	UserID int
	Ledger *Ledger

	mu               sync.Mutex
	cancelProjection context.CancelFunc
}

func NewSession(userID int, cap float64, byID map[string]pool.Player) *Session {
	return &Session{
		ID:     generateSessionID(),
		UserID: userID,
		Ledger: NewLedger(cap, byID),
	}
}

// BeginProjection hands out a context for a fit+score run, cancelling
// whichever run was previously in flight so a new request supersedes a
// stale one instead of queueing behind it.
func (s *Session) BeginProjection(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelProjection != nil {
		s.cancelProjection()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancelProjection = cancel
	return ctx
}

func generateSessionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	rand.Seed(uint64(time.Now().UnixNano()))
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Manager owns the live sessions. Mutations take the session lock so
// the budget check-then-commit is atomic per session; different
// sessions never contend.
type Manager struct {
	KV        kvstore.KVStore
	DB        *gorm.DB
	Pool      *pool.Service
	SalaryCap float64

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(kv kvstore.KVStore, db *gorm.DB, poolSvc *pool.Service, salaryCap float64) *Manager {
	return &Manager{
		KV:        kv,
		DB:        db,
		Pool:      poolSvc,
		SalaryCap: salaryCap,
		sessions:  make(map[string]*Session),
	}
}

// Create starts a fresh session for the user over the current pool.
func (m *Manager) Create(userID int) (*Session, error) {
	players, err := m.Pool.LoadPlayers()
	if err != nil {
		return nil, err
	}

	session := NewSession(userID, m.SalaryCap, pool.ByID(players))

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	if m.DB != nil {
		err = m.DB.Exec("INSERT INTO roster_sessions (session_id, user_id, salary_cap, created_at) VALUES (?, ?, ?, ?)",
			session.ID, userID, m.SalaryCap, time.Now()).Error
		if err != nil {
			return nil, fmt.Errorf("error recording session: %v", err)
		}
	}

	return session, nil
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close drops the session and its cached roster snapshot.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	if m.KV != nil {
		if err := m.KV.Delete("roster_" + session.ID); err != nil {
			return err
		}
	}
	return nil
}

// AddPlayer applies an add command to the session's ledger, then
// records the event and refreshes the roster snapshot in cache.
func (m *Manager) AddPlayer(sessionID, playerID string) (*Session, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	err = session.Ledger.Add(playerID)
	session.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := m.recordEvent(session, playerID, "add"); err != nil {
		return nil, err
	}
	return session, nil
}

// RemovePlayer applies a remove command to the session's ledger.
func (m *Manager) RemovePlayer(sessionID, playerID string) (*Session, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	err = session.Ledger.Remove(playerID)
	session.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := m.recordEvent(session, playerID, "remove"); err != nil {
		return nil, err
	}
	return session, nil
}

func (m *Manager) recordEvent(session *Session, playerID, action string) error {
	if m.DB != nil {
		err := m.DB.Exec("INSERT INTO roster_events (event_id, session_id, player_id, action, remaining_budget, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), session.ID, playerID, action, session.Ledger.Remaining(), time.Now()).Error
		if err != nil {
			return fmt.Errorf("error recording roster event: %v", err)
		}
	}

	if m.KV != nil {
		members := session.Ledger.Members()
		ids := make([]string, 0, len(members))
		for _, p := range members {
			ids = append(ids, p.PlayerID)
		}
		snapshot, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		if err := m.KV.Set("roster_"+session.ID, string(snapshot)); err != nil {
			return fmt.Errorf("error caching roster: %v", err)
		}
	}
	return nil
}
