// Package store implements the in-memory context repository and session
// manager with write-through persistence to an injected durable port.
package store

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/assistant-memory/internal/model"
)

// Capacity defaults, applied when Options leave them unset.
const (
	DefaultMaxContexts = 1000
	DefaultMaxSessions = 50
)

// Persister is the durable-storage port. Save receives a full snapshot
// after every mutation; Load runs once when the store is opened.
type Persister interface {
	Save(state model.State) error

	// Load returns the last saved snapshot. ok is false when no snapshot
	// exists yet, which is not an error.
	Load() (state model.State, ok bool, err error)
}

// Options configures a Store.
type Options struct {
	MaxContexts int
	MaxSessions int
}

// Store holds contexts and sessions in memory and writes through to a
// Persister after every mutation. A single exclusive lock serializes all
// operations, so every public method is an atomic read-modify-write.
type Store struct {
	mu sync.Mutex

	contexts     map[string]*model.MemoryContext
	contextOrder []string // insertion order; search ties stay in this order
	sessions     map[string]*model.ChatSession
	sessionOrder []string

	activeSessionID string
	maxContexts     int
	maxSessions     int

	persister Persister
	entropy   io.Reader
	now       func() time.Time
}

// New opens a store, rehydrating from the persister if it holds a snapshot.
// A nil persister gives a purely in-memory store.
func New(p Persister, opts Options) (*Store, error) {
	s := &Store{
		contexts:    make(map[string]*model.MemoryContext),
		sessions:    make(map[string]*model.ChatSession),
		maxContexts: DefaultMaxContexts,
		maxSessions: DefaultMaxSessions,
		persister:   p,
		entropy:     ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:         time.Now,
	}
	if p != nil {
		state, ok, err := p.Load()
		if err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
		if ok {
			s.rehydrate(state)
		}
	}

	// Explicit options win over the persisted capacities so a store can be
	// reconfigured on reopen.
	if opts.MaxContexts > 0 {
		s.maxContexts = opts.MaxContexts
	}
	if opts.MaxSessions > 0 {
		s.maxSessions = opts.MaxSessions
	}
	return s, nil
}

// rehydrate restores a persisted snapshot. Persisted capacities apply only
// when the caller left the corresponding option unset.
func (s *Store) rehydrate(state model.State) {
	for i := range state.Contexts {
		c := state.Contexts[i]
		s.contexts[c.ID] = &c
		s.contextOrder = append(s.contextOrder, c.ID)
	}
	for i := range state.Sessions {
		sess := state.Sessions[i]
		s.sessions[sess.ID] = &sess
		s.sessionOrder = append(s.sessionOrder, sess.ID)
	}
	s.activeSessionID = state.ActiveSessionID
	if state.MaxContexts > 0 {
		s.maxContexts = state.MaxContexts
	}
	if state.MaxSessions > 0 {
		s.maxSessions = state.MaxSessions
	}
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// save flushes the current state through the persister. The in-memory
// mutation is already applied and is the source of truth; a failed write is
// logged, never surfaced to the caller.
func (s *Store) save() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.snapshotLocked()); err != nil {
		log.Printf("assistant-memory: persist failed: %v", err)
	}
}

func (s *Store) snapshotLocked() model.State {
	state := model.State{
		ActiveSessionID: s.activeSessionID,
		MaxContexts:     s.maxContexts,
		MaxSessions:     s.maxSessions,
	}
	for _, id := range s.contextOrder {
		state.Contexts = append(state.Contexts, *s.contexts[id])
	}
	for _, id := range s.sessionOrder {
		state.Sessions = append(state.Sessions, *s.sessions[id])
	}
	return state
}

// ActiveSessionID returns the process-wide active session id, "" if none.
func (s *Store) ActiveSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSessionID
}

// normalizeTags dedupes tags preserving first appearance and dropping
// empties. Tags behave as a set; order only matters for display.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// unionStrings returns the union of a and b, a's order first.
func unionStrings(a, b []string) []string {
	return normalizeTags(append(append([]string{}, a...), b...))
}
