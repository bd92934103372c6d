package store

import (
	"testing"
	"time"

	"github.com/rcliao/assistant-memory/internal/model"
)

// memPersister keeps the last snapshot in memory and counts saves.
type memPersister struct {
	state model.State
	saves int
	held  bool
}

func (m *memPersister) Save(state model.State) error {
	m.state = state
	m.saves++
	m.held = true
	return nil
}

func (m *memPersister) Load() (model.State, bool, error) {
	return m.state, m.held, nil
}

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	s, err := New(nil, opts)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

// fakeClock returns a now func that advances one second per call.
func fakeClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func conversation(summary string) model.Content {
	return model.Content{Conversation: &model.ConversationContent{Summary: summary}}
}

func TestWriteThroughAndRehydrate(t *testing.T) {
	p := &memPersister{}
	s, err := New(p, Options{MaxContexts: 10, MaxSessions: 5})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	ctxID := s.AddContext(AddParams{Kind: model.KindCode, Title: "parser fix", Content: model.Content{Code: &model.CodeContent{Snippet: "return nil"}}, Priority: 7})
	sessID := s.CreateSession("Demo", model.SessionProject)
	s.AddMessage(sessID, MessageParams{Role: model.RoleUser, Content: "hi"})
	s.LinkContext(sessID, ctxID)

	if p.saves == 0 {
		t.Fatal("expected write-through saves")
	}

	// Reopen on the same persister
	s2, err := New(p, Options{})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	c, ok := s2.FindContext(ctxID)
	if !ok {
		t.Fatal("context not rehydrated")
	}
	if c.Title != "parser fix" || c.Priority != 7 {
		t.Errorf("context fields lost: %+v", c)
	}
	sess, ok := s2.GetSession(sessID)
	if !ok {
		t.Fatal("session not rehydrated")
	}
	if len(sess.Messages) != 1 || sess.Messages[0].Content != "hi" {
		t.Errorf("messages lost: %+v", sess.Messages)
	}
	if len(sess.LinkedContextIDs) != 1 || sess.LinkedContextIDs[0] != ctxID {
		t.Errorf("links lost: %v", sess.LinkedContextIDs)
	}
	if s2.ActiveSessionID() != sessID {
		t.Errorf("active session lost: %q", s2.ActiveSessionID())
	}

	// Persisted capacities win over defaults on reopen
	st := s2.Stats()
	if st.MaxContexts != 10 || st.MaxSessions != 5 {
		t.Errorf("capacities not rehydrated: %d/%d", st.MaxContexts, st.MaxSessions)
	}
}

func TestReopenWithOptionsReconfiguresCapacities(t *testing.T) {
	p := &memPersister{}
	s, err := New(p, Options{MaxContexts: 10, MaxSessions: 5})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	for i := 0; i < 4; i++ {
		s.CreateSession("s", model.SessionGlobal)
	}

	// Explicit options override the persisted capacities.
	s2, err := New(p, Options{MaxContexts: 20, MaxSessions: 2})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	st := s2.Stats()
	if st.MaxContexts != 20 || st.MaxSessions != 2 {
		t.Fatalf("options ignored on reopen: %d/%d", st.MaxContexts, st.MaxSessions)
	}

	// The shrunk capacity takes effect on cleanup.
	s2.Cleanup()
	if got := len(s2.ListSessions()); got != 2 {
		t.Errorf("expected 2 sessions after cleanup, got %d", got)
	}
}

func TestNilPersisterIsInMemory(t *testing.T) {
	s := newTestStore(t, Options{})
	id := s.AddContext(AddParams{Kind: model.KindSystem, Title: "theme", Content: model.Content{System: &model.SystemContent{Setting: "theme", Value: "dark"}}, Priority: 3})
	if _, ok := s.FindContext(id); !ok {
		t.Fatal("context not stored")
	}
}

func TestDefaultCapacities(t *testing.T) {
	s := newTestStore(t, Options{})
	st := s.Stats()
	if st.MaxContexts != DefaultMaxContexts {
		t.Errorf("expected max contexts %d, got %d", DefaultMaxContexts, st.MaxContexts)
	}
	if st.MaxSessions != DefaultMaxSessions {
		t.Errorf("expected max sessions %d, got %d", DefaultMaxSessions, st.MaxSessions)
	}
}
