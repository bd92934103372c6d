package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/rcliao/assistant-memory/internal/model"
)

func TestAddContextAssignsFields(t *testing.T) {
	s := newTestStore(t, Options{})

	id := s.AddContext(AddParams{
		Kind:     model.KindConversation,
		Title:    "standup notes",
		Content:  conversation("discussed the release"),
		Tags:     []string{"work", "work", ""},
		Priority: 4,
	})

	c, ok := s.FindContext(id)
	if !ok {
		t.Fatal("context not found after add")
	}
	if c.ID == "" {
		t.Error("expected non-empty id")
	}
	if c.AccessCount != 0 {
		t.Errorf("expected access count 0, got %d", c.AccessCount)
	}
	if len(c.Tags) != 1 || c.Tags[0] != "work" {
		t.Errorf("expected deduped tags, got %v", c.Tags)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.LastAccessed.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestEvictionKeepsTopScores(t *testing.T) {
	s := newTestStore(t, Options{MaxContexts: 3})

	a := s.AddContext(AddParams{Kind: model.KindConversation, Title: "A", Content: conversation("a"), Priority: 1})
	b := s.AddContext(AddParams{Kind: model.KindConversation, Title: "B", Content: conversation("b"), Priority: 5})
	c := s.AddContext(AddParams{Kind: model.KindConversation, Title: "C", Content: conversation("c"), Priority: 3})
	d := s.AddContext(AddParams{Kind: model.KindConversation, Title: "D", Content: conversation("d"), Priority: 2})

	if _, ok := s.FindContext(a); ok {
		t.Error("expected A(priority=1) to be evicted")
	}
	for _, id := range []string{b, c, d} {
		if _, ok := s.FindContext(id); !ok {
			t.Errorf("expected %s to survive", id)
		}
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	s := newTestStore(t, Options{MaxContexts: 5})

	for i := 0; i < 20; i++ {
		s.AddContext(AddParams{
			Kind:     model.KindConversation,
			Title:    fmt.Sprintf("note %d", i),
			Content:  conversation("x"),
			Priority: i % 10,
		})
		if n := len(s.ListContexts(ListParams{})); n > 5 {
			t.Fatalf("capacity exceeded after insert %d: %d contexts", i, n)
		}
	}
}

func TestEvictionCountsAccesses(t *testing.T) {
	s := newTestStore(t, Options{MaxContexts: 2})

	a := s.AddContext(AddParams{Kind: model.KindConversation, Title: "A", Content: conversation("a"), Priority: 2})
	b := s.AddContext(AddParams{Kind: model.KindConversation, Title: "B", Content: conversation("b"), Priority: 2})

	// Two updates push A's score to 4
	s.UpdateContext(a, UpdateParams{})
	s.UpdateContext(a, UpdateParams{})

	c := s.AddContext(AddParams{Kind: model.KindConversation, Title: "C", Content: conversation("c"), Priority: 3})

	if _, ok := s.FindContext(a); !ok {
		t.Error("expected accessed A (score 4) to survive")
	}
	if _, ok := s.FindContext(b); ok {
		t.Error("expected B (score 2) to be evicted")
	}
	if _, ok := s.FindContext(c); !ok {
		t.Error("expected C (score 3) to survive")
	}
}

func TestEvictionTieKeepsNewer(t *testing.T) {
	s := newTestStore(t, Options{MaxContexts: 1})

	old := s.AddContext(AddParams{Kind: model.KindConversation, Title: "old", Content: conversation("o"), Priority: 5})
	fresh := s.AddContext(AddParams{Kind: model.KindConversation, Title: "new", Content: conversation("n"), Priority: 5})

	if _, ok := s.FindContext(old); ok {
		t.Error("expected the older of two equal scores to be evicted")
	}
	if _, ok := s.FindContext(fresh); !ok {
		t.Error("expected the newer of two equal scores to survive")
	}
}

func TestUpdateContextAccessTracking(t *testing.T) {
	s := newTestStore(t, Options{})
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = fakeClock(start)

	id := s.AddContext(AddParams{Kind: model.KindUserPreference, Title: "editor", Content: model.Content{UserPreference: &model.UserPreferenceContent{Preference: "vim keys"}}, Priority: 6})

	title := "editor prefs"
	if !s.UpdateContext(id, UpdateParams{Title: &title}) {
		t.Fatal("expected update to find the context")
	}

	c, _ := s.FindContext(id)
	if c.AccessCount != 1 {
		t.Errorf("expected access count 1, got %d", c.AccessCount)
	}
	if c.Title != "editor prefs" {
		t.Errorf("title not updated: %q", c.Title)
	}
	if !c.LastAccessed.After(c.CreatedAt) {
		t.Error("expected lastAccessed to move past createdAt")
	}
	if !c.UpdatedAt.Equal(c.LastAccessed) {
		t.Error("expected updatedAt and lastAccessed to match on update")
	}

	s.UpdateContext(id, UpdateParams{})
	c, _ = s.FindContext(id)
	if c.AccessCount != 2 {
		t.Errorf("expected access count 2 after second update, got %d", c.AccessCount)
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	s := newTestStore(t, Options{})
	s.AddContext(AddParams{Kind: model.KindConversation, Title: "keep", Content: conversation("k"), Priority: 5})

	before := s.ListContexts(ListParams{})
	if s.UpdateContext("no-such-id", UpdateParams{}) {
		t.Error("expected update on missing id to report not found")
	}
	after := s.ListContexts(ListParams{})
	if len(before) != len(after) || before[0].AccessCount != after[0].AccessCount {
		t.Error("expected collection unchanged after missing update")
	}
}

func TestFindContextDoesNotBumpAccess(t *testing.T) {
	s := newTestStore(t, Options{})
	id := s.AddContext(AddParams{Kind: model.KindConversation, Title: "x", Content: conversation("x"), Priority: 1})

	s.FindContext(id)
	s.FindContext(id)
	c, _ := s.FindContext(id)
	if c.AccessCount != 0 {
		t.Errorf("reads must not bump access count, got %d", c.AccessCount)
	}
}

func TestListContextsFilters(t *testing.T) {
	s := newTestStore(t, Options{})
	s.AddContext(AddParams{Kind: model.KindCode, Title: "a", Content: model.Content{Code: &model.CodeContent{Snippet: "x"}}, Tags: []string{"deploy", "infra"}, Priority: 1})
	s.AddContext(AddParams{Kind: model.KindCode, Title: "b", Content: model.Content{Code: &model.CodeContent{Snippet: "y"}}, Tags: []string{"deploy"}, Priority: 1})
	s.AddContext(AddParams{Kind: model.KindWorkflow, Title: "c", Content: model.Content{Workflow: &model.WorkflowContent{Steps: []string{"z"}}}, Priority: 1})

	if n := len(s.ListContexts(ListParams{Kind: model.KindCode})); n != 2 {
		t.Errorf("expected 2 code contexts, got %d", n)
	}
	if n := len(s.ListContexts(ListParams{Tags: []string{"deploy", "infra"}})); n != 1 {
		t.Errorf("expected 1 context with both tags, got %d", n)
	}
	if n := len(s.ListContexts(ListParams{Limit: 2})); n != 2 {
		t.Errorf("expected limit to cap results, got %d", n)
	}
}

func TestGetActiveContexts(t *testing.T) {
	s := newTestStore(t, Options{})

	a := s.AddContext(AddParams{Kind: model.KindConversation, Title: "a", Content: conversation("a"), Priority: 1})
	b := s.AddContext(AddParams{Kind: model.KindConversation, Title: "b", Content: conversation("b"), Priority: 1})
	s.UpdateContext(b, UpdateParams{})

	// No active session: exactly the accessed contexts
	active := s.GetActiveContexts()
	if len(active) != 1 || active[0].ID != b {
		t.Fatalf("expected only the accessed context, got %v", active)
	}

	// With an active session: its linked contexts
	sessID := s.CreateSession("work", model.SessionProject)
	s.LinkContext(sessID, a)
	active = s.GetActiveContexts()
	if len(active) != 1 || active[0].ID != a {
		t.Fatalf("expected the linked context, got %v", active)
	}
}
