package store

import (
	"sort"

	"github.com/rcliao/assistant-memory/internal/model"
)

// AddParams holds the caller-supplied fields for a new context.
type AddParams struct {
	Kind     model.Kind
	Title    string
	Content  model.Content
	Tags     []string
	Priority int
}

// AddContext inserts a new context and applies the eviction policy if the
// repository now exceeds its capacity. It always succeeds and returns the
// new id.
func (s *Store) AddContext(p AddParams) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.addContextLocked(p)
	s.save()
	return id
}

func (s *Store) addContextLocked(p AddParams) string {
	now := s.now()
	c := &model.MemoryContext{
		ID:           s.newID(),
		Kind:         p.Kind,
		Title:        p.Title,
		Content:      p.Content,
		Tags:         normalizeTags(p.Tags),
		Priority:     p.Priority,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastAccessed: now,
	}
	s.contexts[c.ID] = c
	s.contextOrder = append(s.contextOrder, c.ID)
	s.evictLocked()
	return c.ID
}

// evictLocked retains the top maxContexts contexts by priority+accessCount
// and discards the rest. Equal scores are broken by id descending: ULIDs
// sort by creation time, so the older context is evicted first.
func (s *Store) evictLocked() {
	if len(s.contextOrder) <= s.maxContexts {
		return
	}

	ranked := make([]string, len(s.contextOrder))
	copy(ranked, s.contextOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := s.contexts[ranked[i]], s.contexts[ranked[j]]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		return a.ID > b.ID
	})

	dropped := make(map[string]bool)
	for _, id := range ranked[s.maxContexts:] {
		dropped[id] = true
		delete(s.contexts, id)
	}
	kept := s.contextOrder[:0]
	for _, id := range s.contextOrder {
		if !dropped[id] {
			kept = append(kept, id)
		}
	}
	s.contextOrder = kept
}

// UpdateParams carries partial updates; nil fields are left unchanged.
type UpdateParams struct {
	Title    *string
	Content  *model.Content
	Tags     []string
	Priority *int
}

// UpdateContext applies updates to an existing context, increments its
// access count by one, and refreshes updatedAt and lastAccessed. A missing
// id is a silent no-op; the return value reports whether anything changed.
func (s *Store) UpdateContext(id string, p UpdateParams) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contexts[id]
	if !ok {
		return false
	}

	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.Tags != nil {
		c.Tags = normalizeTags(p.Tags)
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}

	now := s.now()
	c.UpdatedAt = now
	c.LastAccessed = now
	c.AccessCount++

	s.save()
	return true
}

// FindContext returns the context with the given id. Reads do not touch
// access tracking; only updates do.
func (s *Store) FindContext(id string) (model.MemoryContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contexts[id]
	if !ok {
		return model.MemoryContext{}, false
	}
	return *c, true
}

// ListParams holds filters for listing contexts.
type ListParams struct {
	Kind  model.Kind
	Tags  []string
	Limit int
}

// ListContexts returns contexts in insertion order, filtered by kind and
// tags (every given tag must be present).
func (s *Store) ListContexts(p ListParams) []model.MemoryContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.MemoryContext
	for _, id := range s.contextOrder {
		c := s.contexts[id]
		if p.Kind != "" && c.Kind != p.Kind {
			continue
		}
		if !hasAllTags(c.Tags, p.Tags) {
			continue
		}
		out = append(out, *c)
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
	}
	return out
}

// GetActiveContexts returns the contexts linked to the active session. With
// no active session set it falls back to every context that has been
// touched at least once (accessCount > 0).
func (s *Store) GetActiveContexts() []model.MemoryContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[s.activeSessionID]; ok {
		var out []model.MemoryContext
		for _, id := range sess.LinkedContextIDs {
			if c, ok := s.contexts[id]; ok {
				out = append(out, *c)
			}
		}
		return out
	}

	var out []model.MemoryContext
	for _, id := range s.contextOrder {
		if c := s.contexts[id]; c.AccessCount > 0 {
			out = append(out, *c)
		}
	}
	return out
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
