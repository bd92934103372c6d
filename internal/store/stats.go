package store

import "github.com/rcliao/assistant-memory/internal/model"

// Stats summarizes the store's occupancy.
type Stats struct {
	Contexts        int                `json:"contexts"`
	MaxContexts     int                `json:"max_contexts"`
	Sessions        int                `json:"sessions"`
	MaxSessions     int                `json:"max_sessions"`
	Messages        int                `json:"messages"`
	ActiveSessionID string             `json:"active_session_id,omitempty"`
	ContextsByKind  map[model.Kind]int `json:"contexts_by_kind,omitempty"`
}

// Stats returns current counts and configured capacities.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Contexts:        len(s.contextOrder),
		MaxContexts:     s.maxContexts,
		Sessions:        len(s.sessionOrder),
		MaxSessions:     s.maxSessions,
		ActiveSessionID: s.activeSessionID,
	}
	if len(s.contexts) > 0 {
		st.ContextsByKind = make(map[model.Kind]int)
		for _, c := range s.contexts {
			st.ContextsByKind[c.Kind]++
		}
	}
	for _, sess := range s.sessions {
		st.Messages += len(sess.Messages)
	}
	return st
}
