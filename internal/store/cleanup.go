package store

import "sort"

// Cleanup truncates both collections to their configured maxima: contexts
// by descending retention score (same ranking as eviction), sessions by
// descending last activity. The two truncations are independent. Dropping
// a session drops its messages with it; if the active session is dropped
// the active session id is cleared.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false

	if len(s.contextOrder) > s.maxContexts {
		s.evictLocked()
		changed = true
	}

	if len(s.sessionOrder) > s.maxSessions {
		ranked := make([]string, len(s.sessionOrder))
		copy(ranked, s.sessionOrder)
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := s.sessions[ranked[i]], s.sessions[ranked[j]]
			if !a.LastActivity.Equal(b.LastActivity) {
				return a.LastActivity.After(b.LastActivity)
			}
			return a.ID > b.ID
		})
		for _, id := range ranked[s.maxSessions:] {
			s.removeSessionLocked(id)
			if s.activeSessionID == id {
				s.activeSessionID = ""
			}
		}
		changed = true
	}

	if changed {
		s.save()
	}
}
