package store

import "github.com/rcliao/assistant-memory/internal/model"

// ExportSession snapshots a session together with its linked contexts.
// Pure read; link entries pointing at evicted contexts are skipped.
func (s *Store) ExportSession(sessionID string) (model.SessionExport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.SessionExport{}, false
	}

	exp := model.SessionExport{
		Session:    *sess,
		ExportDate: s.now(),
		Version:    model.ExportVersion,
	}
	for _, id := range sess.LinkedContextIDs {
		if c, ok := s.contexts[id]; ok {
			exp.Contexts = append(exp.Contexts, *c)
		}
	}
	return exp, true
}

// ImportSession restores an exported session under a fresh id, never the
// exported one, and marks it active. The session keeps its exported
// metadata timestamps. Exported contexts are re-inserted through the
// normal add path, so each gets a fresh id and is subject to eviction like
// any other insert; the restored session's links are rewritten to the new
// ids, dropping any context that did not survive. A snapshot with an
// unknown version or no session is rejected with no mutation.
func (s *Store) ImportSession(exp model.SessionExport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exp.Version != model.ExportVersion || exp.Session.ID == "" {
		return false
	}

	newIDs := make(map[string]string, len(exp.Contexts))
	for _, c := range exp.Contexts {
		newIDs[c.ID] = s.addContextLocked(AddParams{
			Kind:     c.Kind,
			Title:    c.Title,
			Content:  c.Content,
			Tags:     c.Tags,
			Priority: c.Priority,
		})
	}

	sess := exp.Session
	sess.ID = s.newID()
	sess.IsActive = true
	var linked []string
	for _, old := range exp.Session.LinkedContextIDs {
		if id, ok := newIDs[old]; ok {
			if _, alive := s.contexts[id]; alive {
				linked = append(linked, id)
			}
		}
	}
	sess.LinkedContextIDs = linked

	s.sessions[sess.ID] = &sess
	s.sessionOrder = append(s.sessionOrder, sess.ID)
	s.activeSessionID = sess.ID

	s.save()
	return true
}
