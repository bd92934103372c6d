package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/rcliao/assistant-memory/internal/model"
)

// CreateSession creates an empty session of the given type (global when
// empty), marks it active both on the session and process-wide, and
// returns its id.
func (s *Store) CreateSession(title string, sessionType model.SessionType) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionType == "" {
		sessionType = model.SessionGlobal
	}
	now := s.now()
	sess := &model.ChatSession{
		ID:           s.newID(),
		Title:        title,
		SessionType:  sessionType,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActivity: now,
	}
	s.sessions[sess.ID] = sess
	s.sessionOrder = append(s.sessionOrder, sess.ID)
	s.activeSessionID = sess.ID

	s.save()
	return sess.ID
}

// MessageParams holds the caller-supplied fields for a new message.
type MessageParams struct {
	Role    model.Role
	Content string
	Meta    *model.MessageMeta
}

// AddMessage appends a message to a session and refreshes its activity
// timestamps. A missing session id is a silent no-op; the return value
// reports whether the session existed.
func (s *Store) AddMessage(sessionID string, p MessageParams) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}

	now := s.now()
	sess.Messages = append(sess.Messages, model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      p.Role,
		Content:   p.Content,
		Timestamp: now,
		Meta:      p.Meta,
	})
	sess.UpdatedAt = now
	sess.LastActivity = now

	s.save()
	return true
}

// GetHistory returns the ordered messages of a session, empty if absent.
func (s *Store) GetHistory(sessionID string) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]model.ChatMessage, len(sess.Messages))
	copy(out, sess.Messages)
	return out
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(sessionID string) (model.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.ChatSession{}, false
	}
	return *sess, true
}

// ListSessions returns all sessions in insertion order.
func (s *Store) ListSessions() []model.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ChatSession
	for _, id := range s.sessionOrder {
		out = append(out, *s.sessions[id])
	}
	return out
}

// SetActiveSession unconditionally records the process-wide active session
// id. No existence check is performed: an id that is not (or not yet) in
// the session collection is accepted as given.
func (s *Store) SetActiveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeSessionID = sessionID
	s.save()
}

// DeleteSession removes a session. If it was the active session, the
// active session id is cleared. Returns whether the session existed.
func (s *Store) DeleteSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	s.removeSessionLocked(sessionID)
	if s.activeSessionID == sessionID {
		s.activeSessionID = ""
	}

	s.save()
	return true
}

func (s *Store) removeSessionLocked(sessionID string) {
	delete(s.sessions, sessionID)
	for i, id := range s.sessionOrder {
		if id == sessionID {
			s.sessionOrder = append(s.sessionOrder[:i], s.sessionOrder[i+1:]...)
			break
		}
	}
}

// MergeSessions folds the source session into the target: messages are
// concatenated and re-sorted by timestamp ascending (duplicates are kept),
// linked context ids and tags are set unions. The source is removed and
// the target becomes the active session. A no-op returning false unless
// both sessions exist and differ.
func (s *Store) MergeSessions(sourceID, targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sessions[sourceID]
	if !ok {
		return false
	}
	tgt, ok := s.sessions[targetID]
	if !ok || sourceID == targetID {
		return false
	}

	merged := make([]model.ChatMessage, 0, len(tgt.Messages)+len(src.Messages))
	merged = append(merged, tgt.Messages...)
	merged = append(merged, src.Messages...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})
	tgt.Messages = merged
	tgt.LinkedContextIDs = unionStrings(tgt.LinkedContextIDs, src.LinkedContextIDs)
	tgt.Tags = unionStrings(tgt.Tags, src.Tags)

	now := s.now()
	tgt.UpdatedAt = now
	tgt.LastActivity = now

	s.removeSessionLocked(sourceID)
	s.activeSessionID = targetID

	s.save()
	return true
}

// TagSession adds tags to a session (set semantics).
func (s *Store) TagSession(sessionID string, tags []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.Tags = unionStrings(sess.Tags, tags)
	sess.UpdatedAt = s.now()

	s.save()
	return true
}

// LinkContext associates a context with a session. Both must exist.
func (s *Store) LinkContext(sessionID, contextID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	if _, ok := s.contexts[contextID]; !ok {
		return false
	}
	sess.LinkedContextIDs = unionStrings(sess.LinkedContextIDs, []string{contextID})
	sess.UpdatedAt = s.now()

	s.save()
	return true
}

// UnlinkContext removes a context association from a session.
func (s *Store) UnlinkContext(sessionID, contextID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	for i, id := range sess.LinkedContextIDs {
		if id == contextID {
			sess.LinkedContextIDs = append(sess.LinkedContextIDs[:i], sess.LinkedContextIDs[i+1:]...)
			sess.UpdatedAt = s.now()
			s.save()
			return true
		}
	}
	return false
}
