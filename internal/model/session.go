package model

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleAgent     Role = "agent"
)

// ValidRoles are the allowed message roles.
var ValidRoles = map[Role]bool{
	RoleUser:      true,
	RoleAssistant: true,
	RoleSystem:    true,
	RoleAgent:     true,
}

// SessionType classifies the scope of a chat session.
type SessionType string

const (
	SessionProject  SessionType = "project"
	SessionGlobal   SessionType = "global"
	SessionFile     SessionType = "file"
	SessionWorkflow SessionType = "workflow"
)

// ValidSessionTypes are the allowed session types.
var ValidSessionTypes = map[SessionType]bool{
	SessionProject:  true,
	SessionGlobal:   true,
	SessionFile:     true,
	SessionWorkflow: true,
}

// MessageMeta carries optional message annotations.
type MessageMeta struct {
	AgentID    string   `json:"agent_id,omitempty"`
	ContextIDs []string `json:"context_ids,omitempty"`
	File       string   `json:"file,omitempty"`
	Line       int      `json:"line,omitempty"`
}

// ChatMessage is a single turn in a session.
type ChatMessage struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Meta      *MessageMeta `json:"meta,omitempty"`
}

// ChatSession is an ordered conversation container linking messages and a
// subset of contexts. IsActive is a per-session flag; the process-wide
// active session is tracked separately by the store.
type ChatSession struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Messages         []ChatMessage `json:"messages"`
	LinkedContextIDs []string      `json:"linked_context_ids,omitempty"`
	SessionType      SessionType   `json:"session_type"`
	Tags             []string      `json:"tags,omitempty"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	LastActivity     time.Time     `json:"last_activity"`
}
