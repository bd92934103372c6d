package model

import "time"

// State is the durable snapshot of the whole store. Contexts and sessions
// are kept in insertion order so a rehydrated store iterates the same way
// the original did.
type State struct {
	Contexts        []MemoryContext `json:"contexts"`
	Sessions        []ChatSession   `json:"sessions"`
	ActiveSessionID string          `json:"active_session_id,omitempty"`
	MaxContexts     int             `json:"max_contexts"`
	MaxSessions     int             `json:"max_sessions"`
}

// ExportVersion is the current session export format version.
const ExportVersion = "1.0"

// SessionExport is a portable snapshot of one session plus the contexts
// linked to it.
type SessionExport struct {
	Session    ChatSession     `json:"session"`
	Contexts   []MemoryContext `json:"contexts,omitempty"`
	ExportDate time.Time       `json:"export_date"`
	Version    string          `json:"version"`
}
