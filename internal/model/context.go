// Package model defines the core context and session data types.
package model

import (
	"strings"
	"time"
)

// Kind classifies what a memory context holds.
type Kind string

const (
	KindConversation   Kind = "conversation"
	KindCode           Kind = "code"
	KindWorkflow       Kind = "workflow"
	KindSystem         Kind = "system"
	KindUserPreference Kind = "user_preference"
)

// ValidKinds are the allowed context kinds.
var ValidKinds = map[Kind]bool{
	KindConversation:   true,
	KindCode:           true,
	KindWorkflow:       true,
	KindSystem:         true,
	KindUserPreference: true,
}

// MemoryContext is a durable, taggable memory record independent of any
// particular session. Priority is caller-supplied and stored as given;
// the expected range is 1-10 but it is not clamped here.
type MemoryContext struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	Content      Content   `json:"content"`
	Tags         []string  `json:"tags,omitempty"`
	Priority     int       `json:"priority"`
	AccessCount  int       `json:"access_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Score is the retention score used by eviction and cleanup.
func (m *MemoryContext) Score() int {
	return m.Priority + m.AccessCount
}

// Content is the kind-dependent payload of a context. Exactly one field is
// expected to be set, matching the context's Kind.
type Content struct {
	Conversation   *ConversationContent   `json:"conversation,omitempty"`
	Code           *CodeContent           `json:"code,omitempty"`
	Workflow       *WorkflowContent       `json:"workflow,omitempty"`
	System         *SystemContent         `json:"system,omitempty"`
	UserPreference *UserPreferenceContent `json:"user_preference,omitempty"`
}

// ConversationContent summarizes a stretch of dialogue worth remembering.
type ConversationContent struct {
	Summary  string   `json:"summary"`
	Excerpts []string `json:"excerpts,omitempty"`
}

// CodeContent records a code snippet with its origin.
type CodeContent struct {
	Language string `json:"language,omitempty"`
	File     string `json:"file,omitempty"`
	Snippet  string `json:"snippet"`
}

// WorkflowContent records the steps of a saved workflow.
type WorkflowContent struct {
	Steps []string `json:"steps"`
}

// SystemContent records a system-level setting or observation.
type SystemContent struct {
	Setting string `json:"setting"`
	Value   string `json:"value"`
}

// UserPreferenceContent records a stated user preference.
type UserPreferenceContent struct {
	Preference string `json:"preference"`
}

// Text flattens the payload into a single string for substring search.
func (c Content) Text() string {
	var parts []string
	if c.Conversation != nil {
		parts = append(parts, c.Conversation.Summary)
		parts = append(parts, c.Conversation.Excerpts...)
	}
	if c.Code != nil {
		parts = append(parts, c.Code.Language, c.Code.File, c.Code.Snippet)
	}
	if c.Workflow != nil {
		parts = append(parts, c.Workflow.Steps...)
	}
	if c.System != nil {
		parts = append(parts, c.System.Setting, c.System.Value)
	}
	if c.UserPreference != nil {
		parts = append(parts, c.UserPreference.Preference)
	}
	return strings.Join(parts, "\n")
}
