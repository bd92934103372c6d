// Package cluster groups related contexts for display. It is a read-only
// view over a context snapshot and never mutates the store.
package cluster

import (
	"strings"

	"github.com/rcliao/assistant-memory/internal/model"
)

// Cluster is one display group of related contexts. Label is the title of
// the context that seeded the group.
type Cluster struct {
	Label    string                `json:"label"`
	Contexts []model.MemoryContext `json:"contexts"`
}

// Related reports whether two contexts belong in the same display group:
// they share a tag, have the same kind, or one title is a case-insensitive
// substring of the other.
func Related(a, b model.MemoryContext) bool {
	for _, ta := range a.Tags {
		for _, tb := range b.Tags {
			if ta == tb {
				return true
			}
		}
	}
	if a.Kind == b.Kind {
		return true
	}
	at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if at == "" || bt == "" {
		return false
	}
	return strings.Contains(at, bt) || strings.Contains(bt, at)
}

// Group partitions contexts greedily in a single pass: each unassigned
// context seeds a cluster and pulls in every later unassigned context
// matching Related. Matches are not re-checked transitively, so grouping
// depends on input order; it is a display aid, not a stable identifier.
func Group(contexts []model.MemoryContext) []Cluster {
	assigned := make([]bool, len(contexts))
	var clusters []Cluster

	for i, seed := range contexts {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		c := Cluster{Label: seed.Title, Contexts: []model.MemoryContext{seed}}
		for j := i + 1; j < len(contexts); j++ {
			if assigned[j] {
				continue
			}
			if Related(seed, contexts[j]) {
				assigned[j] = true
				c.Contexts = append(c.Contexts, contexts[j])
			}
		}
		clusters = append(clusters, c)
	}
	return clusters
}
