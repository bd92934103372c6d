package store

import (
	"sort"
	"strings"
	"time"

	"github.com/rcliao/assistant-memory/internal/model"
)

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 10

// SearchResult pairs a context with its computed relevance. MatchedTerms
// are the whitespace-split query tokens that hit the title or a tag;
// content matches deliberately do not contribute (display affordance only).
type SearchResult struct {
	Context      model.MemoryContext `json:"context"`
	Relevance    int                 `json:"relevance"`
	MatchedTerms []string            `json:"matched_terms,omitempty"`
}

// Search ranks contexts against a free-text query. Relevance is the sum of
// 3 for a title match, 2 for a content match, 1 for a tag match (all
// case-insensitive substring), a recency bonus, and the context priority.
// Zero-relevance contexts are excluded; since priority is normally >= 1,
// a text mismatch alone never excludes a context. Ties keep insertion
// order. This is a full linear scan, fine for the bounded capacity.
func (s *Store) Search(query string, limit int) []SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	terms := strings.Fields(q)
	now := s.now()

	var results []SearchResult
	for _, id := range s.contextOrder {
		c := s.contexts[id]
		title := strings.ToLower(c.Title)

		relevance := 0
		if q != "" {
			if strings.Contains(title, q) {
				relevance += 3
			}
			if strings.Contains(strings.ToLower(c.Content.Text()), q) {
				relevance += 2
			}
			for _, tag := range c.Tags {
				if strings.Contains(strings.ToLower(tag), q) {
					relevance++
					break
				}
			}
		}
		relevance += recencyBonus(now, c.LastAccessed)
		relevance += c.Priority
		if relevance <= 0 {
			continue
		}

		var matched []string
		for _, term := range terms {
			if strings.Contains(title, term) {
				matched = append(matched, term)
				continue
			}
			for _, tag := range c.Tags {
				if strings.Contains(strings.ToLower(tag), term) {
					matched = append(matched, term)
					break
				}
			}
		}

		results = append(results, SearchResult{
			Context:      *c,
			Relevance:    relevance,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// recencyBonus rewards recently touched contexts: 10 points fading to 0
// over ten whole days since last access.
func recencyBonus(now, lastAccessed time.Time) int {
	days := int(now.Sub(lastAccessed).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days >= 10 {
		return 0
	}
	return 10 - days
}
