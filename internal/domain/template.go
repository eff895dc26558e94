package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// WorkoutTemplate is a reusable free-text workout write-up.
// Templates are created or deleted, never edited.
type WorkoutTemplate struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ParseTags splits a comma-separated list into trimmed, non-empty tags.
// Case and duplicates are preserved as typed.
func ParseTags(csv string) []string {
	tags := lo.Map(strings.Split(csv, ","), func(t string, _ int) string { return strings.TrimSpace(t) })
	return lo.Compact(tags)
}

// NewTemplate validates the form and builds a template.
func NewTemplate(title, content, tagsCSV string, now time.Time) (*WorkoutTemplate, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content is required")
	}
	return &WorkoutTemplate{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      ParseTags(tagsCSV),
		CreatedAt: now.UTC(),
	}, nil
}

// MatchesQuery reports whether t matches a library search. Title and content
// are matched against the whole lowercased query; tags against the query with
// a leading '#' removed. All tests are unanchored substring checks.
func (t WorkoutTemplate) MatchesQuery(query string) bool {
	term := strings.ToLower(query)
	tagTerm := strings.TrimPrefix(term, "#")

	if strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Content), term) {
		return true
	}
	return lo.SomeBy(t.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), tagTerm)
	})
}

// FilterTemplates keeps the templates matching query, preserving order.
func FilterTemplates(templates []WorkoutTemplate, query string) []WorkoutTemplate {
	return lo.Filter(templates, func(t WorkoutTemplate, _ int) bool { return t.MatchesQuery(query) })
}
