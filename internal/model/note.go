package model

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTitle is returned when a note's title is empty after trimming.
var ErrEmptyTitle = errors.New("note title cannot be empty")

// Note represents a single text note with metadata.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     Color     `json:"color"`
	Pinned    bool      `json:"isPinned"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNoteParams holds parameters for creating a new Note.
type NewNoteParams struct {
	Title   string
	Content string
	Color   Color
	Tags    []string
}

// NewNote creates a Note with generated UUID and timestamps.
// Returns ErrEmptyTitle if the title is empty after trimming.
func NewNote(params NewNoteParams) (Note, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return Note{}, ErrEmptyTitle
	}

	color := params.Color
	if !color.Valid() {
		color = ColorDefault
	}

	now := time.Now()
	return Note{
		ID:        GenerateUUID(),
		Title:     title,
		Content:   params.Content,
		Color:     color,
		Tags:      NormalizeTags(params.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NotePatch holds optional field updates for a Note.
// Nil fields are left unchanged; a nil Tags slice means "keep current tags".
type NotePatch struct {
	Title   *string
	Content *string
	Color   *Color
	Tags    []string
}

// WithUpdate returns a copy of the note with the patch applied and
// UpdatedAt advanced. ID and CreatedAt are never touched.
// Returns ErrEmptyTitle if a patched title trims to empty.
func (n Note) WithUpdate(patch NotePatch) (Note, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Note{}, ErrEmptyTitle
		}
		n.Title = title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Color != nil {
		color := *patch.Color
		if !color.Valid() {
			color = ColorDefault
		}
		n.Color = color
	}
	if patch.Tags != nil {
		n.Tags = NormalizeTags(patch.Tags)
	}

	n.UpdatedAt = time.Now()
	return n, nil
}

// WithPinToggled returns a copy of the note with the pinned flag flipped
// and UpdatedAt advanced.
func (n Note) WithPinToggled() Note {
	n.Pinned = !n.Pinned
	n.UpdatedAt = time.Now()
	return n
}

// Matches reports whether the term occurs in the title, content or any tag,
// case-insensitively. An empty term matches every note.
func (n Note) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, tag := range n.Tags {
		// Tags are stored lowercase
		if strings.Contains(tag, term) {
			return true
		}
	}
	return false
}

// HasTag reports whether the note carries the given tag (case-insensitive).
func (n Note) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of the note with its own tag slice, so callers can
// hold it without aliasing the collection's state.
func (n Note) Clone() Note {
	tags := make([]string, len(n.Tags))
	copy(tags, n.Tags)
	n.Tags = tags
	return n
}

// NormalizeTags lowercases and trims tags, drops empties, and removes
// duplicates while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	result := []string{}
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
