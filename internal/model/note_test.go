package model

import (
	"testing"
	"time"
)

func TestNewNote(t *testing.T) {
	note, err := NewNote(NewNoteParams{
		Title:   "Shopping list",
		Content: "milk, eggs",
		Color:   ColorGreen,
		Tags:    []string{"Home", "errands"},
	})
	if err != nil {
		t.Fatalf("NewNote failed: %v", err)
	}

	if note.ID == "" {
		t.Error("expected generated ID")
	}
	if note.Title != "Shopping list" {
		t.Errorf("expected title 'Shopping list', got %q", note.Title)
	}
	if note.Color != ColorGreen {
		t.Errorf("expected color green, got %q", note.Color)
	}
	if note.Pinned {
		t.Error("new note should not be pinned")
	}
	if !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Error("expected CreatedAt == UpdatedAt on a new note")
	}
	if len(note.Tags) != 2 || note.Tags[0] != "home" || note.Tags[1] != "errands" {
		t.Errorf("expected normalized tags [home errands], got %v", note.Tags)
	}
}

func TestNewNote_TrimsTitle(t *testing.T) {
	note, err := NewNote(NewNoteParams{Title: "  padded  "})
	if err != nil {
		t.Fatalf("NewNote failed: %v", err)
	}
	if note.Title != "padded" {
		t.Errorf("expected trimmed title, got %q", note.Title)
	}
}

func TestNewNote_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := NewNote(NewNoteParams{Title: title}); err != ErrEmptyTitle {
			t.Errorf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestNewNote_InvalidColorFallsBack(t *testing.T) {
	note, err := NewNote(NewNoteParams{Title: "x", Color: Color("magenta")})
	if err != nil {
		t.Fatalf("NewNote failed: %v", err)
	}
	if note.Color != ColorDefault {
		t.Errorf("expected default color for invalid input, got %q", note.Color)
	}
}

func TestWithUpdate(t *testing.T) {
	note, _ := NewNote(NewNoteParams{Title: "old", Content: "body"})
	created := note.CreatedAt

	newTitle := "new"
	newContent := "updated body"
	updated, err := note.WithUpdate(NotePatch{Title: &newTitle, Content: &newContent})
	if err != nil {
		t.Fatalf("WithUpdate failed: %v", err)
	}

	if updated.Title != "new" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if updated.Content != "updated body" {
		t.Errorf("expected updated content, got %q", updated.Content)
	}
	if updated.ID != note.ID {
		t.Error("update must not change the ID")
	}
	if !updated.CreatedAt.Equal(created) {
		t.Error("update must not change CreatedAt")
	}
	if updated.UpdatedAt.Before(note.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestWithUpdate_NilFieldsUnchanged(t *testing.T) {
	note, _ := NewNote(NewNoteParams{
		Title:   "keep",
		Content: "keep this",
		Color:   ColorBlue,
		Tags:    []string{"work"},
	})

	updated, err := note.WithUpdate(NotePatch{})
	if err != nil {
		t.Fatalf("WithUpdate failed: %v", err)
	}
	if updated.Title != "keep" || updated.Content != "keep this" || updated.Color != ColorBlue {
		t.Error("empty patch must leave fields unchanged")
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "work" {
		t.Errorf("nil Tags must keep current tags, got %v", updated.Tags)
	}
}

func TestWithUpdate_EmptyTitleRejected(t *testing.T) {
	note, _ := NewNote(NewNoteParams{Title: "valid"})

	empty := "   "
	if _, err := note.WithUpdate(NotePatch{Title: &empty}); err != ErrEmptyTitle {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestWithUpdate_ClearTags(t *testing.T) {
	note, _ := NewNote(NewNoteParams{Title: "x", Tags: []string{"a", "b"}})

	updated, err := note.WithUpdate(NotePatch{Tags: []string{}})
	if err != nil {
		t.Fatalf("WithUpdate failed: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", updated.Tags)
	}
}

func TestWithPinToggled(t *testing.T) {
	note, _ := NewNote(NewNoteParams{Title: "x"})

	pinned := note.WithPinToggled()
	if !pinned.Pinned {
		t.Error("expected pinned after toggle")
	}

	unpinned := pinned.WithPinToggled()
	if unpinned.Pinned {
		t.Error("expected unpinned after second toggle")
	}
}

func TestMatches(t *testing.T) {
	note := Note{
		Title:   "Grocery List",
		Content: "Buy MILK tomorrow",
		Tags:    []string{"errands"},
	}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"grocery", true},
		{"GROCERY", true},
		{"milk", true},
		{"errand", true},
		{"unrelated", false},
	}

	for _, tt := range tests {
		if got := note.Matches(tt.term); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestHasTag(t *testing.T) {
	note := Note{Tags: []string{"work", "urgent"}}

	if !note.HasTag("work") {
		t.Error("expected HasTag(work) to be true")
	}
	if !note.HasTag("WORK") {
		t.Error("expected tag match to be case-insensitive")
	}
	if note.HasTag("home") {
		t.Error("expected HasTag(home) to be false")
	}
}

func TestClone_IndependentTags(t *testing.T) {
	note := Note{Title: "x", Tags: []string{"a", "b"}}

	clone := note.Clone()
	clone.Tags[0] = "mutated"

	if note.Tags[0] != "a" {
		t.Error("mutating a clone's tags must not affect the original")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Work ", "HOME", "work", "", "  ", "home"})

	if len(got) != 2 || got[0] != "work" || got[1] != "home" {
		t.Errorf("expected [work home], got %v", got)
	}
}

func TestParseColor(t *testing.T) {
	if ParseColor("red") != ColorRed {
		t.Error("expected red")
	}
	if ParseColor("nope") != ColorDefault {
		t.Error("expected fallback to default")
	}
	if ParseColor("") != ColorDefault {
		t.Error("expected fallback to default for empty input")
	}
}

func TestColorsValid(t *testing.T) {
	for _, c := range Colors() {
		if !c.Valid() {
			t.Errorf("palette color %q should be valid", c)
		}
	}
}

func TestGenerateUUID_Unique(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty UUIDs, got %q and %q", a, b)
	}
}

func TestNoteTimestampsComparable(t *testing.T) {
	note, _ := NewNote(NewNoteParams{Title: "x"})
	if note.CreatedAt.After(time.Now()) {
		t.Error("CreatedAt should not be in the future")
	}
}
