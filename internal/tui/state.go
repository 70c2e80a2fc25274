package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/search"
)

// Mode is the current input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
	ModeSearch
	ModeFilter
	ModeConfirmDelete
	ModeHelp
)

// ModalState holds state for the add/edit note modal.
type ModalState struct {
	TitleInput   textinput.Model
	ContentInput textinput.Model
	TagsInput    textinput.Model
	Focus        int    // 0=title 1=content 2=tags
	ColorIdx     int    // index into model.Colors()
	EditID       string // empty = adding a new note
	Err          string // validation message shown in the modal
}

// NewModalState creates a ModalState with initialized inputs.
func NewModalState() ModalState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = 120
	titleInput.Width = 40

	contentInput := textinput.New()
	contentInput.Placeholder = "Content"
	contentInput.CharLimit = 2000
	contentInput.Width = 40

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = 200
	tagsInput.Width = 40

	return ModalState{
		TitleInput:   titleInput,
		ContentInput: contentInput,
		TagsInput:    tagsInput,
	}
}

// Reset clears the modal for a new session.
func (m *ModalState) Reset() {
	m.TitleInput.Reset()
	m.ContentInput.Reset()
	m.TagsInput.Reset()
	m.Focus = 0
	m.ColorIdx = 0
	m.EditID = ""
	m.Err = ""
}

// FillFrom loads a note into the modal for editing.
func (m *ModalState) FillFrom(note model.Note) {
	m.Reset()
	m.TitleInput.SetValue(note.Title)
	m.ContentInput.SetValue(note.Content)
	m.TagsInput.SetValue(strings.Join(note.Tags, ", "))
	m.EditID = note.ID
	for i, c := range model.Colors() {
		if c == note.Color {
			m.ColorIdx = i
			break
		}
	}
}

// Color returns the currently selected palette color.
func (m *ModalState) Color() model.Color {
	colors := model.Colors()
	if m.ColorIdx < 0 || m.ColorIdx >= len(colors) {
		return model.ColorDefault
	}
	return colors[m.ColorIdx]
}

// CycleColor advances the color selection.
func (m *ModalState) CycleColor() {
	m.ColorIdx = (m.ColorIdx + 1) % len(model.Colors())
}

// Tags splits the tags input into a raw tag list.
func (m *ModalState) Tags() []string {
	var tags []string
	for _, tag := range strings.Split(m.TagsInput.Value(), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SearchState holds state for the global fuzzy search overlay.
type SearchState struct {
	Input   textinput.Model
	Results []search.Result
	Cursor  int
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState() SearchState {
	input := textinput.New()
	input.Placeholder = "Search notes..."
	input.CharLimit = 80
	input.Width = 40
	return SearchState{Input: input}
}

// Reset clears the search state.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
}
