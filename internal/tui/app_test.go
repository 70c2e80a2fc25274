package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nota/internal/collection"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/storage"
)

func newTestApp(t *testing.T, titles ...string) (App, *collection.Manager) {
	t.Helper()
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	for _, title := range titles {
		if _, err := manager.Add(model.NewNoteParams{Title: title}); err != nil {
			t.Fatalf("Add(%q) failed: %v", title, err)
		}
	}
	app := NewApp(AppParams{Manager: manager, Gateway: gateway})
	return app.WithDimensions(80, 24), manager
}

func press(t *testing.T, app App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		newModel, _ := app.Update(msg)
		app = newModel.(App)
	}
	return app
}

func TestApp_InitialState(t *testing.T) {
	app, _ := newTestApp(t, "one", "two")

	if app.Mode() != ModeNormal {
		t.Errorf("expected normal mode, got %v", app.Mode())
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor at 0, got %d", app.Cursor())
	}
	if len(app.Notes()) != 2 {
		t.Errorf("expected 2 visible notes, got %d", len(app.Notes()))
	}
}

func TestApp_Navigation(t *testing.T) {
	app, _ := newTestApp(t, "one", "two", "three")

	app = press(t, app, "j", "j")
	if app.Cursor() != 2 {
		t.Errorf("expected cursor at 2, got %d", app.Cursor())
	}

	// Bottom boundary
	app = press(t, app, "j")
	if app.Cursor() != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", app.Cursor())
	}

	app = press(t, app, "k")
	if app.Cursor() != 1 {
		t.Errorf("expected cursor at 1, got %d", app.Cursor())
	}

	app = press(t, app, "g", "g")
	if app.Cursor() != 0 {
		t.Errorf("expected gg to jump to top, got %d", app.Cursor())
	}

	app = press(t, app, "G")
	if app.Cursor() != 2 {
		t.Errorf("expected G to jump to bottom, got %d", app.Cursor())
	}
}

func TestApp_AddNoteViaModal(t *testing.T) {
	app, manager := newTestApp(t)

	app = press(t, app, "a")
	if app.Mode() != ModeModal {
		t.Fatalf("expected modal mode, got %v", app.Mode())
	}

	app.modal.TitleInput.SetValue("from the modal")
	app.modal.ContentInput.SetValue("typed content")
	app = press(t, app, "enter")

	if app.Mode() != ModeNormal {
		t.Errorf("expected return to normal mode, got %v", app.Mode())
	}
	if manager.Len() != 1 {
		t.Fatalf("expected 1 note, got %d", manager.Len())
	}
	if app.Notes()[0].Title != "from the modal" {
		t.Errorf("unexpected title %q", app.Notes()[0].Title)
	}
}

func TestApp_ModalRejectsEmptyTitle(t *testing.T) {
	app, manager := newTestApp(t)

	app = press(t, app, "a")
	app.modal.TitleInput.SetValue("   ")
	app = press(t, app, "enter")

	if app.Mode() != ModeModal {
		t.Error("expected modal to stay open on validation failure")
	}
	if app.modal.Err == "" {
		t.Error("expected validation message")
	}
	if manager.Len() != 0 {
		t.Errorf("expected no note added, got %d", manager.Len())
	}
}

func TestApp_EditNote(t *testing.T) {
	app, manager := newTestApp(t, "original")

	app = press(t, app, "e")
	if app.Mode() != ModeModal {
		t.Fatalf("expected modal mode, got %v", app.Mode())
	}
	if app.modal.TitleInput.Value() != "original" {
		t.Errorf("expected modal prefilled, got %q", app.modal.TitleInput.Value())
	}

	app.modal.TitleInput.SetValue("renamed")
	app = press(t, app, "enter")

	notes := manager.All()
	if notes[0].Title != "renamed" {
		t.Errorf("expected renamed note, got %q", notes[0].Title)
	}
}

func TestApp_EditNoteClearsTags(t *testing.T) {
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	manager.Add(model.NewNoteParams{Title: "tagged", Tags: []string{"work"}})
	app := NewApp(AppParams{Manager: manager, Gateway: gateway})

	app = press(t, app, "e")
	if app.modal.TagsInput.Value() != "work" {
		t.Fatalf("expected tags prefilled, got %q", app.modal.TagsInput.Value())
	}

	app.modal.TagsInput.SetValue("")
	app = press(t, app, "enter")

	notes := manager.All()
	if len(notes[0].Tags) != 0 {
		t.Errorf("expected tags cleared, still has %v", notes[0].Tags)
	}
}

func TestApp_ModalEscCancels(t *testing.T) {
	app, manager := newTestApp(t)

	app = press(t, app, "a")
	app.modal.TitleInput.SetValue("discarded")
	app = press(t, app, "esc")

	if app.Mode() != ModeNormal {
		t.Errorf("expected normal mode, got %v", app.Mode())
	}
	if manager.Len() != 0 {
		t.Error("esc must not save the note")
	}
}

func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	app, manager := newTestApp(t, "doomed")

	app = press(t, app, "d")
	if manager.Len() != 0 {
		t.Errorf("expected note deleted, got %d", manager.Len())
	}
	if len(app.Notes()) != 0 {
		t.Errorf("expected empty view, got %d", len(app.Notes()))
	}
}

func TestApp_DeleteWithConfirmation(t *testing.T) {
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	manager.Add(model.NewNoteParams{Title: "protected"})
	app := NewApp(AppParams{Manager: manager, Gateway: gateway, ConfirmDelete: true})

	app = press(t, app, "d")
	if app.Mode() != ModeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", app.Mode())
	}

	// Decline
	app = press(t, app, "n")
	if manager.Len() != 1 {
		t.Error("declining must keep the note")
	}

	// Accept
	app = press(t, app, "d", "y")
	if manager.Len() != 0 {
		t.Error("accepting must delete the note")
	}
}

func TestApp_TogglePinPromotes(t *testing.T) {
	app, _ := newTestApp(t, "oldest", "middle", "newest")

	// Cursor to the last row ("oldest" was added first, shows last)
	app = press(t, app, "G")
	target := app.Notes()[app.Cursor()]

	app = press(t, app, "p")

	if app.Notes()[0].ID != target.ID {
		t.Errorf("expected pinned note first, got %q", app.Notes()[0].Title)
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor to follow the note, got %d", app.Cursor())
	}
	if !app.Notes()[0].Pinned {
		t.Error("expected note pinned")
	}
}

func TestApp_FilterNarrowsList(t *testing.T) {
	app, _ := newTestApp(t, "grocery list", "meeting notes")

	app = press(t, app, "/")
	if app.Mode() != ModeFilter {
		t.Fatalf("expected filter mode, got %v", app.Mode())
	}

	app = press(t, app, "g", "r", "o")
	if len(app.Notes()) != 1 || app.Notes()[0].Title != "grocery list" {
		t.Errorf("expected filtered view, got %v", app.Notes())
	}

	// Enter keeps the filter active
	app = press(t, app, "enter")
	if app.Mode() != ModeNormal || len(app.Notes()) != 1 {
		t.Error("expected filter kept after enter")
	}

	// Esc from a fresh filter session clears it
	app = press(t, app, "/", "esc")
	if len(app.Notes()) != 2 {
		t.Errorf("expected filter cleared, got %d notes", len(app.Notes()))
	}
}

func TestApp_SortCycle(t *testing.T) {
	app, _ := newTestApp(t, "b", "a")

	if app.Query().Sort != collection.SortUpdatedDesc {
		t.Fatalf("expected default sort, got %v", app.Query().Sort)
	}

	app = press(t, app, "o", "o")
	if app.Query().Sort != collection.SortTitleAsc {
		t.Errorf("expected title sort after two cycles, got %v", app.Query().Sort)
	}
	if app.Notes()[0].Title != "a" {
		t.Errorf("expected alphabetical order, got %q first", app.Notes()[0].Title)
	}
}

func TestApp_ColorFilterCycle(t *testing.T) {
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	manager.Add(model.NewNoteParams{Title: "plain"})
	manager.Add(model.NewNoteParams{Title: "red", Color: model.ColorRed})
	app := NewApp(AppParams{Manager: manager, Gateway: gateway})

	// First step filters by the first palette color (default)
	app = press(t, app, "c")
	if app.Query().Color != model.ColorDefault {
		t.Errorf("expected default color filter, got %q", app.Query().Color)
	}
	if len(app.Notes()) != 1 || app.Notes()[0].Title != "plain" {
		t.Errorf("expected only the default-colored note, got %v", app.Notes())
	}

	// Second step moves to red
	app = press(t, app, "c")
	if len(app.Notes()) != 1 || app.Notes()[0].Title != "red" {
		t.Errorf("expected only the red note, got %v", app.Notes())
	}

	// Cycling past the palette turns the filter off
	for range model.Colors()[2:] {
		app = press(t, app, "c")
	}
	app = press(t, app, "c")
	if app.Query().Color != "" {
		t.Errorf("expected filter off, got %q", app.Query().Color)
	}
	if len(app.Notes()) != 2 {
		t.Errorf("expected full list, got %d", len(app.Notes()))
	}
}

func TestApp_TagFilterCycle(t *testing.T) {
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	manager.Add(model.NewNoteParams{Title: "work note", Tags: []string{"work"}})
	manager.Add(model.NewNoteParams{Title: "home note", Tags: []string{"home"}})
	app := NewApp(AppParams{Manager: manager, Gateway: gateway})

	// Tags cycle in sorted order: home, work
	app = press(t, app, "t")
	if app.Query().Tag != "home" {
		t.Errorf("expected tag filter 'home', got %q", app.Query().Tag)
	}
	if len(app.Notes()) != 1 || app.Notes()[0].Title != "home note" {
		t.Errorf("expected only the home note, got %v", app.Notes())
	}

	app = press(t, app, "t", "t")
	if app.Query().Tag != "" {
		t.Errorf("expected tag filter off, got %q", app.Query().Tag)
	}
}

func TestApp_SearchOverlay(t *testing.T) {
	app, _ := newTestApp(t, "grocery list", "great recipes", "meeting notes")

	app = press(t, app, "s")
	if app.Mode() != ModeSearch {
		t.Fatalf("expected search mode, got %v", app.Mode())
	}

	app = press(t, app, "g", "r")
	if len(app.searchState.Results) != 2 {
		t.Errorf("expected 2 fuzzy results, got %d", len(app.searchState.Results))
	}

	app = press(t, app, "enter")
	if app.Mode() != ModeNormal {
		t.Errorf("expected normal mode after selection, got %v", app.Mode())
	}
	selected := app.Notes()[app.Cursor()]
	if selected.Title != "grocery list" && selected.Title != "great recipes" {
		t.Errorf("expected cursor on a search hit, got %q", selected.Title)
	}
}

func TestApp_DarkModeTogglePersists(t *testing.T) {
	gateway := storage.NewGateway(storage.NewMemoryBackend())
	manager := collection.New(gateway)
	app := NewApp(AppParams{Manager: manager, Gateway: gateway, DarkMode: true})

	if !app.DarkMode() {
		t.Fatal("expected initial dark mode from params")
	}

	app = press(t, app, "D")
	if app.DarkMode() {
		t.Error("expected light mode after toggle")
	}
	if storage.DarkMode(gateway, true) {
		t.Error("expected toggle persisted")
	}

	// A fresh app over the same gateway sees the stored value
	app2 := NewApp(AppParams{Manager: manager, Gateway: gateway, DarkMode: true})
	if app2.DarkMode() {
		t.Error("expected stored value to win over the param default")
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	app, _ := newTestApp(t, "x")

	app = press(t, app, "?")
	if app.Mode() != ModeHelp {
		t.Fatalf("expected help mode, got %v", app.Mode())
	}

	app = press(t, app, "x")
	if app.Mode() != ModeNormal {
		t.Errorf("expected any key to close help, got %v", app.Mode())
	}
}

func TestApp_ExternalChangeRefreshesView(t *testing.T) {
	app, manager := newTestApp(t)

	// Mutation from outside the TUI (e.g. the HTTP API)
	manager.Add(model.NewNoteParams{Title: "pushed from elsewhere"})

	newModel, _ := app.Update(changedMsg{})
	app = newModel.(App)

	if len(app.Notes()) != 1 {
		t.Errorf("expected view refreshed, got %d notes", len(app.Notes()))
	}
}

func TestTruncate_MultibyteContent(t *testing.T) {
	s := strings.Repeat("ä", 30)

	got := truncate(s, 10)
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if n := len([]rune(got)); n != 10 {
		t.Errorf("expected 10 runes, got %d", n)
	}

	if got := truncate("short", 10); got != "short" {
		t.Errorf("short input must pass through, got %q", got)
	}
}

func TestApp_ViewRendersTitles(t *testing.T) {
	app, _ := newTestApp(t, "visible title")

	view := app.View()
	if !strings.Contains(view, "visible title") {
		t.Error("expected view to contain the note title")
	}
}
