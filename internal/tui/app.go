package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nota/internal/collection"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/search"
	"github.com/nikbrunner/nota/internal/storage"
)

// changedMsg signals that the collection mutated and the view is stale.
type changedMsg struct{}

// App is the main bubbletea model for the note manager.
type App struct {
	manager *collection.Manager
	gateway *storage.Gateway
	keys    KeyMap
	styles  Styles

	mode   Mode
	cursor int
	notes  []model.Note // current filtered + sorted view

	query         collection.Query
	colorFilter   int // index into model.Colors(), -1 = off
	tagFilter     int // index into manager.Tags(), -1 = off
	modal         ModalState
	searchState   SearchState
	filterInput   textinput.Model
	pendingDelete model.Note

	confirmDelete bool
	dark          bool
	status        string

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int

	changes     chan struct{}
	unsubscribe func()
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Manager       *collection.Manager
	Gateway       *storage.Gateway
	Keys          *KeyMap // optional, uses default if nil
	ConfirmDelete bool
	DefaultSort   collection.SortMode
	DarkMode      bool // initial preference when nothing is persisted
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	dark := storage.DarkMode(params.Gateway, params.DarkMode)

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter..."
	filterInput.CharLimit = 80
	filterInput.Width = 30

	app := App{
		manager:       params.Manager,
		gateway:       params.Gateway,
		keys:          keys,
		styles:        NewStyles(dark),
		query:         collection.Query{Sort: params.DefaultSort},
		colorFilter:   -1,
		tagFilter:     -1,
		modal:         NewModalState(),
		searchState:   NewSearchState(),
		filterInput:   filterInput,
		confirmDelete: params.ConfirmDelete,
		dark:          dark,
		width:         80,
		height:        24,
		changes:       make(chan struct{}, 1),
	}

	app.unsubscribe = params.Manager.Subscribe(app.notifyChange)
	app.refresh()
	return app
}

// notifyChange coalesces bus notifications into the change channel.
func (a App) notifyChange() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// refresh rebuilds the visible note list from the active query.
func (a *App) refresh() {
	a.notes = a.manager.Find(a.query)
	if a.cursor >= len(a.notes) {
		a.cursor = len(a.notes) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selected returns the note under the cursor.
func (a *App) selected() (model.Note, bool) {
	if len(a.notes) == 0 || a.cursor >= len(a.notes) {
		return model.Note{}, false
	}
	return a.notes[a.cursor], true
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Notes returns the currently visible notes.
func (a App) Notes() []model.Note {
	return a.notes
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// DarkMode returns the active theme flag.
func (a App) DarkMode() bool {
	return a.dark
}

// Status returns the transient status line.
func (a App) Status() string {
	return a.status
}

// Query returns the active filter/sort query.
func (a App) Query() collection.Query {
	return a.query
}

// WithDimensions returns a copy with fixed window dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.waitForChange()
}

// waitForChange delivers a changedMsg when the collection mutates.
func (a App) waitForChange() tea.Cmd {
	ch := a.changes
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case changedMsg:
		a.refresh()
		return a, a.waitForChange()

	case tea.KeyMsg:
		switch a.mode {
		case ModeModal:
			return a.updateModal(msg)
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeConfirmDelete:
			return a.updateConfirm(msg)
		case ModeHelp:
			a.mode = ModeNormal
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// updateNormal handles keys in the main list view.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.notes) > 0 && a.cursor < len(a.notes)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.notes) > 0 {
			a.cursor = len(a.notes) - 1
		}

	case key.Matches(msg, a.keys.Add):
		a.modal.Reset()
		a.modal.TitleInput.Focus()
		a.mode = ModeModal
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		if note, ok := a.selected(); ok {
			a.modal.FillFrom(note)
			a.modal.TitleInput.Focus()
			a.mode = ModeModal
			return a, textinput.Blink
		}

	case key.Matches(msg, a.keys.Delete):
		if note, ok := a.selected(); ok {
			if a.confirmDelete {
				a.pendingDelete = note
				a.mode = ModeConfirmDelete
			} else {
				a.manager.Delete(note.ID)
				a.refresh()
			}
		}

	case key.Matches(msg, a.keys.Pin):
		if note, ok := a.selected(); ok {
			a.manager.TogglePin(note.ID)
			a.refresh()
			a.cursor = a.indexOf(note.ID)
		}

	case key.Matches(msg, a.keys.Yank):
		if note, ok := a.selected(); ok {
			if err := clipboard.WriteAll(note.Content); err == nil {
				a.status = "content copied"
			}
		}

	case key.Matches(msg, a.keys.Search):
		a.searchState.Reset()
		a.searchState.Input.Focus()
		a.mode = ModeSearch
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Filter):
		a.filterInput.SetValue(a.query.Term)
		a.filterInput.Focus()
		a.mode = ModeFilter
		return a, textinput.Blink

	case key.Matches(msg, a.keys.ColorFilter):
		a.cycleColorFilter()
		a.refresh()

	case key.Matches(msg, a.keys.TagFilter):
		a.cycleTagFilter()
		a.refresh()

	case key.Matches(msg, a.keys.Sort):
		a.query.Sort = a.query.Sort.Next()
		a.refresh()

	case key.Matches(msg, a.keys.Theme):
		a.dark = !a.dark
		a.styles = NewStyles(a.dark)
		storage.SetDarkMode(a.gateway, a.dark)

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// cycleColorFilter steps through off -> each palette color -> off.
func (a *App) cycleColorFilter() {
	colors := model.Colors()
	a.colorFilter++
	if a.colorFilter >= len(colors) {
		a.colorFilter = -1
		a.query.Color = ""
		return
	}
	a.query.Color = colors[a.colorFilter]
}

// cycleTagFilter steps through off -> each known tag -> off.
func (a *App) cycleTagFilter() {
	tags := a.manager.Tags()
	if len(tags) == 0 {
		a.tagFilter = -1
		a.query.Tag = ""
		return
	}
	a.tagFilter++
	if a.tagFilter >= len(tags) {
		a.tagFilter = -1
		a.query.Tag = ""
		return
	}
	a.query.Tag = tags[a.tagFilter]
}

// indexOf returns the visible position of a note ID, or 0.
func (a *App) indexOf(id string) int {
	for i, n := range a.notes {
		if n.ID == id {
			return i
		}
	}
	return 0
}

// updateModal handles keys in the add/edit modal.
func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "tab", "down":
		a.modal.Focus = (a.modal.Focus + 1) % 3
		a.focusModalInput()
		return a, textinput.Blink

	case "shift+tab", "up":
		a.modal.Focus = (a.modal.Focus + 2) % 3
		a.focusModalInput()
		return a, textinput.Blink

	case "ctrl+o":
		a.modal.CycleColor()
		return a, nil

	case "enter":
		return a.saveModal()
	}

	var cmd tea.Cmd
	switch a.modal.Focus {
	case 0:
		a.modal.TitleInput, cmd = a.modal.TitleInput.Update(msg)
	case 1:
		a.modal.ContentInput, cmd = a.modal.ContentInput.Update(msg)
	default:
		a.modal.TagsInput, cmd = a.modal.TagsInput.Update(msg)
	}
	return a, cmd
}

// focusModalInput moves textinput focus to the modal's active field.
func (a *App) focusModalInput() {
	a.modal.TitleInput.Blur()
	a.modal.ContentInput.Blur()
	a.modal.TagsInput.Blur()
	switch a.modal.Focus {
	case 0:
		a.modal.TitleInput.Focus()
	case 1:
		a.modal.ContentInput.Focus()
	default:
		a.modal.TagsInput.Focus()
	}
}

// saveModal commits the modal as an add or an update.
func (a App) saveModal() (tea.Model, tea.Cmd) {
	title := a.modal.TitleInput.Value()
	content := a.modal.ContentInput.Value()
	color := a.modal.Color()
	tags := a.modal.Tags()

	if a.modal.EditID == "" {
		note, err := a.manager.Add(model.NewNoteParams{
			Title:   title,
			Content: content,
			Color:   color,
			Tags:    tags,
		})
		if err != nil {
			a.modal.Err = err.Error()
			return a, nil
		}
		a.refresh()
		a.cursor = a.indexOf(note.ID)
	} else {
		// An emptied tags field clears the tags; nil would keep them
		if tags == nil {
			tags = []string{}
		}
		_, ok, err := a.manager.Update(a.modal.EditID, model.NotePatch{
			Title:   &title,
			Content: &content,
			Color:   &color,
			Tags:    tags,
		})
		if err != nil {
			a.modal.Err = err.Error()
			return a, nil
		}
		if ok {
			a.refresh()
			a.cursor = a.indexOf(a.modal.EditID)
		}
	}

	a.mode = ModeNormal
	return a, nil
}

// updateSearch handles keys in the fuzzy search overlay.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "down", "ctrl+n":
		if a.searchState.Cursor < len(a.searchState.Results)-1 {
			a.searchState.Cursor++
		}
		return a, nil

	case "up", "ctrl+p":
		if a.searchState.Cursor > 0 {
			a.searchState.Cursor--
		}
		return a, nil

	case "enter":
		if a.searchState.Cursor < len(a.searchState.Results) {
			// Jump to the hit in an unfiltered list
			target := a.searchState.Results[a.searchState.Cursor].Note
			a.query.Term = ""
			a.refresh()
			a.cursor = a.indexOf(target.ID)
		}
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.searchState.Input, cmd = a.searchState.Input.Update(msg)
	a.searchState.Results = search.FuzzySearch(a.manager.All(), a.searchState.Input.Value())
	a.searchState.Cursor = 0
	return a, cmd
}

// updateFilter handles keys while the substring filter is being edited.
func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.query.Term = ""
		a.filterInput.Reset()
		a.refresh()
		a.mode = ModeNormal
		return a, nil

	case "enter":
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.query.Term = a.filterInput.Value()
	a.refresh()
	return a, cmd
}

// updateConfirm handles the delete confirmation prompt.
func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		a.manager.Delete(a.pendingDelete.ID)
		a.refresh()
		a.status = fmt.Sprintf("deleted %q", a.pendingDelete.Title)
	}
	a.pendingDelete = model.Note{}
	a.mode = ModeNormal
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
