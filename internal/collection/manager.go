package collection

import (
	"strings"
	"sync"

	"github.com/nikbrunner/nota/internal/event"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/storage"
)

// notesKey is the gateway slot holding the collection snapshot.
const notesKey = "notes"

// snapshot is the persisted shape of the collection.
type snapshot struct {
	Notes []model.Note `json:"notes"`
}

// Manager owns the authoritative in-memory note list. All mutations go
// through it; callers only ever see copies. Every successful
// mutation notifies subscribers and persists the whole collection.
type Manager struct {
	mu      sync.Mutex
	notes   []model.Note
	gateway *storage.Gateway
	bus     *event.Bus
}

// New creates a Manager backed by the given gateway. A nil gateway keeps
// the collection purely in memory.
func New(gateway *storage.Gateway) *Manager {
	return &Manager{
		gateway: gateway,
		bus:     event.NewBus(),
	}
}

// Load hydrates the collection from the gateway. A missing or corrupt slot
// yields an empty collection. Records with duplicate or missing IDs and
// records whose title trims to empty are dropped.
func (m *Manager) Load() {
	var snap snapshot
	m.gateway.Load(notesKey, &snap)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.notes = m.notes[:0]
	seen := make(map[string]bool)
	for _, n := range snap.Notes {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		if strings.TrimSpace(n.Title) == "" {
			continue
		}
		seen[n.ID] = true
		n.Tags = model.NormalizeTags(n.Tags)
		if !n.Color.Valid() {
			n.Color = model.ColorDefault
		}
		m.notes = append(m.notes, n)
	}
}

// Subscribe registers a change handler and returns a function that
// removes it.
func (m *Manager) Subscribe(handler func()) func() {
	return m.bus.Subscribe(handler)
}

// All returns a snapshot of the collection. Mutating the result
// never affects internal state.
func (m *Manager) All() []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copyNotes()
}

// Len returns the number of notes.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes)
}

// Get finds a note by ID.
func (m *Manager) Get(id string) (model.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.index(id)
	if idx < 0 {
		return model.Note{}, false
	}
	return m.notes[idx].Clone(), true
}

// Add validates the draft, inserts the new note at the front of the
// collection, persists, and notifies.
func (m *Manager) Add(params model.NewNoteParams) (model.Note, error) {
	note, err := model.NewNote(params)
	if err != nil {
		return model.Note{}, err
	}

	m.mu.Lock()
	m.notes = append([]model.Note{note}, m.notes...)
	m.mu.Unlock()

	m.changed()
	return note.Clone(), nil
}

// Update merges the patch into the note with the given ID. An unknown ID is
// reported through the bool, not an error; nothing is persisted in that
// case. A patch that empties the title returns model.ErrEmptyTitle and
// leaves the note unchanged.
func (m *Manager) Update(id string, patch model.NotePatch) (model.Note, bool, error) {
	m.mu.Lock()
	idx := m.index(id)
	if idx < 0 {
		m.mu.Unlock()
		return model.Note{}, false, nil
	}

	updated, err := m.notes[idx].WithUpdate(patch)
	if err != nil {
		m.mu.Unlock()
		return model.Note{}, true, err
	}
	m.notes[idx] = updated
	m.mu.Unlock()

	m.changed()
	return updated.Clone(), true, nil
}

// Delete removes a note by ID and reports whether one was present.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	idx := m.index(id)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	m.notes = append(m.notes[:idx], m.notes[idx+1:]...)
	m.mu.Unlock()

	m.changed()
	return true
}

// TogglePin flips the pinned flag. A note that becomes pinned is promoted
// to the front of the collection; unpinning keeps its position.
func (m *Manager) TogglePin(id string) (model.Note, bool) {
	m.mu.Lock()
	idx := m.index(id)
	if idx < 0 {
		m.mu.Unlock()
		return model.Note{}, false
	}

	toggled := m.notes[idx].WithPinToggled()
	if toggled.Pinned {
		m.notes = append(m.notes[:idx], m.notes[idx+1:]...)
		m.notes = append([]model.Note{toggled}, m.notes...)
	} else {
		m.notes[idx] = toggled
	}
	m.mu.Unlock()

	m.changed()
	return toggled.Clone(), true
}

// Search returns all notes matching the term across title, content and
// tags. An empty term returns the full collection.
func (m *Manager) Search(term string) []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Note
	for _, n := range m.notes {
		if n.Matches(term) {
			result = append(result, n.Clone())
		}
	}
	return result
}

// FilterByColor returns all notes with exactly the given color.
func (m *Manager) FilterByColor(color model.Color) []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Note
	for _, n := range m.notes {
		if n.Color == color {
			result = append(result, n.Clone())
		}
	}
	return result
}

// FilterByTag returns all notes carrying the given tag (case-insensitive).
func (m *Manager) FilterByTag(tag string) []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Note
	for _, n := range m.notes {
		if n.HasTag(tag) {
			result = append(result, n.Clone())
		}
	}
	return result
}

// Query combines the active filters and the requested sort order.
// Zero-valued fields are inactive.
type Query struct {
	Term  string
	Color model.Color
	Tag   string
	Sort  SortMode
}

// Find applies every active filter as a logical AND, then sorts the result.
func (m *Manager) Find(q Query) []model.Note {
	m.mu.Lock()
	var result []model.Note
	for _, n := range m.notes {
		if !n.Matches(q.Term) {
			continue
		}
		if q.Color != "" && n.Color != q.Color {
			continue
		}
		if q.Tag != "" && !n.HasTag(q.Tag) {
			continue
		}
		result = append(result, n.Clone())
	}
	m.mu.Unlock()

	return Sort(result, q.Sort)
}

// Tags returns the union of every note's tags, deduplicated and sorted
// ascending. Tags are stored lowercase, so the result is case-normalized.
func (m *Manager) Tags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var tags []string
	for _, n := range m.notes {
		for _, tag := range n.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sortStrings(tags)
	return tags
}

// Import merges externally produced notes into the collection. Notes whose
// title and content match an existing note are skipped as duplicates.
// Persists and notifies once when anything was added.
func (m *Manager) Import(notes []model.Note) (added, skipped int) {
	m.mu.Lock()
	existing := make(map[string]bool, len(m.notes))
	for _, n := range m.notes {
		existing[n.Title+"\x00"+n.Content] = true
	}

	for _, n := range notes {
		if strings.TrimSpace(n.Title) == "" {
			skipped++
			continue
		}
		key := n.Title + "\x00" + n.Content
		if existing[key] {
			skipped++
			continue
		}
		existing[key] = true
		if n.ID == "" {
			n.ID = model.GenerateUUID()
		}
		n.Tags = model.NormalizeTags(n.Tags)
		if !n.Color.Valid() {
			n.Color = model.ColorDefault
		}
		m.notes = append(m.notes, n)
		added++
	}
	m.mu.Unlock()

	if added > 0 {
		m.changed()
	}
	return added, skipped
}

// Clear drops every note and wipes the persisted slots.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.notes = nil
	m.mu.Unlock()

	m.gateway.Clear()
	m.bus.Publish()
}

// changed notifies subscribers, then persists the whole collection.
// Persistence is best-effort; the gateway swallows storage failures.
func (m *Manager) changed() {
	m.bus.Publish()

	m.mu.Lock()
	snap := snapshot{Notes: m.copyNotes()}
	m.mu.Unlock()
	m.gateway.Save(notesKey, snap)
}

// index returns the position of the note with the given ID, or -1.
// Callers must hold m.mu.
func (m *Manager) index(id string) int {
	for i := range m.notes {
		if m.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// copyNotes deep-copies the note list. Callers must hold m.mu.
func (m *Manager) copyNotes() []model.Note {
	notes := make([]model.Note, len(m.notes))
	for i, n := range m.notes {
		notes[i] = n.Clone()
	}
	return notes
}
