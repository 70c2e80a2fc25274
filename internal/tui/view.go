package tui

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/nota/internal/model"
)

// renderView draws the current mode.
func (a App) renderView() string {
	switch a.mode {
	case ModeModal:
		return a.styles.App.Render(a.renderModal())
	case ModeSearch:
		return a.styles.App.Render(a.renderSearch())
	case ModeHelp:
		return a.styles.App.Render(a.renderHelp())
	default:
		return a.styles.App.Render(a.renderList())
	}
}

// renderList draws the header, note list and status line.
func (a App) renderList() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Notes"))
	b.WriteString(a.styles.Status.Render(fmt.Sprintf("  %d notes · %s", len(a.notes), a.query.Sort)))
	if filter := a.filterDescription(); filter != "" {
		b.WriteString(a.styles.Status.Render("  " + filter))
	}
	b.WriteString("\n\n")

	if len(a.notes) == 0 {
		b.WriteString(a.styles.Empty.Render("No notes. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, note := range a.notes {
		b.WriteString(a.renderNoteLine(note, i == a.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch a.mode {
	case ModeFilter:
		b.WriteString(a.styles.Status.Render("filter: "))
		b.WriteString(a.filterInput.View())
	case ModeConfirmDelete:
		prompt := fmt.Sprintf("Delete %q? (y/n)", a.pendingDelete.Title)
		b.WriteString(a.styles.Status.Render(prompt))
	default:
		if a.status != "" {
			b.WriteString(a.styles.Status.Render(a.status))
		} else {
			b.WriteString(a.styles.Help.Render("a add · e edit · d delete · p pin · y yank · / filter · s search · ? help · q quit"))
		}
	}

	return b.String()
}

// renderNoteLine draws one entry of the note list.
func (a App) renderNoteLine(note model.Note, selected bool) string {
	pin := "  "
	if note.Pinned {
		pin = a.styles.Pin.Render("* ")
	}

	title := a.styles.NoteColor(note.Color).Render(note.Title)
	line := pin + title

	if len(note.Tags) > 0 {
		line += a.styles.Tag.Render("  #" + strings.Join(note.Tags, " #"))
	}
	line += a.styles.Date.Render("  " + note.UpdatedAt.Format("2006-01-02"))

	if selected {
		rendered := a.styles.ItemSelected.Render(line)
		if note.Content != "" {
			rendered += "\n" + a.styles.Content.Render(truncate(note.Content, a.width-8))
		}
		return rendered
	}
	return a.styles.Item.Render(line)
}

// renderModal draws the add/edit form.
func (a App) renderModal() string {
	var b strings.Builder

	heading := "New Note"
	if a.modal.EditID != "" {
		heading = "Edit Note"
	}
	b.WriteString(a.styles.ModalTitle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString("Title:   " + a.modal.TitleInput.View() + "\n")
	b.WriteString("Content: " + a.modal.ContentInput.View() + "\n")
	b.WriteString("Tags:    " + a.modal.TagsInput.View() + "\n\n")

	color := a.modal.Color()
	b.WriteString("Color:   " + a.styles.NoteColor(color).Render("● "+string(color)))
	b.WriteString("\n")

	if a.modal.Err != "" {
		b.WriteString("\n" + a.styles.NoteColor(model.ColorRed).Render(a.modal.Err) + "\n")
	}

	b.WriteString(a.styles.Help.Render("tab next field · ctrl+o color · enter save · esc cancel"))

	return a.styles.Modal.Render(b.String())
}

// renderSearch draws the fuzzy search overlay.
func (a App) renderSearch() string {
	var b strings.Builder

	b.WriteString(a.styles.ModalTitle.Render("Search"))
	b.WriteString("\n\n")
	b.WriteString(a.searchState.Input.View())
	b.WriteString("\n\n")

	if len(a.searchState.Results) == 0 {
		if a.searchState.Input.Value() != "" {
			b.WriteString(a.styles.Empty.Render("No matches."))
		}
	}

	max := len(a.searchState.Results)
	if max > 10 {
		max = 10
	}
	for i := 0; i < max; i++ {
		result := a.searchState.Results[i]
		line := a.styles.NoteColor(result.Note.Color).Render(result.Note.Title)
		if i == a.searchState.Cursor {
			b.WriteString(a.styles.ItemSelected.Render(line))
		} else {
			b.WriteString(a.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter jump · esc cancel"))

	return b.String()
}

// renderHelp draws the key binding reference.
func (a App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")

	rows := []struct{ keys, desc string }{
		{"j / k", "move down / up"},
		{"gg / G", "go to top / bottom"},
		{"a", "add note"},
		{"e, enter", "edit note"},
		{"d", "delete note"},
		{"p, *", "pin / unpin"},
		{"y", "yank content to clipboard"},
		{"/", "filter by text"},
		{"s", "fuzzy search titles"},
		{"c", "cycle color filter"},
		{"t", "cycle tag filter"},
		{"o", "cycle sort order"},
		{"D", "toggle dark mode"},
		{"q", "quit"},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", row.keys, a.styles.Status.Render(row.desc)))
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("press any key to close"))

	return b.String()
}

// filterDescription summarizes the active filters for the header.
func (a App) filterDescription() string {
	var parts []string
	if a.query.Term != "" {
		parts = append(parts, fmt.Sprintf("text:%q", a.query.Term))
	}
	if a.query.Color != "" {
		parts = append(parts, "color:"+string(a.query.Color))
	}
	if a.query.Tag != "" {
		parts = append(parts, "tag:"+a.query.Tag)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
