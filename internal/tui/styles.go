package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/nota/internal/model"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Status       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Pin          lipgloss.Style
	Tag          lipgloss.Style
	Date         lipgloss.Style
	Content      lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	noteColors   map[model.Color]lipgloss.Style
}

// NewStyles returns the style configuration for the given theme.
// Two explicit palettes instead of AdaptiveColor, so the theme can be
// switched at runtime and persisted.
func NewStyles(dark bool) Styles {
	var primary, subtle, accent lipgloss.Color
	if dark {
		primary = lipgloss.Color("#A0A0A0")
		subtle = lipgloss.Color("#606060")
		accent = lipgloss.Color("#5F8787")
	} else {
		primary = lipgloss.Color("#505050")
		subtle = lipgloss.Color("#888888")
		accent = lipgloss.Color("#4A7070")
	}

	noteColors := map[model.Color]lipgloss.Style{
		model.ColorDefault: lipgloss.NewStyle().Foreground(primary),
		model.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("#BF616A")),
		model.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("#D08770")),
		model.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#EBCB8B")),
		model.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C")),
		model.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#81A1C1")),
		model.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("#B48EAD")),
	}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Pin: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Content: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(3),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		noteColors: noteColors,
	}
}

// NoteColor returns the style for a palette color.
func (s Styles) NoteColor(c model.Color) lipgloss.Style {
	if style, ok := s.noteColors[c]; ok {
		return style
	}
	return s.noteColors[model.ColorDefault]
}
