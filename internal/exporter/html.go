package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/nota/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/notes-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("notes-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the notes as a standalone HTML document. The structure
// is what the importer parses back: one <article> per note with the metadata
// carried in data attributes.
func ExportHTML(notes []model.Note) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<title>Notes</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>Notes</h1>\n")

	for _, note := range notes {
		writeNote(&b, note)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// writeNote writes a single note article.
func writeNote(b *strings.Builder, note model.Note) {
	pinned := "false"
	if note.Pinned {
		pinned = "true"
	}

	fmt.Fprintf(b,
		"<article data-color=\"%s\" data-pinned=\"%s\" data-created=\"%d\" data-updated=\"%d\">\n",
		html.EscapeString(string(note.Color)),
		pinned,
		note.CreatedAt.Unix(),
		note.UpdatedAt.Unix(),
	)
	fmt.Fprintf(b, "    <h2>%s</h2>\n", html.EscapeString(note.Title))
	if note.Content != "" {
		fmt.Fprintf(b, "    <pre>%s</pre>\n", html.EscapeString(note.Content))
	}
	if len(note.Tags) > 0 {
		b.WriteString("    <ul>\n")
		for _, tag := range note.Tags {
			fmt.Fprintf(b, "        <li>%s</li>\n", html.EscapeString(tag))
		}
		b.WriteString("    </ul>\n")
	}
	b.WriteString("</article>\n")
}
