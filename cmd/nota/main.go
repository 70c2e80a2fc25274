package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/nota/internal/collection"
	"github.com/nikbrunner/nota/internal/config"
	"github.com/nikbrunner/nota/internal/exporter"
	"github.com/nikbrunner/nota/internal/importer"
	"github.com/nikbrunner/nota/internal/logger"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/picker"
	"github.com/nikbrunner/nota/internal/search"
	"github.com/nikbrunner/nota/internal/server"
	"github.com/nikbrunner/nota/internal/storage"
	"github.com/nikbrunner/nota/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		Console:  cfg.LogConsole,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
	}
	defer logger.Close()

	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: nota add <title> [content]\n")
				os.Exit(1)
			}
			content := ""
			if len(os.Args) >= 4 {
				content = strings.Join(os.Args[3:], " ")
			}
			runAdd(os.Args[2], content)
			return
		case "list":
			runList()
			return
		case "tags":
			runTags()
			return
		case "serve":
			if len(os.Args) >= 3 {
				cfg.ListenAddr = os.Args[2]
			}
			runServe(cfg)
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: nota import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			// Export with optional path
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI(cfg)
}

func printHelp() {
	help := `nota - vim-style note manager

Usage:
  nota                       Open interactive TUI
  nota <query>               Quick search → select → copy content
  nota add <title> [content] Add a note from the command line
  nota list                  Print all notes
  nota tags                  Print all known tags
  nota serve [addr]          Serve the JSON API for the browser front end
  nota import <file>         Import notes from HTML
  nota export [path]         Export notes to HTML
  nota help                  Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom

  Actions:
    a           Add note
    e/Enter     Edit selected note
    d           Delete
    p           Pin/unpin
    y           Yank content to clipboard
    /           Filter by text
    s           Global fuzzy search
    c/t         Cycle color/tag filter
    o           Cycle sort mode
    D           Toggle dark mode

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/nota/notes.json (or nota.db when present)
`
	fmt.Print(help)
}

// load opens storage and hydrates the collection.
func load() (*storage.Gateway, *collection.Manager) {
	gateway := storage.Open()
	manager := collection.New(gateway)
	manager.Load()
	return gateway, manager
}

// runTUI runs the full interactive TUI.
func runTUI(cfg *config.Config) {
	gateway, manager := load()
	defer gateway.Close()

	app := tui.NewApp(tui.AppParams{
		Manager:       manager,
		Gateway:       gateway,
		ConfirmDelete: cfg.ConfirmDelete,
		DefaultSort:   collection.ParseSortMode(cfg.DefaultSort),
		DarkMode:      cfg.DarkMode,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and copies the selected note's
// content to the clipboard.
func runQuickSearch(query string) {
	gateway, manager := load()
	defer gateway.Close()

	results := search.FuzzySearch(manager.All(), query)

	if len(results) == 0 {
		fmt.Printf("No notes found for '%s'\n", query)
		os.Exit(0)
	}

	var selected model.Note

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Note
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		note, ok := finalPicker.SelectedNote()
		if !ok {
			os.Exit(0)
		}
		selected = note
	}

	if err := clipboard.WriteAll(selected.Content); err != nil {
		fmt.Fprintf(os.Stderr, "Error copying to clipboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Copied: %s\n", selected.Title)
}

// runAdd handles the add subcommand.
func runAdd(title, content string) {
	gateway, manager := load()
	defer gateway.Close()

	note, err := manager.Add(model.NewNoteParams{
		Title:   title,
		Content: content,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding note: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added: %s\n", note.Title)
}

// runList prints the collection to stdout.
func runList() {
	gateway, manager := load()
	defer gateway.Close()

	notes := manager.Find(collection.Query{})
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return
	}

	for _, note := range notes {
		pin := " "
		if note.Pinned {
			pin = "*"
		}
		line := fmt.Sprintf("%s %s", pin, note.Title)
		if len(note.Tags) > 0 {
			line += "  #" + strings.Join(note.Tags, " #")
		}
		fmt.Println(line)
	}
}

// runTags prints all known tags.
func runTags() {
	gateway, manager := load()
	defer gateway.Close()

	for _, tag := range manager.Tags() {
		fmt.Println(tag)
	}
}

// runServe starts the HTTP JSON API.
func runServe(cfg *config.Config) {
	gateway, manager := load()
	defer gateway.Close()

	srv := server.New(manager, gateway)
	fmt.Printf("Serving on http://%s\n", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error running server: %v\n", err)
		os.Exit(1)
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	gateway, manager := load()
	defer gateway.Close()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	notes, err := importer.ParseHTMLNotes(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := manager.Import(notes)

	fmt.Printf("Imported %d notes", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	// Determine output path
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	gateway, manager := load()
	defer gateway.Close()

	notes := manager.All()
	html := exporter.ExportHTML(notes)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d notes to %s\n", len(notes), outputPath)
}
