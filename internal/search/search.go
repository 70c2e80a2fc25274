package search

import (
	"github.com/nikbrunner/nota/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Note           model.Note
	MatchedIndexes []int
	Score          int
}

// noteTitles implements fuzzy.Source for a note slice.
type noteTitles []model.Note

func (nt noteTitles) String(i int) string {
	return nt[i].Title
}

func (nt noteTitles) Len() int {
	return len(nt)
}

// FuzzySearch matches notes by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearch(notes []model.Note, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, noteTitles(notes))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Note:           notes[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
