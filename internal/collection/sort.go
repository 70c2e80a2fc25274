package collection

import (
	"sort"
	"strings"

	"github.com/nikbrunner/nota/internal/model"
)

// SortMode selects the ordering criterion for note lists.
type SortMode int

const (
	SortUpdatedDesc SortMode = iota
	SortUpdatedAsc
	SortTitleAsc
	SortTitleDesc
)

// String returns a short label for the sort mode.
func (s SortMode) String() string {
	switch s {
	case SortUpdatedAsc:
		return "oldest"
	case SortTitleAsc:
		return "title a-z"
	case SortTitleDesc:
		return "title z-a"
	default:
		return "recent"
	}
}

// Next cycles to the following sort mode.
func (s SortMode) Next() SortMode {
	switch s {
	case SortUpdatedDesc:
		return SortUpdatedAsc
	case SortUpdatedAsc:
		return SortTitleAsc
	case SortTitleAsc:
		return SortTitleDesc
	default:
		return SortUpdatedDesc
	}
}

// ParseSortMode maps a string to a SortMode, defaulting to most recently
// updated first.
func ParseSortMode(s string) SortMode {
	switch s {
	case "updated_asc", "oldest":
		return SortUpdatedAsc
	case "title_asc", "title":
		return SortTitleAsc
	case "title_desc":
		return SortTitleDesc
	default:
		return SortUpdatedDesc
	}
}

// Sort orders notes by the given mode with pinned notes always preceding
// unpinned ones, whatever the criterion. The input is partitioned into
// pinned and unpinned sub-sequences (relative order preserved), each
// partition is sorted independently, and the partitions are concatenated
// pinned-first. The input slice is not modified.
func Sort(notes []model.Note, mode SortMode) []model.Note {
	var pinned, unpinned []model.Note
	for _, n := range notes {
		if n.Pinned {
			pinned = append(pinned, n)
		} else {
			unpinned = append(unpinned, n)
		}
	}

	sortPartition(pinned, mode)
	sortPartition(unpinned, mode)

	result := make([]model.Note, 0, len(notes))
	result = append(result, pinned...)
	result = append(result, unpinned...)
	return result
}

// sortPartition sorts a partition in place by the given mode. The sort is
// stable so equal elements keep their insertion-order tiebreak.
func sortPartition(notes []model.Note, mode SortMode) {
	sort.SliceStable(notes, func(i, j int) bool {
		switch mode {
		case SortUpdatedAsc:
			return notes[i].UpdatedAt.Before(notes[j].UpdatedAt)
		case SortTitleAsc:
			return lessTitle(notes[i].Title, notes[j].Title)
		case SortTitleDesc:
			return lessTitle(notes[j].Title, notes[i].Title)
		default:
			return notes[j].UpdatedAt.Before(notes[i].UpdatedAt)
		}
	})
}

// lessTitle compares titles case-insensitively, falling back to a raw
// comparison so equal-fold titles still order deterministically.
func lessTitle(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// sortStrings sorts a string slice ascending.
func sortStrings(s []string) {
	sort.Strings(s)
}
