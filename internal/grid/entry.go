package grid

import (
	"strconv"

	"github.com/handiism/albumgrid/internal/model"
)

// EntryKind tags a RenderEntry.
type EntryKind int

const (
	EntryPending EntryKind = iota
	EntryLoaded
)

// RenderEntry is the state of one grid cell for a render pass.
type RenderEntry struct {
	Kind   EntryKind
	Record *model.Album

	// Index is the position of the cell in the whole list.
	Index int

	// ID is set for bulk cells, whose identity is known before the record.
	ID string
}

// Loaded returns an entry for a resolved record.
func Loaded(rec *model.Album, index int) RenderEntry {
	return RenderEntry{Kind: EntryLoaded, Record: rec, Index: index, ID: rec.ID}
}

// Pending returns an entry for a cell whose record is not available.
func Pending(index int) RenderEntry {
	return RenderEntry{Kind: EntryPending, Index: index}
}

// IsLoaded reports whether the entry carries a record.
func (e RenderEntry) IsLoaded() bool {
	return e.Kind == EntryLoaded && e.Record != nil
}

// Key returns the cell key: the record id when known, "#<index>" otherwise.
func (e RenderEntry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return "#" + strconv.Itoa(e.Index)
}
