package grid

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/albumgrid/internal/model"
)

// DisplayMode selects how records reach the grid.
type DisplayMode int

const (
	// Bulk renders a fully resident, ordered id list.
	Bulk DisplayMode = iota

	// Incremental renders whatever the window currently yields and shows
	// placeholders for the rest.
	Incremental
)

// ModeFor maps the infinite scroll flag to a display mode.
func ModeFor(infiniteScroll bool) DisplayMode {
	if infiniteScroll {
		return Incremental
	}
	return Bulk
}

// String returns "bulk" or "incremental".
func (m DisplayMode) String() string {
	if m == Incremental {
		return "incremental"
	}
	return "bulk"
}

// List types understood by the sources. Only ListTypeRandom changes grid
// behaviour.
const (
	ListTypeAlphabeticalByName   = "alphabeticalByName"
	ListTypeAlphabeticalByArtist = "alphabeticalByArtist"
	ListTypeNewest               = "newest"
	ListTypeByYear               = "byYear"
	ListTypeRandom               = "random"
)

// ListTypes returns every supported list type.
func ListTypes() []string {
	return []string{
		ListTypeAlphabeticalByName,
		ListTypeAlphabeticalByArtist,
		ListTypeNewest,
		ListTypeByYear,
		ListTypeRandom,
	}
}

// ValidListType reports whether t is one of ListTypes.
func ValidListType(t string) bool {
	for _, lt := range ListTypes() {
		if lt == t {
			return true
		}
	}
	return false
}

// Filter holds the active list filter values.
type Filter struct {
	ArtistID string `json:"artist_id,omitempty"`
}

// ListContext is the state of the record list for one render pass.
//
// A nil IDs or Data means the list has not been fetched yet; an empty,
// non-nil IDs is an empty result.
type ListContext struct {
	IDs          []string
	Data         map[string]*model.Album
	Loading      bool
	ListType     string
	FilterValues Filter
}

// Hidden reports whether the grid should show a loading indicator instead of
// tiles. A random list that is reloading stays hidden so the previous order
// is not flashed; other list types keep showing their current records.
func (l ListContext) Hidden() bool {
	return (l.Loading && l.ListType == ListTypeRandom) || l.Data == nil || l.IDs == nil
}

// IsArtistView reports whether the filter pins a single artist.
func (l ListContext) IsArtistView() bool {
	return l.FilterValues.ArtistID != ""
}

// Record returns the record for id, or nil.
func (l ListContext) Record(id string) *model.Album {
	if l.Data == nil {
		return nil
	}
	return l.Data[id]
}

// LinkToRecord builds the route of a record view, e.g. "/album/al-1/show".
// The "edit" and empty views link to the record root.
func LinkToRecord(basePath, id, view string) string {
	link := fmt.Sprintf("%s/%s", strings.TrimRight(basePath, "/"), url.PathEscape(id))
	if view == "show" {
		return link + "/show"
	}
	return link
}
