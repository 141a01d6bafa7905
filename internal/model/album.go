package model

import (
	"fmt"
	"sort"
	"strings"
)

// Album represents one album record as delivered by a library source.
//
// Album contains everything a grid tile needs to render:
//   - ID for keys, links and drag payloads
//   - Name and Artist for the title and subtitle rows
//   - MinYear and MaxYear for the year-range subtitle
//   - CoverArtID for cover art resolution
//
// Albums are immutable once a source has built them. Tiles reference albums,
// they never own or modify them.
//
// Example:
//
//	album := &Album{
//	    ID:         "al-42",
//	    Name:       "Abbey Road",
//	    ArtistID:   "ar-7",
//	    Artist:     "The Beatles",
//	    MinYear:    1969,
//	    MaxYear:    1969,
//	    CoverArtID: "al-42",
//	}
//	album.YearRange() // "1969"
type Album struct {
	// ID uniquely identifies the album within its source.
	ID string

	// Name is the album title.
	Name string

	// ArtistID references the album artist within the same source.
	ArtistID string

	// Artist is the album artist display name.
	Artist string

	// MinYear and MaxYear bound the release years of the album's tracks.
	// Zero means unknown.
	MinYear int
	MaxYear int

	// CoverArtID is the source-specific cover art reference.
	// Empty string means no artwork is available.
	CoverArtID string

	// SongCount is the number of tracks reported by the source.
	SongCount int

	// Tracks is only populated by sources that know their files (local libraries).
	Tracks []*Track

	// Path is the local directory holding the album, if any.
	Path string
}

// HasCoverArt returns true if the album has cover art available.
func (a *Album) HasCoverArt() bool {
	return a.CoverArtID != ""
}

// YearRange formats the album's release years for display.
//
// Returns:
//   - "" when both years are unknown
//   - "1999" when only one year is known or both agree
//   - "1999 - 2003" otherwise
func (a *Album) YearRange() string {
	lo, hi := a.MinYear, a.MaxYear
	switch {
	case lo == 0 && hi == 0:
		return ""
	case lo == 0:
		return fmt.Sprintf("%d", hi)
	case hi == 0 || lo == hi:
		return fmt.Sprintf("%d", lo)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%d - %d", lo, hi)
}

// SortTracks orders the album's tracks by disc, then track number, then title.
func (a *Album) SortTracks() {
	sort.SliceStable(a.Tracks, func(i, j int) bool {
		ti, tj := a.Tracks[i], a.Tracks[j]
		if ti.DiscNumber != tj.DiscNumber {
			return ti.DiscNumber < tj.DiscNumber
		}
		if ti.Number != tj.Number {
			return ti.Number < tj.Number
		}
		return strings.ToLower(ti.Title) < strings.ToLower(tj.Title)
	})
}

// Index maps album IDs to albums and returns the IDs in input order.
//
// This is the shape list contexts carry: an ordered id sequence plus an
// id -> record mapping.
func Index(albums []*Album) (ids []string, data map[string]*Album) {
	ids = make([]string, 0, len(albums))
	data = make(map[string]*Album, len(albums))
	for _, a := range albums {
		if a == nil {
			continue
		}
		if _, dup := data[a.ID]; dup {
			continue
		}
		ids = append(ids, a.ID)
		data[a.ID] = a
	}
	return ids, data
}
