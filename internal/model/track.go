package model

import "fmt"

// Track represents a single track within an album.
//
// Tracks are only known to sources that read files directly. They are used
// to compute year ranges while scanning and to export the play queue as a
// playlist.
type Track struct {
	// Album is a reference to the parent album.
	Album *Album

	// Number is the track number (1-indexed, 0 if unknown).
	Number int

	// DiscNumber is the disc number (1-indexed, 0 if unknown).
	DiscNumber int

	// Title is the track title.
	Title string

	// Artist is the track artist, which may differ from the album artist.
	Artist string

	// Year is the release year read from the file tags (0 if unknown).
	Year int

	// Duration is the track length in seconds.
	Duration float64

	// Path is the local file path of the track.
	Path string
}

// DisplayTitle returns "Artist - Title", falling back to the album artist.
func (t *Track) DisplayTitle() string {
	artist := t.Artist
	if artist == "" && t.Album != nil {
		artist = t.Album.Artist
	}
	if artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", artist, t.Title)
}
