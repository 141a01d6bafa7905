package dto

import (
	"github.com/handiism/albumgrid/internal/model"
)

// JSONSong represents a song child of a getAlbum response.
type JSONSong struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Track      *int    `json:"track"`
	DiscNumber *int    `json:"discNumber"`
	Year       int     `json:"year"`
	Duration   float64 `json:"duration"`
	Path       string  `json:"path"`
}

// ToTrack converts JSONSong to a model.Track.
func (js *JSONSong) ToTrack(album *model.Album) *model.Track {
	// Default track and disc numbers to 1 for untagged files
	number := 1
	if js.Track != nil {
		number = *js.Track
	}
	disc := 1
	if js.DiscNumber != nil {
		disc = *js.DiscNumber
	}

	return &model.Track{
		Album:      album,
		Number:     number,
		DiscNumber: disc,
		Title:      js.Title,
		Artist:     js.Artist,
		Year:       js.Year,
		Duration:   js.Duration,
		Path:       js.Path,
	}
}
