package dto

import (
	"fmt"
	"strings"

	"github.com/handiism/albumgrid/internal/model"
)

// JSONEnvelope is the outer object of every JSON API response.
type JSONEnvelope struct {
	Response JSONResponse `json:"subsonic-response"`
}

// JSONResponse carries the status and exactly one payload.
type JSONResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	Error   *JSONError `json:"error"`

	AlbumList2 *JSONAlbumList `json:"albumList2"`
	Artist     *JSONArtist    `json:"artist"`
	Album      *JSONAlbum     `json:"album"`
}

// JSONError is the error object of a failed response.
type JSONError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// JSONAlbumList is the payload of getAlbumList2.
type JSONAlbumList struct {
	Albums []JSONAlbum `json:"album"`
}

// JSONArtist is the payload of getArtist.
type JSONArtist struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Albums []JSONAlbum `json:"album"`
}

// JSONAlbum is an album entry (ID3 flavour).
type JSONAlbum struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Artist    string     `json:"artist"`
	ArtistID  string     `json:"artistId"`
	CoverArt  string     `json:"coverArt"`
	SongCount int        `json:"songCount"`
	Year      int        `json:"year"`
	Songs     []JSONSong `json:"song"`
}

// ToAlbum converts JSONAlbum to a model.Album.
//
// The API reports a single year per album, so MinYear and MaxYear agree.
// Songs are converted only when the payload carries them (getAlbum).
func (ja *JSONAlbum) ToAlbum() *model.Album {
	name := strings.TrimSpace(ja.Name)
	if name == "" {
		name = ja.ID
	}

	album := &model.Album{
		ID:         ja.ID,
		Name:       name,
		ArtistID:   ja.ArtistID,
		Artist:     ja.Artist,
		MinYear:    ja.Year,
		MaxYear:    ja.Year,
		CoverArtID: ja.CoverArt,
		SongCount:  ja.SongCount,
	}

	for _, js := range ja.Songs {
		album.Tracks = append(album.Tracks, js.ToTrack(album))
		if js.Year > 0 && (album.MinYear == 0 || js.Year < album.MinYear) {
			album.MinYear = js.Year
		}
		if js.Year > album.MaxYear {
			album.MaxYear = js.Year
		}
	}
	if len(album.Tracks) > 0 {
		album.SortTracks()
		if album.SongCount == 0 {
			album.SongCount = len(album.Tracks)
		}
	}

	return album
}

// ToAlbums converts a slice of entries, skipping entries without an id.
func ToAlbums(entries []JSONAlbum) []*model.Album {
	albums := make([]*model.Album, 0, len(entries))
	for i := range entries {
		if entries[i].ID == "" {
			continue
		}
		albums = append(albums, entries[i].ToAlbum())
	}
	return albums
}
