package audio

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags holds the ID3 fields the library scanner needs from one file.
type Tags struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Year        int
	TrackNumber int
	DiscNumber  int

	// Duration is in seconds, from the TLEN frame (0 if absent).
	Duration float64
}

// Picture is an embedded cover image.
type Picture struct {
	MimeType string
	Data     []byte
}

// TagReader reads ID3 tags from MP3 files.
//
// TagReader uses the id3v2 library to read:
//   - Artist, Album Artist, Album, Title
//   - Track Number, Disc Number, Year
//   - Length (TLEN)
//   - Cover Art (attached picture)
//
// Example:
//
//	reader := NewTagReader()
//	tags, err := reader.ReadTags("/music/Artist/Album/01 Song.mp3")
//	if err != nil {
//	    log.Printf("Failed to read %s: %v", path, err)
//	}
type TagReader struct{}

// NewTagReader creates a new TagReader.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTags reads the text frames of an MP3 file. Files without an ID3 tag
// yield zero Tags and no error.
func (r *TagReader) ReadTags(path string) (Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, err
	}
	defer tag.Close()

	t := Tags{
		Title:  strings.TrimSpace(tag.Title()),
		Artist: strings.TrimSpace(tag.Artist()),
		Album:  strings.TrimSpace(tag.Album()),
		Year:   leadingInt(tag.Year()),
	}

	// Album Artist (TPE2)
	t.AlbumArtist = strings.TrimSpace(tag.GetTextFrame("TPE2").Text)

	// Track Number (TRCK), "3" or "3/12"
	t.TrackNumber = leadingInt(tag.GetTextFrame("TRCK").Text)

	// Disc Number (TPOS), "1" or "1/2"
	t.DiscNumber = leadingInt(tag.GetTextFrame("TPOS").Text)

	// Length (TLEN) in milliseconds
	if ms := leadingInt(tag.GetTextFrame("TLEN").Text); ms > 0 {
		t.Duration = float64(ms) / 1000
	}

	return t, nil
}

// ReadPicture returns the front cover embedded in an MP3 file, falling back
// to the first attached picture. ok is false when the file has none.
func (r *TagReader) ReadPicture(path string) (pic Picture, ok bool, err error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Attached picture"}})
	if err != nil {
		return Picture{}, false, err
	}
	defer tag.Close()

	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pf, isPic := f.(id3v2.PictureFrame)
		if !isPic || len(pf.Picture) == 0 {
			continue
		}
		if !ok || pf.PictureType == id3v2.PTFrontCover {
			pic = Picture{MimeType: pf.MimeType, Data: pf.Picture}
			ok = true
		}
		if pf.PictureType == id3v2.PTFrontCover {
			break
		}
	}
	return pic, ok, nil
}

// leadingInt parses the digits at the start of s ("2003-05-01" -> 2003,
// "3/12" -> 3). It returns 0 when s does not start with a digit.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
