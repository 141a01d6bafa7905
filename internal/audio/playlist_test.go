package audio

import (
	"strings"
	"testing"

	"github.com/handiism/albumgrid/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist("Queue", createTestTracks(), "")

	want := "/music/Test Artist/Test Album/01 track1.mp3\n/music/Test Artist/Test Album/02 track2.mp3\n"
	if content != want {
		t.Errorf("M3U content = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist("Queue", createTestTracks(), "/music")

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - track1\n") {
		t.Errorf("Extended M3U should contain #EXTINF, got %q", content)
	}
	if !strings.Contains(content, "\nTest Artist/Test Album/01 track1.mp3\n") {
		t.Errorf("paths should be relative to the base dir, got %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist("Queue", createTestTracks(), "")

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "NumberOfEntries=2\n") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(FormatWPL, false)

	content := creator.CreatePlaylist("Queue", createTestTracks(), "")

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>Queue</title>") {
		t.Error("WPL should carry the playlist title")
	}
	if strings.Count(content, "<media src=") != 2 {
		t.Error("WPL should contain one media element per track")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	creator := NewPlaylistCreator(FormatZPL, false)

	content := creator.CreatePlaylist("Queue", createTestTracks(), "")

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `albumTitle="Test Album"`) {
		t.Error("ZPL should contain albumTitle attribute")
	}
	if !strings.Contains(content, `duration="180000"`) {
		t.Error("ZPL durations should be in milliseconds")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	album := &model.Album{ID: "al-1", Name: "Album <Special>", Artist: "Artist & Co"}
	track := &model.Track{Album: album, Number: 1, Title: "Track & \"Quote\"", Duration: 180, Path: "/music/a.mp3"}

	creator := NewPlaylistCreator(FormatZPL, false)
	content := creator.CreatePlaylist("Mine & Yours", []*model.Track{track}, "")

	if !strings.Contains(content, "Mine &amp; Yours") {
		t.Error("ZPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("ZPL should escape < and >")
	}
}

func TestPlaylistCreator_SkipsTracksWithoutPath(t *testing.T) {
	tracks := append(createTestTracks(), &model.Track{Title: "remote only"}, nil)

	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist("Queue", tracks, "")

	if !strings.Contains(content, "NumberOfEntries=2\n") {
		t.Errorf("tracks without a path should be skipped, got %q", content)
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatWPL, ".wpl"},
		{"zpl", FormatZPL, ".zpl"},
		{"xspf", FormatM3U, ".m3u"},
	}
	for _, tt := range tests {
		got := ParsePlaylistFormat(tt.in)
		if got != tt.want || got.Extension() != tt.ext {
			t.Errorf("ParsePlaylistFormat(%q) = %v (%s), want %v (%s)", tt.in, got, got.Extension(), tt.want, tt.ext)
		}
	}
}

func createTestTracks() []*model.Track {
	album := &model.Album{ID: "al-1", Name: "Test Album", Artist: "Test Artist"}

	track1 := &model.Track{Album: album, Number: 1, Title: "track1", Duration: 180, Path: "/music/Test Artist/Test Album/01 track1.mp3"}
	track2 := &model.Track{Album: album, Number: 2, Title: "track2", Duration: 200, Path: "/music/Test Artist/Test Album/02 track2.mp3"}

	album.Tracks = []*model.Track{track1, track2}

	return album.Tracks
}
