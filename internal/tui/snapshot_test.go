package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/handiism/albumgrid/internal/config"
	"github.com/handiism/albumgrid/internal/grid"
)

func TestSnapshot_Bulk(t *testing.T) {
	s := config.DefaultSettings()
	out, err := Snapshot(context.Background(), s, newFakeSource(8), SnapshotOptions{Width: 120, Rows: 10})
	if err != nil {
		t.Fatal(err)
	}

	// bulk frames show the whole list regardless of Rows
	if lines := strings.Count(out, "\n") + 1; lines != 2*17 {
		t.Errorf("got %d lines, want %d", lines, 2*17)
	}
	for _, want := range []string{"Album 0", "Album 7", "Bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot is missing %q", want)
		}
	}
}

func TestSnapshot_IncrementalLoadsEveryVisiblePage(t *testing.T) {
	s := config.DefaultSettings()
	s.InfiniteScroll = true
	s.PageSize = 2

	out, err := Snapshot(context.Background(), s, newFakeSource(8), SnapshotOptions{Width: 120, Rows: 35})
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out, "\n") + 1; lines > 35 {
		t.Errorf("incremental snapshot has %d lines, want at most 35", lines)
	}
	for _, want := range []string{"Album 0", "Album 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot is missing %q", want)
		}
	}
}

func TestSnapshot_ArtistFilter(t *testing.T) {
	s := config.DefaultSettings()
	out, err := Snapshot(context.Background(), s, newFakeSource(4), SnapshotOptions{
		Width:  120,
		Rows:   35,
		Filter: grid.Filter{ArtistID: "ar-0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Album 1") || !strings.Contains(out, "Album 2") {
		t.Errorf("filter not applied:\n%s", out)
	}
	// artist views show the year range instead of the artist
	if strings.Contains(out, "Ann") || !strings.Contains(out, "2002") {
		t.Errorf("artist view subtitles wrong:\n%s", out)
	}
}

func TestSnapshot_PaintsCovers(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	src := newFakeSource(2)
	src.cover = buf.Bytes()
	src.albums[0].CoverArtID = src.albums[0].ID

	s := config.DefaultSettings()
	out, err := Snapshot(context.Background(), s, src, SnapshotOptions{Width: 120, Rows: 35, Covers: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "▀") {
		t.Error("cover art was not painted")
	}

	plain, err := Snapshot(context.Background(), s, src, SnapshotOptions{Width: 120, Rows: 35})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain, "▀") {
		t.Error("covers painted although disabled")
	}
}
