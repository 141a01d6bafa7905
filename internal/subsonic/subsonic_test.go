package subsonic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/window"
)

func TestToken(t *testing.T) {
	// example from the Subsonic API documentation
	if got := token("sesame", "c19b2d"); got != "26719a1196d2a940705a59634eb18eab" {
		t.Errorf("token = %s", got)
	}
}

// fakeServer serves n albums through getAlbumList2 and checks credentials.
func fakeServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("u") != "admin" || q.Get("t") != token("secret", q.Get("s")) {
			fmt.Fprint(w, `{"subsonic-response":{"status":"failed","error":{"code":40,"message":"Wrong username or password"}}}`)
			return
		}
		if q.Get("f") != "json" || q.Get("c") != "albumgrid" {
			t.Errorf("missing client params: %s", r.URL.RawQuery)
		}

		switch strings.TrimPrefix(r.URL.Path, "/rest/") {
		case "getAlbumList2":
			offset, _ := strconv.Atoi(q.Get("offset"))
			size, _ := strconv.Atoi(q.Get("size"))
			var items []string
			for i := offset; i < n && i < offset+size; i++ {
				items = append(items, fmt.Sprintf(
					`{"id":"al-%d","name":"Album %d","artist":"Artist","artistId":"ar-1","coverArt":"al-%d","year":%d}`,
					i, i, i, 2000+i))
			}
			fmt.Fprintf(w, `{"subsonic-response":{"status":"ok","albumList2":{"album":[%s]}}}`, strings.Join(items, ","))
		case "getArtist":
			fmt.Fprintf(w, `{"subsonic-response":{"status":"ok","artist":{"id":%q,"name":"Artist","album":[{"id":"al-0","name":"Album 0","artistId":%q}]}}}`,
				q.Get("id"), q.Get("id"))
		case "getAlbum":
			fmt.Fprint(w, `{"subsonic-response":{"status":"ok","album":{"id":"al-0","name":"Album 0","song":[
				{"id":"s2","title":"Second","track":2,"year":2003,"path":"a/2.mp3"},
				{"id":"s1","title":"First","track":1,"year":1999,"path":"a/1.mp3"}]}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(srv *httptest.Server, password string) *Client {
	c := New(Config{ServerURL: srv.URL + "/", Username: "admin", Password: password}, nil)
	c.salt = func() string { return "c19b2d" }
	return c
}

func TestAlbumList(t *testing.T) {
	srv := fakeServer(t, 3)
	defer srv.Close()

	albums, err := newTestClient(srv, "secret").AlbumList(context.Background(), "newest", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(albums) != 2 {
		t.Fatalf("got %d albums, want 2", len(albums))
	}
	a := albums[0]
	if a.ID != "al-1" || a.Name != "Album 1" || a.ArtistID != "ar-1" || a.CoverArtID != "al-1" {
		t.Errorf("album = %+v", a)
	}
	if a.YearRange() != "2001" {
		t.Errorf("YearRange = %q", a.YearRange())
	}
}

func TestWrongCredentials(t *testing.T) {
	srv := fakeServer(t, 3)
	defer srv.Close()

	_, err := newTestClient(srv, "nope").AlbumList(context.Background(), "newest", 0, 10)
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("err = %v, want ErrAPI", err)
	}
	if !strings.Contains(err.Error(), "Wrong username or password") {
		t.Errorf("err = %v", err)
	}
}

func TestArtistAlbums(t *testing.T) {
	srv := fakeServer(t, 0)
	defer srv.Close()

	albums, err := newTestClient(srv, "secret").ArtistAlbums(context.Background(), "ar-9")
	if err != nil {
		t.Fatal(err)
	}
	if len(albums) != 1 || albums[0].ArtistID != "ar-9" {
		t.Errorf("albums = %+v", albums)
	}
}

func TestAlbumTracks(t *testing.T) {
	srv := fakeServer(t, 0)
	defer srv.Close()

	album, err := newTestClient(srv, "secret").Album(context.Background(), "al-0")
	if err != nil {
		t.Fatal(err)
	}
	if len(album.Tracks) != 2 || album.Tracks[0].Title != "First" {
		t.Fatalf("tracks not sorted: %+v", album.Tracks)
	}
	if album.YearRange() != "1999 - 2003" {
		t.Errorf("YearRange = %q", album.YearRange())
	}
	if album.SongCount != 2 {
		t.Errorf("SongCount = %d", album.SongCount)
	}
}

func TestCoverArtURL(t *testing.T) {
	c := New(Config{ServerURL: "https://music.example.com", Username: "admin", Password: "sesame"}, nil)
	c.salt = func() string { return "c19b2d" }

	if got := c.CoverArtURL(&model.Album{ID: "al-1"}, 300); got != "" {
		t.Errorf("album without art got URL %q", got)
	}

	raw := c.CoverArtURL(&model.Album{ID: "al-1", CoverArtID: "al-1"}, 300)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Path != "/rest/getCoverArt" {
		t.Errorf("path = %s", u.Path)
	}
	q := u.Query()
	if q.Get("id") != "al-1" || q.Get("size") != "300" || q.Get("t") != "26719a1196d2a940705a59634eb18eab" {
		t.Errorf("query = %s", u.RawQuery)
	}
}

func TestLoader(t *testing.T) {
	srv := fakeServer(t, 7)
	defer srv.Close()

	w := window.New(window.Options{PageSize: 5})
	w.Layout(10, 100)
	w.SetViewport(300)

	loader := newTestClient(srv, "secret").Loader("alphabeticalByName")
	ctx := context.Background()
	for i := 0; i < 3 && w.Total() < 0; i++ {
		if err := w.Preload(ctx, loader, 2); err != nil {
			t.Fatal(err)
		}
	}

	if w.Total() != 7 || w.Loaded() != 7 {
		t.Errorf("total = %d, loaded = %d; want 7, 7", w.Total(), w.Loaded())
	}
}

func TestLoader_PagesLargerThanServerLimit(t *testing.T) {
	srv := fakeServer(t, 1200)
	defer srv.Close()

	w := window.New(window.Options{PageSize: 1000})
	w.Layout(1, 1)
	w.SetViewport(2000)

	loader := newTestClient(srv, "secret").Loader("newest")
	ctx := context.Background()
	for i := 0; i < 3 && w.Total() < 0; i++ {
		if err := w.Preload(ctx, loader, 2); err != nil {
			t.Fatal(err)
		}
	}

	if w.Total() != 1200 || w.Loaded() != 1200 {
		t.Errorf("total = %d, loaded = %d; want 1200, 1200", w.Total(), w.Loaded())
	}
}
