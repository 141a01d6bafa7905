package subsonic

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/handiism/albumgrid/internal/http"
	"github.com/handiism/albumgrid/internal/model"
	"github.com/handiism/albumgrid/internal/subsonic/dto"
	"github.com/handiism/albumgrid/internal/window"
)

const (
	apiVersion = "1.16.1"
	clientName = "albumgrid"
)

// MaxPageSize is the largest page getAlbumList2 accepts.
const MaxPageSize = 500

// ErrAPI is wrapped by every error reported in a failed response body.
var ErrAPI = errors.New("subsonic api error")

// Config holds the server location and credentials.
type Config struct {
	ServerURL string
	Username  string
	Password  string
}

// Client talks to a Subsonic-compatible server.
//
// Requests authenticate with a salted token: t = md5(password + salt), with a
// fresh salt per request, so the password never goes over the wire.
//
// Example usage:
//
//	c := subsonic.New(subsonic.Config{
//	    ServerURL: "https://music.example.com",
//	    Username:  "admin",
//	    Password:  "secret",
//	}, http.NewClient())
//
//	albums, err := c.AlbumList(ctx, "newest", 0, 50)
type Client struct {
	cfg  Config
	http *http.Client
	salt func() string
}

// New creates a Client.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.NewClient()
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return &Client{cfg: cfg, http: httpClient, salt: randomSalt}
}

func randomSalt() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "albumgrid"
	}
	return hex.EncodeToString(b)
}

// token returns md5(password + salt) in lowercase hex.
func token(password, salt string) string {
	sum := md5.Sum([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// endpoint builds an authenticated URL for a REST method.
func (c *Client) endpoint(method string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	salt := c.salt()
	params.Set("u", c.cfg.Username)
	params.Set("t", token(c.cfg.Password, salt))
	params.Set("s", salt)
	params.Set("v", apiVersion)
	params.Set("c", clientName)
	params.Set("f", "json")
	return fmt.Sprintf("%s/rest/%s?%s", c.cfg.ServerURL, method, params.Encode())
}

func (c *Client) call(ctx context.Context, method string, params url.Values) (*dto.JSONResponse, error) {
	var env dto.JSONEnvelope
	if err := c.http.GetJSON(ctx, c.endpoint(method, params), &env); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	resp := &env.Response
	if resp.Status != "ok" {
		if resp.Error != nil {
			return nil, fmt.Errorf("%s: %w: %w", method, ErrAPI, resp.Error)
		}
		return nil, fmt.Errorf("%s: %w: status %q", method, ErrAPI, resp.Status)
	}
	return resp, nil
}

// AlbumList returns one page of albums in the order given by listType.
func (c *Client) AlbumList(ctx context.Context, listType string, offset, size int) ([]*model.Album, error) {
	if size <= 0 {
		return nil, nil
	}
	params := url.Values{}
	params.Set("type", listType)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("size", strconv.Itoa(min(size, MaxPageSize)))
	if listType == "byYear" {
		params.Set("fromYear", "0")
		params.Set("toYear", "9999")
	}

	resp, err := c.call(ctx, "getAlbumList2", params)
	if err != nil {
		return nil, err
	}
	if resp.AlbumList2 == nil {
		return nil, nil
	}
	return dto.ToAlbums(resp.AlbumList2.Albums), nil
}

// AllAlbums pages through the whole album list.
func (c *Client) AllAlbums(ctx context.Context, listType string) ([]*model.Album, error) {
	var all []*model.Album
	for offset := 0; ; offset += MaxPageSize {
		page, err := c.AlbumList(ctx, listType, offset, MaxPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < MaxPageSize {
			return all, nil
		}
	}
}

// ArtistAlbums returns the albums of one artist.
func (c *Client) ArtistAlbums(ctx context.Context, artistID string) ([]*model.Album, error) {
	params := url.Values{}
	params.Set("id", artistID)

	resp, err := c.call(ctx, "getArtist", params)
	if err != nil {
		return nil, err
	}
	if resp.Artist == nil {
		return nil, nil
	}
	return dto.ToAlbums(resp.Artist.Albums), nil
}

// Album returns one album with its songs.
func (c *Client) Album(ctx context.Context, id string) (*model.Album, error) {
	params := url.Values{}
	params.Set("id", id)

	resp, err := c.call(ctx, "getAlbum", params)
	if err != nil {
		return nil, err
	}
	if resp.Album == nil {
		return nil, fmt.Errorf("getAlbum %s: %w: empty album", id, ErrAPI)
	}
	return resp.Album.ToAlbum(), nil
}

// CoverArtURL returns the getCoverArt URL of an album, or "" when the album
// has no artwork.
func (c *Client) CoverArtURL(a *model.Album, size int) string {
	if a == nil || !a.HasCoverArt() {
		return ""
	}
	params := url.Values{}
	params.Set("id", a.CoverArtID)
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}
	return c.endpoint("getCoverArt", params)
}

// FetchCover downloads the cover art of an album.
func (c *Client) FetchCover(ctx context.Context, a *model.Album, size int) ([]byte, error) {
	u := c.CoverArtURL(a, size)
	if u == "" {
		return nil, nil
	}
	return c.http.Get(ctx, u)
}

// Loader returns a window loader over getAlbumList2 for listType.
// Pages larger than the server limit are fetched in several calls.
func (c *Client) Loader(listType string) window.Loader {
	return window.LoaderFunc(func(ctx context.Context, offset, limit int) (window.Page, error) {
		var page window.Page
		for len(page.Records) < limit {
			size := min(limit-len(page.Records), MaxPageSize)
			albums, err := c.AlbumList(ctx, listType, offset+len(page.Records), size)
			if err != nil {
				return window.Page{}, err
			}
			page.Records = append(page.Records, albums...)
			if len(albums) < size {
				page.Done = true
				break
			}
		}
		return page, nil
	})
}
