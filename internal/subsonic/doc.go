// Package subsonic reads album lists from a Subsonic-compatible server
// (Navidrome, Airsonic, Gonic and friends).
//
// The package provides everything the grid needs from a remote library:
//
//  1. Bulk lists through AlbumList, AllAlbums and ArtistAlbums
//  2. A window.Loader for incremental mode through Loader
//  3. A cover art resolver through CoverArtURL and FetchCover
//
// # Album Lists
//
//	c := subsonic.New(cfg, http.NewClient())
//	albums, err := c.AllAlbums(ctx, "alphabeticalByName")
//	if errors.Is(err, subsonic.ErrAPI) {
//	    // the server rejected the request (bad credentials, unknown id, ...)
//	}
//
// # Incremental Loading
//
//	w := window.New(window.DefaultOptions())
//	err := w.Preload(ctx, c.Loader("newest"), 4)
//
// JSON payloads are decoded by the dto subpackage and converted to
// model.Album values.
package subsonic
