// Package library indexes a local directory of MP3 files as albums.
//
// Scan walks the directory, reads ID3 tags and groups tracks by album
// artist and album title. Album and artist ids are stable hashes of those
// names, so they survive rescans.
//
//	lib, err := library.Scan(ctx, "/music")
//	if errors.Is(err, library.ErrNoAlbums) {
//	    // nothing to show
//	}
//	albums := lib.Albums("alphabeticalByName", grid.Filter{})
//
// Covers come from a folder image (cover.jpg, folder.jpg, front.jpg and
// their PNG variants) or from the front cover embedded in a track.
package library
