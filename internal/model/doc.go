// Package model defines the core data structures used throughout
// the albumgrid application.
//
// # Album
//
// Album is one record of the gallery. Sources build albums, the grid only
// reads them:
//
//	ids, data := model.Index(albums)
//	fmt.Println(data[ids[0]].YearRange()) // "1999 - 2003"
//
// # Track
//
// Track represents a single file of a locally scanned album:
//
//	for _, t := range album.Tracks {
//	    fmt.Println(t.DisplayTitle())
//	}
package model
