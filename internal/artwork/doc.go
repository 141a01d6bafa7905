// Package artwork fetches cover art and paints it for the terminal.
//
// # Painting
//
// ImageService decodes cover images and renders them with half-block
// characters, two pixel rows per terminal row:
//
//	svc := artwork.NewImageService()
//	img, _ := svc.Decode(data)
//	fmt.Println(svc.Blocks(img, 24, 12))
//
// # Fetching
//
// Fetcher wraps a CoverSource with a concurrency limit and an LRU of painted
// covers keyed by cover id and footprint. Requests carry the key of the tile
// that asked for them; Retain cancels requests of tiles that left the screen.
package artwork
