// Package queue holds the play queue fed by the album grid.
//
// # Manager
//
// The Manager collects albums in play order:
//
//  1. Play replaces the queue with one album (the tile's play action)
//  2. Add appends albums (the context menu, or a drop on Target)
//  3. Tracks resolves every queued album to its tracks
//  4. Export writes the resolved tracks as a playlist
//
// # Basic Usage
//
//	manager := queue.NewManager(src, queue.DefaultOptions(), func(event queue.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	target := manager.Target(lookup)
//	registry.Drag(tileKey, target)
//
//	path, err := manager.Export(ctx, "/music/playlists", "Queue")
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Retry Logic
//
// Failed track lookups are retried with exponential backoff, configurable
// via Options.MaxRetries, RetryCooldown and RetryExponent.
package queue
