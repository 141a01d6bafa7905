// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - File writing with parent directory creation
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Case-insensitive lookup of well-known files such as folder covers
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/queue.m3u", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Find a folder cover
//	path, ok := ioutils.FindFile(dir, "cover.jpg", "folder.jpg")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
