// Package config provides configuration management for albumgrid.
//
// This package handles:
//   - Loading and saving settings from JSON or TOML files
//   - Default configuration values
//   - Conversion to grid, window and layout options for other packages
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// The decoder is picked from the file extension: ".toml" files are read
// with BurntSushi/toml, everything else as JSON. Loaded settings are
// validated; out-of-range values fall back to their defaults.
//
// # Configuration Options
//
// Settings includes options for:
//   - The library source (Subsonic server or local directory)
//   - Display mode and list type
//   - Terminal cell size and width breakpoints
//   - Cover art fetching limits
//   - Queue playlist export
package config
