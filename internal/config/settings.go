package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/handiism/albumgrid/internal/audio"
	"github.com/handiism/albumgrid/internal/grid"
	"github.com/handiism/albumgrid/internal/layout"
	"github.com/handiism/albumgrid/internal/queue"
	"github.com/handiism/albumgrid/internal/subsonic"
	"github.com/handiism/albumgrid/internal/window"
)

// Library sources.
const (
	SourceSubsonic = "subsonic"
	SourceLocal    = "local"
)

// Settings holds all configuration options.
type Settings struct {
	// Library source
	Source      string `json:"source" toml:"source"` // subsonic, local
	ServerURL   string `json:"server_url" toml:"server_url"`
	Username    string `json:"username" toml:"username"`
	Password    string `json:"password" toml:"password"`
	LibraryPath string `json:"library_path" toml:"library_path"`

	// Grid settings
	InfiniteScroll bool   `json:"infinite_scroll" toml:"infinite_scroll"`
	ListType       string `json:"list_type" toml:"list_type"`
	PageSize       int    `json:"page_size" toml:"page_size"`
	CoverArtSize   int    `json:"cover_art_size" toml:"cover_art_size"`
	BasePath       string `json:"base_path" toml:"base_path"`

	// Terminal geometry
	CellWidthPx  float64            `json:"cell_width_px" toml:"cell_width_px"`
	CellHeightPx float64            `json:"cell_height_px" toml:"cell_height_px"`
	Breakpoints  layout.Breakpoints `json:"breakpoints" toml:"breakpoints"`
	MarginCells  int                `json:"margin_cells" toml:"margin_cells"`

	// Cover art fetching
	MaxConcurrentCovers int `json:"max_concurrent_covers" toml:"max_concurrent_covers"`
	CoverCacheSize      int `json:"cover_cache_size" toml:"cover_cache_size"`

	// Queue export
	PlaylistFormat  string `json:"playlist_format" toml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended     bool   `json:"m3u_extended" toml:"m3u_extended"`
	QueueExportPath string `json:"queue_export_path" toml:"queue_export_path"`

	LogPath string `json:"log_path" toml:"log_path"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Source:      SourceLocal,
		LibraryPath: filepath.Join(homeDir, "Music"),

		InfiniteScroll: false,
		ListType:       grid.ListTypeAlphabeticalByName,
		PageSize:       window.DefaultOptions().PageSize,
		CoverArtSize:   grid.DefaultCoverArtSize,
		BasePath:       "/album",

		CellWidthPx:  8,
		CellHeightPx: 16,
		Breakpoints:  layout.DefaultBreakpoints(),
		MarginCells:  1,

		MaxConcurrentCovers: 4,
		CoverCacheSize:      256,

		PlaylistFormat:  "m3u",
		M3UExtended:     true,
		QueueExportPath: filepath.Join(homeDir, "Music", "queue"),

		LogPath: filepath.Join(os.TempDir(), "albumgrid.log"),
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "albumgrid", "config.json")
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads settings from a JSON or TOML file, chosen by extension.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	settings.Validate()
	return settings, nil
}

// Save writes settings to a JSON or TOML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// Validate replaces out-of-range values with their defaults.
func (s *Settings) Validate() {
	def := DefaultSettings()

	switch s.Source {
	case SourceSubsonic, SourceLocal:
	default:
		s.Source = def.Source
	}
	if !grid.ValidListType(s.ListType) {
		s.ListType = def.ListType
	}
	if s.PageSize < 1 {
		s.PageSize = def.PageSize
	}
	s.PageSize = min(s.PageSize, subsonic.MaxPageSize)
	if s.CoverArtSize < 1 {
		s.CoverArtSize = def.CoverArtSize
	}
	if s.BasePath == "" {
		s.BasePath = def.BasePath
	}
	if s.CellWidthPx <= 0 {
		s.CellWidthPx = def.CellWidthPx
	}
	if s.CellHeightPx <= 0 {
		s.CellHeightPx = def.CellHeightPx
	}
	if !s.Breakpoints.Valid() {
		s.Breakpoints = def.Breakpoints
	}
	if s.MarginCells < 0 {
		s.MarginCells = 0
	}
	if s.MaxConcurrentCovers < 1 {
		s.MaxConcurrentCovers = def.MaxConcurrentCovers
	}
	if s.CoverCacheSize < 1 {
		s.CoverCacheSize = def.CoverCacheSize
	}
	switch s.PlaylistFormat {
	case "m3u", "pls", "wpl", "zpl":
	default:
		s.PlaylistFormat = def.PlaylistFormat
	}
}

// ToGridOptions converts settings to grid container options.
func (s *Settings) ToGridOptions() grid.Options {
	return grid.Options{
		Mode:         grid.ModeFor(s.InfiniteScroll),
		BasePath:     s.BasePath,
		CoverArtSize: s.CoverArtSize,
	}
}

// ToWindowOptions converts settings to incremental window options.
func (s *Settings) ToWindowOptions() window.Options {
	opts := window.DefaultOptions()
	opts.PageSize = s.PageSize
	return opts
}

// CellMetrics returns the configured terminal cell size.
func (s *Settings) CellMetrics() layout.CellMetrics {
	return layout.CellMetrics{Width: s.CellWidthPx, Height: s.CellHeightPx}
}

// ToQueueOptions converts settings to play queue options.
func (s *Settings) ToQueueOptions() queue.Options {
	opts := queue.DefaultOptions()
	opts.PlaylistFormat = audio.ParsePlaylistFormat(s.PlaylistFormat)
	opts.M3UExtended = s.M3UExtended
	return opts
}
