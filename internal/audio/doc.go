// Package audio provides audio file services: ID3 tag reading for local
// libraries and playlist generation for the play queue.
//
// # ID3 Tags
//
// Use the TagReader to read the fields a library needs from an MP3 file:
//
//	reader := audio.NewTagReader()
//	tags, err := reader.ReadTags(path)
//	pic, ok, err := reader.ReadPicture(path)
//
// The reader supports:
//   - Artist, Album Artist
//   - Album Title, Track Title
//   - Track Number, Disc Number, Year, Length
//   - Cover Art (embedded front cover)
//
// # Playlist Generation
//
// Export the play queue in various formats:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist("Queue", tracks, dir)
//	os.WriteFile(filepath.Join(dir, "queue.m3u"), []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
