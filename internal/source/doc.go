// Package source puts the local and Subsonic libraries behind one interface
// used by the terminal UI and the CLI.
package source
