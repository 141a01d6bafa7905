// Package dnd implements typed drag sources and drop targets.
//
// Tiles bind a drag source under their render key while they are on screen.
// A render pass is bracketed by Begin and Commit: every key bound during the
// pass stays registered, every key that was not bound is released. Binding an
// existing key with a different payload re-binds it.
//
//	reg := dnd.NewRegistry()
//	reg.Begin()
//	reg.Bind("al-1", dnd.AlbumItem("al-1"))
//	reg.Commit()
//
//	queue := dnd.Target{Accepts: []dnd.Kind{dnd.KindAlbum}, OnDrop: enqueue}
//	reg.Drag("al-1", queue)
package dnd

import (
	"slices"
	"sort"
	"sync"
)

// Kind discriminates drag payloads so drop targets can filter by type.
type Kind string

const (
	KindSong   Kind = "song"
	KindAlbum  Kind = "album"
	KindDisc   Kind = "disc"
	KindArtist Kind = "artist"
)

// Kinds returns every payload kind known to the application.
func Kinds() []Kind {
	return []Kind{KindSong, KindAlbum, KindDisc, KindArtist}
}

// Effect is the drop effect a source offers.
type Effect int

const (
	Copy Effect = iota
	Move
)

// String returns "copy" or "move".
func (e Effect) String() string {
	if e == Move {
		return "move"
	}
	return "copy"
}

// Payload is the data carried by a drag.
type Payload struct {
	AlbumIDs []string `json:"albumIds"`
}

// Item is one registered drag source.
type Item struct {
	Kind    Kind
	Payload Payload
	Effect  Effect
}

// AlbumItem returns the drag item for a single album tile.
func AlbumItem(albumID string) Item {
	return Item{
		Kind:    KindAlbum,
		Payload: Payload{AlbumIDs: []string{albumID}},
		Effect:  Copy,
	}
}

func (it Item) clone() Item {
	it.Payload.AlbumIDs = slices.Clone(it.Payload.AlbumIDs)
	return it
}

func (it Item) equal(other Item) bool {
	return it.Kind == other.Kind && it.Effect == other.Effect &&
		slices.Equal(it.Payload.AlbumIDs, other.Payload.AlbumIDs)
}

// Registry tracks the drag sources of the tiles currently on screen.
type Registry struct {
	mu      sync.Mutex
	sources map[string]Item
	seen    map[string]struct{}
	inPass  bool

	// rebinds counts payload replacements.
	rebinds int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Item),
		seen:    make(map[string]struct{}),
	}
}

// Begin starts a render pass.
func (r *Registry) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inPass = true
	clear(r.seen)
}

// Bind acquires the drag source for key, or re-binds it if the payload changed.
func (r *Registry) Bind(key string, item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inPass {
		r.seen[key] = struct{}{}
	}
	if prev, ok := r.sources[key]; ok {
		if prev.equal(item) {
			return
		}
		r.rebinds++
	}
	r.sources[key] = item.clone()
}

// Release drops the drag source for key. Releasing an unknown key is a no-op.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, key)
	delete(r.seen, key)
}

// Commit ends a render pass and releases every source that was not bound
// during it. It returns the released keys in sorted order.
func (r *Registry) Commit() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var released []string
	for key := range r.sources {
		if _, ok := r.seen[key]; !ok {
			released = append(released, key)
			delete(r.sources, key)
		}
	}
	r.inPass = false
	clear(r.seen)
	sort.Strings(released)
	return released
}

// Source returns a copy of the item bound under key.
func (r *Registry) Source(key string) (Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.sources[key]
	if !ok {
		return Item{}, false
	}
	return it.clone(), true
}

// Len returns the number of bound sources.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sources)
}

// Rebinds returns how many times a key's payload was replaced.
func (r *Registry) Rebinds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rebinds
}

// Target is a drop target that accepts a set of kinds.
type Target struct {
	Accepts []Kind
	OnDrop  func(Item)
}

// CanDrop reports whether the target accepts the item's kind.
func (t Target) CanDrop(it Item) bool {
	return slices.Contains(t.Accepts, it.Kind)
}

// Drag performs a drag from the source bound under key onto target.
//
// Returns the dropped item and true when a source exists and the target
// accepts it.
func (r *Registry) Drag(key string, target Target) (Item, bool) {
	it, ok := r.Source(key)
	if !ok || !target.CanDrop(it) {
		return Item{}, false
	}
	if target.OnDrop != nil {
		target.OnDrop(it)
	}
	return it, true
}
