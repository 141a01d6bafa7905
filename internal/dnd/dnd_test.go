package dnd

import (
	"encoding/json"
	"testing"
)

func TestRegistry_PassLifecycle(t *testing.T) {
	reg := NewRegistry()

	reg.Begin()
	reg.Bind("a", AlbumItem("a"))
	reg.Bind("b", AlbumItem("b"))
	if released := reg.Commit(); len(released) != 0 {
		t.Fatalf("first pass released %v, want nothing", released)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}

	// "a" scrolled away
	reg.Begin()
	reg.Bind("b", AlbumItem("b"))
	released := reg.Commit()
	if len(released) != 1 || released[0] != "a" {
		t.Fatalf("released = %v, want [a]", released)
	}
	if _, ok := reg.Source("a"); ok {
		t.Error("released source should not be retrievable")
	}
}

func TestRegistry_RebindOnIdentityChange(t *testing.T) {
	reg := NewRegistry()

	reg.Bind("#3", AlbumItem("al-1"))
	reg.Bind("#3", AlbumItem("al-1"))
	if reg.Rebinds() != 0 {
		t.Fatalf("identical bind should not count as rebind, got %d", reg.Rebinds())
	}

	reg.Bind("#3", AlbumItem("al-2"))
	if reg.Rebinds() != 1 {
		t.Fatalf("Rebinds() = %d, want 1", reg.Rebinds())
	}

	it, ok := reg.Source("#3")
	if !ok {
		t.Fatal("source missing after rebind")
	}
	if got := it.Payload.AlbumIDs; len(got) != 1 || got[0] != "al-2" {
		t.Errorf("payload = %v, want [al-2]", got)
	}
}

func TestRegistry_SourceIsCopy(t *testing.T) {
	reg := NewRegistry()
	item := AlbumItem("al-1")
	reg.Bind("al-1", item)

	item.Payload.AlbumIDs[0] = "mutated"
	got, _ := reg.Source("al-1")
	if got.Payload.AlbumIDs[0] != "al-1" {
		t.Error("Bind must copy the payload")
	}

	got.Payload.AlbumIDs[0] = "mutated"
	again, _ := reg.Source("al-1")
	if again.Payload.AlbumIDs[0] != "al-1" {
		t.Error("Source must return a copy")
	}
}

func TestRegistry_Drag(t *testing.T) {
	reg := NewRegistry()
	reg.Bind("al-1", AlbumItem("al-1"))
	reg.Bind("song-1", Item{Kind: KindSong})

	var dropped []string
	queue := Target{
		Accepts: []Kind{KindAlbum},
		OnDrop: func(it Item) {
			dropped = append(dropped, it.Payload.AlbumIDs...)
		},
	}

	if _, ok := reg.Drag("al-1", queue); !ok {
		t.Fatal("album drag onto album target should succeed")
	}
	if _, ok := reg.Drag("song-1", queue); ok {
		t.Error("song drag onto album-only target should be rejected")
	}
	if _, ok := reg.Drag("missing", queue); ok {
		t.Error("drag from unbound key should fail")
	}
	if len(dropped) != 1 || dropped[0] != "al-1" {
		t.Errorf("dropped = %v, want [al-1]", dropped)
	}
}

func TestAlbumItem(t *testing.T) {
	it := AlbumItem("al-9")
	if it.Kind != KindAlbum {
		t.Errorf("Kind = %q, want %q", it.Kind, KindAlbum)
	}
	if it.Effect != Copy || it.Effect.String() != "copy" {
		t.Errorf("Effect = %v, want copy", it.Effect)
	}

	data, err := json.Marshal(it.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"albumIds":["al-9"]}` {
		t.Errorf("payload JSON = %s", data)
	}
}
