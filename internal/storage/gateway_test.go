package storage

import (
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGateway_SaveLoad(t *testing.T) {
	g := NewGateway(NewMemoryBackend())

	g.Save("sample", sample{Name: "hello", Count: 3})

	var got sample
	if !g.Load("sample", &got) {
		t.Fatal("expected Load to report a hit")
	}
	if got.Name != "hello" || got.Count != 3 {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestGateway_LoadMissLeavesDefault(t *testing.T) {
	g := NewGateway(NewMemoryBackend())

	got := sample{Name: "default"}
	if g.Load("absent", &got) {
		t.Error("expected Load miss for absent slot")
	}
	if got.Name != "default" {
		t.Errorf("miss must leave caller default intact, got %+v", got)
	}
}

func TestGateway_CorruptSlotLeavesDefault(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Put("bad", []byte("{not json"))
	g := NewGateway(backend)

	got := sample{Name: "default"}
	if g.Load("bad", &got) {
		t.Error("expected Load to report a miss on corrupt data")
	}
	if got.Name != "default" {
		t.Errorf("corrupt slot must leave caller default intact, got %+v", got)
	}
}

func TestGateway_NilBackendIsNoOp(t *testing.T) {
	g := NewGateway(nil)

	// None of these may panic or surface errors
	g.Save("x", sample{Name: "y"})
	var got sample
	if g.Load("x", &got) {
		t.Error("nil backend must never report a hit")
	}
	g.Clear()
	g.Close()
}

func TestGateway_Clear(t *testing.T) {
	g := NewGateway(NewMemoryBackend())

	g.Save("a", 1)
	g.Save("b", 2)
	g.Clear()

	var n int
	if g.Load("a", &n) || g.Load("b", &n) {
		t.Error("expected all slots gone after Clear")
	}
}

func TestGateway_Overwrite(t *testing.T) {
	g := NewGateway(NewMemoryBackend())

	g.Save("slot", sample{Count: 1})
	g.Save("slot", sample{Count: 2})

	var got sample
	g.Load("slot", &got)
	if got.Count != 2 {
		t.Errorf("expected last write to win, got %+v", got)
	}
}

func TestJSONBackend_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	g := NewGateway(NewJSONBackend(dir))

	g.Save("notes", sample{Name: "persisted"})

	// A fresh gateway over the same directory sees the value
	g2 := NewGateway(NewJSONBackend(dir))
	var got sample
	if !g2.Load("notes", &got) {
		t.Fatal("expected value to survive reopen")
	}
	if got.Name != "persisted" {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestJSONBackend_MissingFile(t *testing.T) {
	b := NewJSONBackend(t.TempDir())
	if _, err := b.Get("nothing"); err != ErrNoValue {
		t.Errorf("expected ErrNoValue, got %v", err)
	}
}

func TestJSONBackend_ClearOnlySlotFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewJSONBackend(dir)
	b.Put("notes", []byte("{}"))

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := b.Get("notes"); err != ErrNoValue {
		t.Errorf("expected slot gone after Clear, got %v", err)
	}
}

func TestDarkMode(t *testing.T) {
	g := NewGateway(NewMemoryBackend())

	if !DarkMode(g, true) {
		t.Error("expected default when nothing stored")
	}
	if DarkMode(g, false) {
		t.Error("expected default when nothing stored")
	}

	SetDarkMode(g, true)
	if !DarkMode(g, false) {
		t.Error("expected stored value to win over default")
	}

	SetDarkMode(g, false)
	if DarkMode(g, true) {
		t.Error("expected stored false to win over default true")
	}
}

func TestJSONBackend_SlotPath(t *testing.T) {
	b := NewJSONBackend("/tmp/data")
	want := filepath.Join("/tmp/data", "notes.json")
	if got := b.slotPath("notes"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
