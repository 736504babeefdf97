package storage

import (
	"errors"
	"testing"
)

func TestMemorySaveLoadRoundTrip(t *testing.T) {
	kv := NewMemoryKV("todos")

	if err := kv.Save("nextId", 42); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got int64
	if err := kv.Load("nextId", &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestMemoryLoadMissingKey(t *testing.T) {
	kv := NewMemoryKV("todos")

	var out int
	if err := kv.Load("nextId", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestMemoryClearKeepsForeignPrefix(t *testing.T) {
	mine := NewMemoryKV("todos")
	other := NewMemoryKV("settings")
	other.data = mine.data

	if err := mine.Save("items", []int{1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := other.Save("theme", "dark"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mine.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	var theme string
	if err := other.Load("theme", &theme); err != nil {
		t.Fatalf("foreign entry lost: %v", err)
	}
	if mine.Len() != 1 {
		t.Fatalf("expected only foreign entry to remain, have %d", mine.Len())
	}
}

func TestMemoryInjectedFailures(t *testing.T) {
	kv := NewMemoryKV("todos")
	boom := errors.New("disk full")

	kv.FailSave = boom
	if err := kv.Save("items", []int{1}); !errors.Is(err, boom) {
		t.Fatalf("expected injected save failure, got: %v", err)
	}

	kv.FailSave = nil
	kv.FailLoad = boom
	var out []int
	if err := kv.Load("items", &out); !errors.Is(err, boom) {
		t.Fatalf("expected injected load failure, got: %v", err)
	}
}

func TestMemoryMalformedRaw(t *testing.T) {
	kv := NewMemoryKV("todos")
	kv.SetRaw("items", "{broken")

	var out []int
	if err := kv.Load("items", &out); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}
