package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVLoadMissingKey(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kv.Load("nothing_here"); !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestFileKVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}

	blob := []byte(`{"hello": "world"}`)
	if err := kv.Save(AccountsKey, blob); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	loaded, err := kv.Load(AccountsKey)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if !bytes.Equal(loaded, blob) {
		t.Fatalf("loaded=%q want=%q", loaded, blob)
	}

	// The temporary file from the atomic write must not linger.
	if _, err := os.Stat(filepath.Join(dir, AccountsKey+".json.tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("tmp file left behind: %v", err)
	}
}

func TestFileKVSaveOverwrites(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("key", []byte("a much longer first blob")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save("key", []byte("short")); err != nil {
		t.Fatal(err)
	}
	loaded, err := kv.Load("key")
	if err != nil {
		t.Fatal(err)
	}
	if string(loaded) != "short" {
		t.Fatalf("loaded=%q want=%q", loaded, "short")
	}
}

func TestFileKVCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileKV(dir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}
