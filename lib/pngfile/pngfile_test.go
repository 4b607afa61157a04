// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pngfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/pngme/lib/png"
)

func testDocument() *png.Document {
	return png.NewDocument(
		png.NewChunk(png.TypeIHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 0, 0, 0, 0}),
		png.NewChunk(png.TypeIDAT, []byte{0x78, 0x9c, 0x63, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01}),
		png.NewChunk(png.MustChunkType("ruSt"), []byte("hidden")),
		png.NewChunk(png.TypeIEND, nil),
	)
}

func TestWriteFileRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	data := []byte("not really a png")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("ReadFile = %q, want %q", got, data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestWriteFilePreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := WriteFile(path, []byte("new contents")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new contents" {
		t.Errorf("contents = %q, want %q", got, "new contents")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteFileLeavesNoTemporaryFiles(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "image.png")
	for range 3 {
		if err := WriteFile(path, []byte("data")); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "image.png" {
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("directory contains %v, want only image.png", names)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "image.png")
	if err := WriteFile(path, []byte("data")); err == nil {
		t.Fatal("WriteFile into a missing directory succeeded")
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("Read = %q, want abc", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	document := testDocument()

	if err := Save(path, document); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasPrefix(raw, png.Signature[:]) {
		t.Errorf("saved file does not start with the PNG signature")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(loaded.Encode(), document.Encode()) {
		t.Error("loaded document does not re-encode to the saved bytes")
	}
	chunk, ok := loaded.Find(png.MustChunkType("ruSt"))
	if !ok {
		t.Fatal("ruSt chunk missing after Load")
	}
	if string(chunk.Data()) != "hidden" {
		t.Errorf("ruSt data = %q, want hidden", chunk.Data())
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	if err := os.WriteFile(path, []byte("GIF89a"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if !errors.Is(err, png.ErrInvalidSignature) {
		t.Errorf("got %v, want ErrInvalidSignature", err)
	}
	if err != nil && !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}
