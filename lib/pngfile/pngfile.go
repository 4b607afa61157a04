// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pngfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/pngme/lib/png"
)

// MaxFileSize bounds how much Read and ReadFile will load. PNG files
// larger than this are almost certainly not what the caller meant to
// edit in memory.
const MaxFileSize = 1 << 30

// ErrTooLarge is returned when input exceeds MaxFileSize.
var ErrTooLarge = errors.New("pngfile: input exceeds maximum size")

// defaultMode is used when WriteFile creates a new file.
const defaultMode fs.FileMode = 0644

// Read loads all of reader, up to MaxFileSize.
func Read(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// ReadFile loads the file at path. A missing file produces an error
// wrapping fs.ErrNotExist.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteFile atomically replaces path with data. The bytes go to a
// temporary file in the same directory, which is fsynced and renamed
// into place, so readers see either the old file or the new one and
// never a partial write. An existing file keeps its permission bits;
// a new file gets 0644. The parent directory must already exist.
func WriteFile(path string, data []byte) error {
	mode := defaultMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	directory := filepath.Dir(path)
	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	temporaryPath := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Chmod(mode); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("setting mode on temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming %s into place: %w", filepath.Base(path), err)
	}

	// The rename is only durable once the directory entry is flushed.
	parentDirectory, err := os.Open(directory)
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}

// Load reads and decodes the PNG file at path.
func Load(path string) (*png.Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	document, err := png.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return document, nil
}

// Save encodes document and writes it to path with WriteFile.
func Save(path string, document *png.Document) error {
	return WriteFile(path, document.Encode())
}
