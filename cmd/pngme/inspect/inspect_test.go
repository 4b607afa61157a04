// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/codec"
	"github.com/bureau-foundation/pngme/lib/config"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/render"
)

var discard = slog.New(slog.DiscardHandler)

func imageChunks(t *testing.T) []*png.Chunk {
	t.Helper()
	text, err := png.NewText("Author", "Ferris")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	return []*png.Chunk{
		png.NewChunk(png.TypeIHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}),
		png.NewChunk(png.TypeTEXT, text.Bytes()),
		png.NewChunk(png.TypeIDAT, []byte{0x78, 0x9c, 0x63, 0xf8, 0xcf, 0xc0, 0x00, 0x00, 0x03, 0x01, 0x01, 0x00}),
		png.NewChunk(png.TypeIEND, nil),
	}
}

func writeImage(t *testing.T, name string, chunks ...*png.Chunk) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, png.NewDocument(chunks...).Encode(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func defaultConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
}

func exitCode(err error) int {
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	return -1
}

func TestInfo(t *testing.T) {
	defaultConfig(t)
	path := writeImage(t, "image.png", imageChunks(t)...)

	var stdout bytes.Buffer
	if err := runInfo(context.Background(), &infoParams{}, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "PNG 4 chunks, ") {
		t.Errorf("output = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Image 1x1, 8-bit RGB") {
		t.Errorf("output lacks the image line:\n%s", stdout.String())
	}
}

func TestInfoRaw(t *testing.T) {
	defaultConfig(t)
	chunks := imageChunks(t)
	path := writeImage(t, "image.png", chunks...)

	params := &infoParams{Raw: true}
	var stdout bytes.Buffer
	if err := runInfo(context.Background(), params, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	if want := png.NewDocument(chunks...).String(); stdout.String() != want {
		t.Errorf("raw output =\n%s\nwant\n%s", stdout.String(), want)
	}
}

func TestInfoJSON(t *testing.T) {
	defaultConfig(t)
	path := writeImage(t, "image.png", imageChunks(t)...)

	params := &infoParams{}
	params.OutputJSON = true
	var stdout bytes.Buffer
	if err := runInfo(context.Background(), params, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runInfo: %v", err)
	}
	var result struct {
		Chunks     int      `json:"chunks"`
		Digest     string   `json:"digest"`
		ChunkTypes []string `json:"chunk_types"`
		Header     struct {
			Width    uint32 `json:"width"`
			BitDepth uint8  `json:"bit_depth"`
		} `json:"header"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, stdout.String())
	}
	if result.Chunks != 4 || result.Header.Width != 1 || result.Header.BitDepth != 8 {
		t.Errorf("result = %+v", result)
	}
	if strings.Join(result.ChunkTypes, ",") != "IHDR,tEXt,IDAT,IEND" {
		t.Errorf("chunk_types = %v", result.ChunkTypes)
	}
	if len(result.Digest) != 64 {
		t.Errorf("digest = %q, want 64 hex characters", result.Digest)
	}
}

func TestInfoArguments(t *testing.T) {
	defaultConfig(t)
	var stdout bytes.Buffer
	err := runInfo(context.Background(), &infoParams{}, nil, &stdout, discard)
	var commandError *cli.CommandError
	if !errors.As(err, &commandError) || commandError.Category != cli.CategoryValidation {
		t.Errorf("no arguments: got %v, want validation error", err)
	}

	err = runInfo(context.Background(), &infoParams{}, []string{filepath.Join(t.TempDir(), "absent.png")}, &stdout, discard)
	if !errors.As(err, &commandError) || commandError.Category != cli.CategoryNotFound {
		t.Errorf("missing file: got %v, want not-found error", err)
	}
}

func TestList(t *testing.T) {
	defaultConfig(t)
	path := writeImage(t, "image.png", imageChunks(t)...)

	var stdout bytes.Buffer
	if err := runList(context.Background(), &listParams{}, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runList: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), stdout.String())
	}
	if !strings.Contains(lines[2], "tEXt") || !strings.Contains(lines[2], "-PRS") {
		t.Errorf("tEXt row = %q", lines[2])
	}
}

func TestListCBOR(t *testing.T) {
	defaultConfig(t)
	path := writeImage(t, "image.png", imageChunks(t)...)

	params := &listParams{}
	params.OutputCBOR = true
	var stdout bytes.Buffer
	if err := runList(context.Background(), params, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runList: %v", err)
	}
	var rows []render.ChunkRow
	if err := codec.Unmarshal(stdout.Bytes(), &rows); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(rows) != 4 || rows[0].Type != png.TypeIHDR || rows[3].Type != png.TypeIEND {
		t.Errorf("rows = %+v", rows)
	}

	// Deterministic: the same file lists to the same bytes.
	var again bytes.Buffer
	if err := runList(context.Background(), params, []string{path}, &again, discard); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !bytes.Equal(stdout.Bytes(), again.Bytes()) {
		t.Error("CBOR listing is not deterministic")
	}
}

func TestListRejectsBothFormats(t *testing.T) {
	defaultConfig(t)
	params := &listParams{}
	params.OutputJSON, params.OutputCBOR = true, true
	var stdout bytes.Buffer
	if err := runList(context.Background(), params, []string{"image.png"}, &stdout, discard); err == nil {
		t.Error("runList accepted --json with --cbor")
	}
}

func TestText(t *testing.T) {
	defaultConfig(t)
	path := writeImage(t, "image.png", imageChunks(t)...)

	params := &textParams{}
	params.OutputJSON = true
	var stdout bytes.Buffer
	if err := runText(context.Background(), params, []string{path}, &stdout, discard); err != nil {
		t.Fatalf("runText: %v", err)
	}
	var entries []png.TextEntry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(entries) != 1 || entries[0].Keyword != "Author" || entries[0].Text != "Ferris" || entries[0].Type != png.TypeTEXT {
		t.Errorf("entries = %+v", entries)
	}
}

func TestVerify(t *testing.T) {
	defaultConfig(t)
	chunks := imageChunks(t)

	t.Run("valid", func(t *testing.T) {
		path := writeImage(t, "image.png", chunks...)
		var stdout bytes.Buffer
		if err := runVerify(context.Background(), &verifyParams{}, []string{path}, &stdout, discard); err != nil {
			t.Fatalf("runVerify: %v", err)
		}
		if !strings.HasPrefix(stdout.String(), "ok: 4 chunks, digest ") {
			t.Errorf("output = %q", stdout.String())
		}
	})

	t.Run("placement", func(t *testing.T) {
		path := writeImage(t, "image.png", chunks[0], chunks[2], chunks[3], chunks[1])
		var stdout bytes.Buffer
		err := runVerify(context.Background(), &verifyParams{}, []string{path}, &stdout, discard)
		if exitCode(err) != 1 {
			t.Fatalf("got %v, want exit 1", err)
		}
		if !strings.HasPrefix(stdout.String(), "FAIL placement: ") {
			t.Errorf("output = %q", stdout.String())
		}
	})

	t.Run("checksum", func(t *testing.T) {
		data := png.NewDocument(chunks...).Encode()
		data[len(data)-1] ^= 0xff
		path := filepath.Join(t.TempDir(), "image.png")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		params := &verifyParams{}
		params.OutputJSON = true
		var stdout bytes.Buffer
		err := runVerify(context.Background(), params, []string{path}, &stdout, discard)
		if exitCode(err) != 1 {
			t.Fatalf("got %v, want exit 1", err)
		}
		var result verifyResult
		if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if result.Valid || result.Stage != "decode" || result.Index == nil || *result.Index != 3 {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("missing", func(t *testing.T) {
		var stdout bytes.Buffer
		err := runVerify(context.Background(), &verifyParams{}, []string{filepath.Join(t.TempDir(), "absent.png")}, &stdout, discard)
		var commandError *cli.CommandError
		if !errors.As(err, &commandError) || commandError.Category != cli.CategoryNotFound {
			t.Errorf("got %v, want not-found error", err)
		}
	})
}

func TestDiff(t *testing.T) {
	defaultConfig(t)
	chunks := imageChunks(t)
	original := writeImage(t, "original.png", chunks...)
	copied := writeImage(t, "copy.png", chunks...)
	secret := png.NewChunk(png.MustChunkType("ruSt"), []byte("hidden"))
	encoded := writeImage(t, "encoded.png", chunks[0], chunks[1], chunks[2], secret, chunks[3])

	var stdout bytes.Buffer
	if err := runDiff(context.Background(), &diffParams{}, []string{original, copied}, &stdout, discard); err != nil {
		t.Fatalf("identical files: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("identical files printed %q", stdout.String())
	}

	stdout.Reset()
	err := runDiff(context.Background(), &diffParams{}, []string{original, encoded}, &stdout, discard)
	if exitCode(err) != 1 {
		t.Fatalf("got %v, want exit 1", err)
	}
	if !strings.HasPrefix(stdout.String(), "+ [3] ruSt ") || strings.Count(stdout.String(), "\n") != 1 {
		t.Errorf("output = %q", stdout.String())
	}

	stdout.Reset()
	params := &diffParams{All: true}
	params.OutputJSON = true
	if err := runDiff(context.Background(), params, []string{original, encoded}, &stdout, discard); exitCode(err) != 1 {
		t.Fatalf("got %v, want exit 1", err)
	}
	var changes []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &changes); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(changes) != 5 {
		t.Errorf("--all listed %d changes, want 5", len(changes))
	}

	if err := runDiff(context.Background(), &diffParams{}, []string{original}, &stdout, discard); err == nil {
		t.Error("runDiff accepted one file")
	}
}

func TestCommandsHaveHelp(t *testing.T) {
	for _, command := range Commands() {
		if command.Summary == "" || command.Description == "" || command.Usage == "" || len(command.Examples) == 0 {
			t.Errorf("%s: incomplete help", command.Name)
		}
		if command.Params == nil || command.Run == nil {
			t.Errorf("%s: missing Params or Run", command.Name)
		}
	}
}
