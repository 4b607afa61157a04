// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/pngme/lib/chunkhash"
	"github.com/bureau-foundation/pngme/lib/png"
)

// Theme is the color palette. Colors are ANSI 256-color codes.
type Theme struct {
	Title     lipgloss.Color
	Critical  lipgloss.Color
	Ancillary lipgloss.Color
	Faint     lipgloss.Color
	Error     lipgloss.Color
	Added     lipgloss.Color
	Removed   lipgloss.Color
	Changed   lipgloss.Color
}

// DefaultTheme is used by New.
var DefaultTheme = Theme{
	Title:     lipgloss.Color("39"),
	Critical:  lipgloss.Color("214"),
	Ancillary: lipgloss.Color("114"),
	Faint:     lipgloss.Color("245"),
	Error:     lipgloss.Color("203"),
	Added:     lipgloss.Color("35"),
	Removed:   lipgloss.Color("203"),
	Changed:   lipgloss.Color("220"),
}

// ellipsis marks truncated previews.
const ellipsis = "…"

// Renderer writes human-readable views of documents.
type Renderer struct {
	// Color enables ANSI styling. When false, output is plain text.
	Color bool

	// PreviewWidth truncates payload and text previews to this many
	// terminal cells. Zero disables truncation.
	PreviewWidth int

	Theme Theme
}

// New returns a Renderer with DefaultTheme.
func New(color bool, previewWidth int) *Renderer {
	return &Renderer{Color: color, PreviewWidth: previewWidth, Theme: DefaultTheme}
}

// ColorMode resolves a color setting (auto, always, never) for output
// going to file. Auto enables color only when file is a terminal and
// NO_COLOR is unset.
func ColorMode(mode string, file *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return file != nil && term.IsTerminal(int(file.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always, or never)", mode)
	}
}

type styles struct {
	title     lipgloss.Style
	critical  lipgloss.Style
	ancillary lipgloss.Style
	faint     lipgloss.Style
	error     lipgloss.Style
	added     lipgloss.Style
	removed   lipgloss.Style
	changed   lipgloss.Style
}

// styles builds the style set for w. The lipgloss renderer's profile
// is set explicitly: otherwise it re-detects from the environment and
// ignores Color.
func (r *Renderer) styles(w io.Writer) styles {
	profile := termenv.Ascii
	if r.Color {
		profile = termenv.ANSI256
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	if !r.Color {
		plain := renderer.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:     renderer.NewStyle().Bold(true).Foreground(r.Theme.Title),
		critical:  renderer.NewStyle().Bold(true).Foreground(r.Theme.Critical),
		ancillary: renderer.NewStyle().Foreground(r.Theme.Ancillary),
		faint:     renderer.NewStyle().Foreground(r.Theme.Faint),
		error:     renderer.NewStyle().Foreground(r.Theme.Error),
		added:     renderer.NewStyle().Foreground(r.Theme.Added),
		removed:   renderer.NewStyle().Foreground(r.Theme.Removed),
		changed:   renderer.NewStyle().Foreground(r.Theme.Changed),
	}
}

func (s styles) chunkType(chunkType png.ChunkType) lipgloss.Style {
	if chunkType.IsCritical() {
		return s.critical
	}
	return s.ancillary
}

// preview flattens s onto one line and truncates it to PreviewWidth.
func (r *Renderer) preview(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "; ")
	if r.PreviewWidth > 0 && ansi.StringWidth(s) > r.PreviewWidth {
		return ansi.Truncate(s, r.PreviewWidth, ellipsis)
	}
	return s
}

// pad right-pads s with spaces to width cells.
func pad(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// padLeft left-pads s with spaces to width cells.
func padLeft(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// Document writes a summary of document: totals, the image header
// when one decodes, and one line per chunk with a payload preview.
func (r *Renderer) Document(w io.Writer, document *png.Document) error {
	s := r.styles(w)
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s %d chunks, %d bytes\n",
		s.title.Render("PNG"), document.Len(), document.EncodedLength())
	if header, err := document.Header(); err == nil {
		fmt.Fprintf(&builder, "%s %dx%d, %d-bit %s, interlace %s\n",
			s.title.Render("Image"), header.Width, header.Height, header.BitDepth, header.ColorType, header.InterlaceMethod)
	}

	chunks := document.Chunks()
	indexWidth := len(fmt.Sprint(len(chunks) - 1))
	for index, chunk := range chunks {
		summary, failed := summarize(chunk)
		summaryStyle := s.faint
		if failed {
			summaryStyle = s.error
		}
		fmt.Fprintf(&builder, "[%s] %s %s %s\n",
			padLeft(fmt.Sprint(index), indexWidth),
			s.chunkType(chunk.Type()).Render(chunk.Type().String()),
			padLeft(fmt.Sprintf("%d bytes", chunk.Length()), 12),
			summaryStyle.Render(r.preview(summary)))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// summarize returns a one-line description of the chunk payload, and
// whether the payload failed to decode.
func summarize(chunk *png.Chunk) (string, bool) {
	payload, err := chunk.Payload()
	if err != nil {
		return "invalid: " + err.Error(), true
	}
	return payload.String(), false
}

// ChunkRow is one line of a chunk listing. It is also the record
// written by machine-readable listings.
type ChunkRow struct {
	Index         int            `json:"index"`
	Type          png.ChunkType  `json:"type"`
	Length        uint32         `json:"length"`
	CRC           uint32         `json:"crc"`
	Critical      bool           `json:"critical"`
	Public        bool           `json:"public"`
	ReservedValid bool           `json:"reserved_valid"`
	SafeToCopy    bool           `json:"safe_to_copy"`
	Digest        chunkhash.Hash `json:"digest"`
	Summary       string         `json:"summary"`
	Invalid       bool           `json:"invalid,omitempty"`
}

// Flags renders the four type properties as a fixed-width string:
// C critical, P public, R reserved bit valid, S safe to copy, with
// '-' where the property does not hold.
func (row ChunkRow) Flags() string {
	flags := []byte("----")
	if row.Critical {
		flags[0] = 'C'
	}
	if row.Public {
		flags[1] = 'P'
	}
	if row.ReservedValid {
		flags[2] = 'R'
	}
	if row.SafeToCopy {
		flags[3] = 'S'
	}
	return string(flags)
}

// Rows describes every chunk of document.
func Rows(document *png.Document) []ChunkRow {
	chunks := document.Chunks()
	rows := make([]ChunkRow, len(chunks))
	for index, chunk := range chunks {
		chunkType := chunk.Type()
		summary, failed := summarize(chunk)
		rows[index] = ChunkRow{
			Index:         index,
			Type:          chunkType,
			Length:        chunk.Length(),
			CRC:           chunk.CRC(),
			Critical:      chunkType.IsCritical(),
			Public:        chunkType.IsPublic(),
			ReservedValid: chunkType.IsReservedBitValid(),
			SafeToCopy:    chunkType.IsSafeToCopy(),
			Digest:        chunkhash.HashChunk(chunk),
			Summary:       summary,
			Invalid:       failed,
		}
	}
	return rows
}

// ChunkTable writes rows as an aligned table.
func (r *Renderer) ChunkTable(w io.Writer, rows []ChunkRow) error {
	s := r.styles(w)
	headings := []string{"#", "TYPE", "LENGTH", "CRC", "FLAGS", "DIGEST", "SUMMARY"}
	cells := make([][]string, len(rows))
	widths := make([]int, len(headings))
	for column, heading := range headings {
		widths[column] = len(heading)
	}
	for index, row := range rows {
		cells[index] = []string{
			fmt.Sprint(row.Index),
			row.Type.String(),
			fmt.Sprint(row.Length),
			fmt.Sprintf("%08x", row.CRC),
			row.Flags(),
			chunkhash.Short(row.Digest),
			r.preview(row.Summary),
		}
		for column, cell := range cells[index] {
			widths[column] = max(widths[column], ansi.StringWidth(cell))
		}
	}

	var builder strings.Builder
	for column, heading := range headings {
		if column > 0 {
			builder.WriteString("  ")
		}
		if column == len(headings)-1 {
			builder.WriteString(s.title.Render(heading))
			continue
		}
		builder.WriteString(s.title.Render(pad(heading, widths[column])))
	}
	builder.WriteByte('\n')

	for index, row := range rows {
		line := cells[index]
		summaryStyle := s.faint
		if row.Invalid {
			summaryStyle = s.error
		}
		fmt.Fprintf(&builder, "%s  %s  %s  %s  %s  %s  %s\n",
			padLeft(line[0], widths[0]),
			s.chunkType(row.Type).Render(pad(line[1], widths[1])),
			padLeft(line[2], widths[2]),
			pad(line[3], widths[3]),
			pad(line[4], widths[4]),
			s.faint.Render(pad(line[5], widths[5])),
			summaryStyle.Render(line[6]))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// Text writes one line per text entry: type, keyword, and a preview
// of the text. iTXt language tags and translated keywords follow the
// keyword when present.
func (r *Renderer) Text(w io.Writer, entries []png.TextEntry) error {
	s := r.styles(w)
	if len(entries) == 0 {
		_, err := io.WriteString(w, s.faint.Render("no text chunks")+"\n")
		return err
	}

	labels := make([]string, len(entries))
	labelWidth := 0
	for index, entry := range entries {
		label := entry.Keyword
		if entry.LanguageTag != "" {
			label += " [" + entry.LanguageTag + "]"
		}
		if entry.TranslatedKeyword != "" {
			label += " (" + entry.TranslatedKeyword + ")"
		}
		labels[index] = label
		labelWidth = max(labelWidth, ansi.StringWidth(label))
	}

	var builder strings.Builder
	for index, entry := range entries {
		fmt.Fprintf(&builder, "%s  %s  %s\n",
			s.ancillary.Render(entry.Type.String()),
			s.title.Render(pad(labels[index], labelWidth)),
			r.preview(entry.Text))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// Diff writes one line per change. Unchanged chunks are shown faint.
func (r *Renderer) Diff(w io.Writer, changes []chunkhash.Change) error {
	s := r.styles(w)
	var builder strings.Builder
	for _, change := range changes {
		style := s.faint
		switch change.Operation {
		case chunkhash.Added:
			style = s.added
		case chunkhash.Removed:
			style = s.removed
		case chunkhash.Changed:
			style = s.changed
		}
		builder.WriteString(style.Render(change.String()))
		builder.WriteByte('\n')
	}
	_, err := io.WriteString(w, builder.String())
	return err
}
