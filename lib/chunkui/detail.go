// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkui

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/pngme/lib/envelope"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/render"
)

// maxDumpBytes bounds the hex dump of opaque payloads.
const maxDumpBytes = 512

// Detail renders the detail pane body for chunk, wrapped to width
// cells. row is the chunk's listing entry.
func Detail(chunk *png.Chunk, row render.ChunkRow, width int) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Type     %s (%s)\n", row.Type, describeFlags(row))
	fmt.Fprintf(&builder, "Length   %d bytes\n", row.Length)
	fmt.Fprintf(&builder, "CRC      %08x\n", row.CRC)
	fmt.Fprintf(&builder, "Digest   %s\n\n", row.Digest)
	builder.WriteString(payloadSection(chunk))

	body := strings.TrimRight(builder.String(), "\n")
	if width > 0 {
		body = ansi.Wrap(body, width, "")
	}
	return body
}

func describeFlags(row render.ChunkRow) string {
	properties := []string{"ancillary", "private"}
	if row.Critical {
		properties[0] = "critical"
	}
	if row.Public {
		properties[1] = "public"
	}
	if !row.ReservedValid {
		properties = append(properties, "reserved bit set")
	}
	if row.SafeToCopy {
		properties = append(properties, "safe to copy")
	}
	return strings.Join(properties, ", ")
}

func payloadSection(chunk *png.Chunk) string {
	payload, err := chunk.Payload()
	if err != nil {
		return "invalid payload: " + err.Error()
	}
	switch payload := payload.(type) {
	case *png.Text:
		return textSection(payload.Keyword, "", payload.Content, nil)
	case *png.CompressedText:
		text, err := payload.Text()
		return textSection(payload.Keyword, "zlib", text, err)
	case *png.InternationalText:
		text, err := payload.Text()
		label := payload.LanguageTag
		if payload.Compressed() {
			label = strings.TrimSpace(label + " zlib")
		}
		return textSection(payload.Keyword, label, text, err)
	case png.Unrecognized:
		if envelope.IsSealed(payload) {
			return sealedSection(payload)
		}
		return dumpSection(payload)
	case png.ImageData:
		return dumpSection(payload)
	default:
		return payload.String()
	}
}

func textSection(keyword, label, text string, err error) string {
	heading := "Keyword  " + keyword
	if label != "" {
		heading += " [" + label + "]"
	}
	if err != nil {
		return heading + "\n\ninvalid text: " + err.Error()
	}
	return heading + "\n\n" + highlight(text)
}

// sealedSection describes a sealed message. Unencrypted messages are
// opened and shown; encrypted ones only report their header.
func sealedSection(payload []byte) string {
	header, _, err := envelope.ReadHeader(payload)
	if err != nil {
		return "sealed message, unreadable header: " + err.Error()
	}
	summary := fmt.Sprintf("Sealed message v%d: %s, %d bytes", header.Version, header.Compression, header.Size)
	if header.Encrypted {
		return summary + ", encrypted"
	}
	message, err := envelope.Open(payload, nil)
	if err != nil {
		return summary + "\n\ncannot open: " + err.Error()
	}
	return summary + "\n\n" + highlight(string(message))
}

func dumpSection(data []byte) string {
	if len(data) == 0 {
		return "(empty)"
	}
	dump := hex.Dump(data[:min(len(data), maxDumpBytes)])
	if len(data) > maxDumpBytes {
		dump += fmt.Sprintf("... %d more bytes", len(data)-maxDumpBytes)
	}
	return dump
}

// highlight syntax-highlights text that looks like XML (XMP metadata
// is stored this way) or JSON. Anything else is returned unchanged.
func highlight(text string) string {
	language := detectLanguage(text)
	if language == "" {
		return text
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, language, "terminal256", "monokai"); err != nil {
		return text
	}
	return buffer.String()
}

func detectLanguage(text string) string {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return "xml"
	case (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)):
		return "json"
	default:
		return ""
	}
}
