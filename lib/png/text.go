// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"
)

// Text is the tEXt payload: a keyword, a null separator, and optional
// uncompressed text running to the end of the chunk.
type Text struct {
	Keyword string
	Content string
}

// NewText builds a tEXt payload, validating the keyword.
func NewText(keyword, content string) (*Text, error) {
	if err := validateKeyword([]byte(keyword)); err != nil {
		return nil, err
	}
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("%w: tEXt text", ErrInvalidUTF8)
	}
	return &Text{Keyword: keyword, Content: content}, nil
}

// DecodeText parses a tEXt payload.
func DecodeText(data []byte) (*Text, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return nil, fmt.Errorf("tEXt keyword: %w", err)
	}
	if !utf8.Valid(rest) {
		return nil, fmt.Errorf("%w: tEXt text", ErrInvalidUTF8)
	}
	return &Text{Keyword: keyword, Content: string(rest)}, nil
}

// Value returns the text and whether any follows the separator.
func (t *Text) Value() (string, bool) {
	return t.Content, t.Content != ""
}

func (t *Text) Bytes() []byte {
	data := make([]byte, 0, len(t.Keyword)+1+len(t.Content))
	data = append(data, t.Keyword...)
	data = append(data, 0)
	return append(data, t.Content...)
}

func (t *Text) String() string {
	if t.Content == "" {
		return fmt.Sprintf("Keyword: %s, Text: None", t.Keyword)
	}
	return fmt.Sprintf("Keyword: %s, Text: %q", t.Keyword, t.Content)
}

func (*Text) isPayload() {}

// CompressedText is the zTXt payload:
//
//	keyword             1-79 bytes
//	null separator      1 byte
//	compression method  1 byte (0 only)
//	compressed text     remaining bytes
type CompressedText struct {
	Keyword           string
	CompressionMethod uint8
	// Compressed is the zlib stream exactly as stored.
	Compressed []byte
}

// NewCompressedText deflates text under keyword.
func NewCompressedText(keyword, text string) (*CompressedText, error) {
	if err := validateKeyword([]byte(keyword)); err != nil {
		return nil, err
	}
	return &CompressedText{Keyword: keyword, CompressionMethod: compressionDeflate, Compressed: deflate([]byte(text))}, nil
}

// DecodeCompressedText parses a zTXt payload. The text is not
// inflated until [CompressedText.Text] is called.
func DecodeCompressedText(data []byte) (*CompressedText, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return nil, fmt.Errorf("zTXt keyword: %w", err)
	}
	if len(rest) < 1 {
		return nil, fmt.Errorf("%w: zTXt has no compression method byte", ErrTruncated)
	}
	if rest[0] != compressionDeflate {
		return nil, fmt.Errorf("%w: zTXt method %d", ErrInvalidCompressionMethod, rest[0])
	}
	return &CompressedText{Keyword: keyword, CompressionMethod: rest[0], Compressed: slices.Clone(rest[1:])}, nil
}

// Text inflates the stored stream.
func (t *CompressedText) Text() (string, error) {
	inflated, err := inflate(t.Compressed)
	if err != nil {
		return "", fmt.Errorf("zTXt %q: %w", t.Keyword, err)
	}
	if !utf8.Valid(inflated) {
		return "", fmt.Errorf("%w: zTXt %q text", ErrInvalidUTF8, t.Keyword)
	}
	return string(inflated), nil
}

func (t *CompressedText) Bytes() []byte {
	data := make([]byte, 0, len(t.Keyword)+2+len(t.Compressed))
	data = append(data, t.Keyword...)
	data = append(data, 0, t.CompressionMethod)
	return append(data, t.Compressed...)
}

func (t *CompressedText) String() string {
	return fmt.Sprintf("Keyword: %s, Compressed text: %d bytes", t.Keyword, len(t.Compressed))
}

func (*CompressedText) isPayload() {}

// InternationalText is the iTXt payload:
//
//	keyword             1-79 bytes
//	null separator
//	compression flag    1 byte (0 uncompressed, 1 compressed)
//	compression method  1 byte (0 only, when compressed)
//	language tag        0 or more bytes
//	null separator
//	translated keyword  0 or more bytes, UTF-8
//	null separator
//	text                remaining bytes, UTF-8, optionally compressed
type InternationalText struct {
	Keyword           string
	CompressionFlag   uint8
	CompressionMethod uint8
	LanguageTag       string
	TranslatedKeyword string
	// Data is the text field as stored: UTF-8 when CompressionFlag is
	// 0, a zlib stream when it is 1.
	Data []byte
}

// NewInternationalText builds an iTXt payload, deflating text when
// compress is true.
func NewInternationalText(keyword, language, translatedKeyword, text string, compress bool) (*InternationalText, error) {
	if err := validateKeyword([]byte(keyword)); err != nil {
		return nil, err
	}
	if !utf8.ValidString(translatedKeyword) || !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: iTXt text", ErrInvalidUTF8)
	}
	result := &InternationalText{
		Keyword:           keyword,
		LanguageTag:       language,
		TranslatedKeyword: translatedKeyword,
		Data:              []byte(text),
	}
	if compress {
		result.CompressionFlag = 1
		result.Data = deflate(result.Data)
	}
	return result, nil
}

// DecodeInternationalText parses an iTXt payload. Uncompressed text is
// validated as UTF-8 here; compressed text when it is inflated.
func DecodeInternationalText(data []byte) (*InternationalText, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return nil, fmt.Errorf("iTXt keyword: %w", err)
	}
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: iTXt has no compression flag and method", ErrTruncated)
	}
	flag, method := rest[0], rest[1]
	if flag > 1 {
		return nil, fmt.Errorf("%w: iTXt flag %d", ErrInvalidCompressionFlag, flag)
	}
	if flag == 1 && method != compressionDeflate {
		return nil, fmt.Errorf("%w: iTXt method %d", ErrInvalidCompressionMethod, method)
	}
	rest = rest[2:]

	language, rest, found := bytes.Cut(rest, []byte{0})
	if !found {
		return nil, fmt.Errorf("%w: after iTXt language tag", ErrMissingSeparator)
	}
	translated, text, found := bytes.Cut(rest, []byte{0})
	if !found {
		return nil, fmt.Errorf("%w: after iTXt translated keyword", ErrMissingSeparator)
	}
	if !utf8.Valid(translated) {
		return nil, fmt.Errorf("%w: iTXt translated keyword", ErrInvalidUTF8)
	}
	if flag == 0 && !utf8.Valid(text) {
		return nil, fmt.Errorf("%w: iTXt text", ErrInvalidUTF8)
	}
	return &InternationalText{
		Keyword:           keyword,
		CompressionFlag:   flag,
		CompressionMethod: method,
		LanguageTag:       string(language),
		TranslatedKeyword: string(translated),
		Data:              slices.Clone(text),
	}, nil
}

// Compressed reports whether the text field is a zlib stream.
func (t *InternationalText) Compressed() bool { return t.CompressionFlag == 1 }

// Text returns the text, inflating it if necessary.
func (t *InternationalText) Text() (string, error) {
	if !t.Compressed() {
		return string(t.Data), nil
	}
	inflated, err := inflate(t.Data)
	if err != nil {
		return "", fmt.Errorf("iTXt %q: %w", t.Keyword, err)
	}
	if !utf8.Valid(inflated) {
		return "", fmt.Errorf("%w: iTXt %q text", ErrInvalidUTF8, t.Keyword)
	}
	return string(inflated), nil
}

func (t *InternationalText) Bytes() []byte {
	data := make([]byte, 0, len(t.Keyword)+5+len(t.LanguageTag)+len(t.TranslatedKeyword)+len(t.Data))
	data = append(data, t.Keyword...)
	data = append(data, 0, t.CompressionFlag, t.CompressionMethod)
	data = append(data, t.LanguageTag...)
	data = append(data, 0)
	data = append(data, t.TranslatedKeyword...)
	data = append(data, 0)
	return append(data, t.Data...)
}

func (t *InternationalText) String() string {
	return fmt.Sprintf("Keyword: %s, Language: %q, Translated keyword: %q, Compressed: %t, Text: %d bytes",
		t.Keyword, t.LanguageTag, t.TranslatedKeyword, t.Compressed(), len(t.Data))
}

func (*InternationalText) isPayload() {}

// TextEntry is one textual chunk (tEXt, zTXt, or iTXt) with its text
// already decompressed.
type TextEntry struct {
	Type              ChunkType `json:"type"`
	Keyword           string    `json:"keyword"`
	Text              string    `json:"text"`
	LanguageTag       string    `json:"language_tag,omitempty"`
	TranslatedKeyword string    `json:"translated_keyword,omitempty"`
	Compressed        bool      `json:"compressed"`
}

// textEntry interprets a textual payload. ok is false for other
// payload kinds.
func textEntry(chunkType ChunkType, payload Payload) (entry TextEntry, ok bool, err error) {
	entry.Type = chunkType
	switch text := payload.(type) {
	case *Text:
		entry.Keyword = text.Keyword
		entry.Text = text.Content
	case *CompressedText:
		entry.Keyword = text.Keyword
		entry.Compressed = true
		entry.Text, err = text.Text()
	case *InternationalText:
		entry.Keyword = text.Keyword
		entry.LanguageTag = text.LanguageTag
		entry.TranslatedKeyword = text.TranslatedKeyword
		entry.Compressed = text.Compressed()
		entry.Text, err = text.Text()
	default:
		return TextEntry{}, false, nil
	}
	return entry, true, err
}
