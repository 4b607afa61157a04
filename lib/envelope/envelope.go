// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"filippo.io/age"

	"github.com/bureau-foundation/pngme/lib/codec"
)

// Magic prefixes every sealed message. The leading null byte keeps it
// from colliding with any printable plain message.
var Magic = [4]byte{0x00, 'P', 'M', 'E'}

// Version is the header version written by Seal.
const Version = 1

// MaxMessageSize bounds the uncompressed size Open will produce.
const MaxMessageSize = 64 << 20

// maxHeaderLength bounds the CBOR header; real headers are a few
// dozen bytes.
const maxHeaderLength = 1024

var (
	// ErrIdentityRequired is returned by Open for an encrypted
	// message when no identities are given.
	ErrIdentityRequired = errors.New("envelope: message is encrypted and no identity was given")

	// ErrMalformed is returned by Open when a payload carries the
	// magic but not a well-formed envelope.
	ErrMalformed = errors.New("envelope: malformed sealed message")

	// ErrUnsupportedVersion is returned by Open for headers newer
	// than this package understands.
	ErrUnsupportedVersion = errors.New("envelope: unsupported version")
)

// Header is the CBOR-encoded envelope header.
type Header struct {
	Version     int         `cbor:"v"`
	Compression Compression `cbor:"compression"`
	// Size is the length of the original message.
	Size      int  `cbor:"size"`
	Encrypted bool `cbor:"encrypted,omitempty"`
}

// Options controls Seal.
type Options struct {
	// Compression selects the body compression. CompressionAuto
	// probes the message.
	Compression Compression

	// Recipients, when non-empty, encrypts the body to each of them.
	Recipients []age.Recipient
}

// Seal wraps message in an envelope:
//
//	magic          4 bytes, "\x00PME"
//	header length  2 bytes, big-endian
//	header         CBOR [Header]
//	body           compressed message, age-encrypted if Encrypted
//
// Compression runs before encryption; ciphertext does not compress.
func Seal(message []byte, options Options) ([]byte, error) {
	if len(message) > MaxMessageSize {
		return nil, fmt.Errorf("message is %d bytes, limit is %d", len(message), MaxMessageSize)
	}
	body, applied, err := compress(message, options.Compression)
	if err != nil {
		return nil, err
	}
	header := Header{
		Version:     Version,
		Compression: applied,
		Size:        len(message),
		Encrypted:   len(options.Recipients) > 0,
	}
	if header.Encrypted {
		body, err = encrypt(body, options.Recipients)
		if err != nil {
			return nil, err
		}
	}

	headerBytes, err := codec.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope header: %w", err)
	}
	sealed := make([]byte, 0, len(Magic)+2+len(headerBytes)+len(body))
	sealed = append(sealed, Magic[:]...)
	sealed = binary.BigEndian.AppendUint16(sealed, uint16(len(headerBytes)))
	sealed = append(sealed, headerBytes...)
	return append(sealed, body...), nil
}

// IsSealed reports whether payload starts with the envelope magic.
func IsSealed(payload []byte) bool {
	return bytes.HasPrefix(payload, Magic[:])
}

// ReadHeader parses the header of a sealed payload without touching
// the body.
func ReadHeader(payload []byte) (Header, []byte, error) {
	if !IsSealed(payload) {
		return Header{}, nil, fmt.Errorf("%w: missing magic", ErrMalformed)
	}
	rest := payload[len(Magic):]
	if len(rest) < 2 {
		return Header{}, nil, fmt.Errorf("%w: truncated header length", ErrMalformed)
	}
	headerLength := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if headerLength > maxHeaderLength || headerLength > len(rest) {
		return Header{}, nil, fmt.Errorf("%w: header length %d", ErrMalformed, headerLength)
	}

	var header Header
	if err := codec.Unmarshal(rest[:headerLength], &header); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header.Version != Version {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	if header.Size < 0 || header.Size > MaxMessageSize {
		return Header{}, nil, fmt.Errorf("%w: message size %d", ErrMalformed, header.Size)
	}
	return header, rest[headerLength:], nil
}

// Open reverses Seal. A payload without the magic is a plain message
// and is returned unchanged, so Open works on any chunk payload.
func Open(payload []byte, identities []age.Identity) ([]byte, error) {
	if !IsSealed(payload) {
		return slices.Clone(payload), nil
	}
	header, body, err := ReadHeader(payload)
	if err != nil {
		return nil, err
	}
	if header.Encrypted {
		if len(identities) == 0 {
			return nil, ErrIdentityRequired
		}
		body, err = decrypt(body, identities)
		if err != nil {
			return nil, err
		}
	}
	message, err := decompress(body, header.Compression, header.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return slices.Clone(message), nil
}

func encrypt(plaintext []byte, recipients []age.Recipient) ([]byte, error) {
	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	return ciphertext.Bytes(), nil
}

func decrypt(ciphertext []byte, identities []age.Identity) ([]byte, error) {
	reader, err := age.Decrypt(bytes.NewReader(ciphertext), identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(io.LimitReader(reader, MaxMessageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading decrypted body: %w", err)
	}
	if len(plaintext) > MaxMessageSize {
		return nil, fmt.Errorf("%w: decrypted body exceeds %d bytes", ErrMalformed, MaxMessageSize)
	}
	return plaintext, nil
}
