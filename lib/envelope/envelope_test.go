// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"filippo.io/age"
)

func TestCompressionString(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd", "auto"} {
		t.Run(name, func(t *testing.T) {
			compression, err := ParseCompression(name)
			if err != nil {
				t.Fatalf("ParseCompression(%q): %v", name, err)
			}
			if compression.String() != name {
				t.Errorf("roundtrip: got %q", compression.String())
			}
		})
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(\"gzip\") succeeded")
	}
	if got := Compression(9).String(); got != "unknown(9)" {
		t.Errorf("String = %q, want unknown(9)", got)
	}
}

func TestSelectCompression(t *testing.T) {
	if got := SelectCompression(nil); got != CompressionNone {
		t.Errorf("empty: got %s, want none", got)
	}
	text := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 100))
	if got := SelectCompression(text); got != CompressionZstd {
		t.Errorf("repetitive text: got %s, want zstd", got)
	}
	random := make([]byte, 4096)
	rand.Read(random)
	if got := SelectCompression(random); got != CompressionNone {
		t.Errorf("random bytes: got %s, want none", got)
	}
}

func TestSealOpenRoundtrip(t *testing.T) {
	messages := map[string][]byte{
		"short":      []byte("hi"),
		"empty":      {},
		"repetitive": []byte(strings.Repeat("secret message ", 200)),
	}
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd, CompressionAuto} {
		for name, message := range messages {
			t.Run(compression.String()+"/"+name, func(t *testing.T) {
				sealed, err := Seal(message, Options{Compression: compression})
				if err != nil {
					t.Fatalf("Seal: %v", err)
				}
				if !IsSealed(sealed) {
					t.Fatal("sealed payload lacks the magic")
				}
				opened, err := Open(sealed, nil)
				if err != nil {
					t.Fatalf("Open: %v", err)
				}
				if !bytes.Equal(opened, message) {
					t.Errorf("Open = %q, want %q", opened, message)
				}
			})
		}
	}
}

func TestSealRecordsAppliedCompression(t *testing.T) {
	message := []byte(strings.Repeat("abcd", 500))
	sealed, err := Seal(message, Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	header, body, err := ReadHeader(sealed)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if header.Version != Version || header.Compression != CompressionZstd || header.Size != len(message) || header.Encrypted {
		t.Errorf("header = %+v", header)
	}
	if len(body) >= len(message) {
		t.Errorf("body is %d bytes, not smaller than %d", len(body), len(message))
	}

	// Two bytes cannot shrink: the header falls back to none.
	sealed, err = Seal([]byte("hi"), Options{Compression: CompressionLZ4})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	header, _, err = ReadHeader(sealed)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if header.Compression != CompressionNone {
		t.Errorf("compression = %s, want none", header.Compression)
	}
}

func TestOpenPlainMessage(t *testing.T) {
	plain := []byte("This is where your secret message will be!")
	opened, err := Open(plain, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Errorf("Open = %q, want %q", opened, plain)
	}
}

func TestSealEncrypted(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	other, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	recipients, err := ParseRecipients([]string{keypair.Recipient})
	if err != nil {
		t.Fatalf("ParseRecipients: %v", err)
	}

	message := []byte(strings.Repeat("for your eyes only ", 50))
	sealed, err := Seal(message, Options{Compression: CompressionAuto, Recipients: recipients})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("for your eyes only")) {
		t.Fatal("plaintext visible in sealed payload")
	}
	header, _, err := ReadHeader(sealed)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if !header.Encrypted || header.Compression != CompressionZstd {
		t.Errorf("header = %+v, want encrypted zstd", header)
	}

	if _, err := Open(sealed, nil); !errors.Is(err, ErrIdentityRequired) {
		t.Errorf("Open without identity: got %v, want ErrIdentityRequired", err)
	}

	wrong, err := ParseIdentities(strings.NewReader(other.Identity + "\n"))
	if err != nil {
		t.Fatalf("ParseIdentities: %v", err)
	}
	if _, err := Open(sealed, wrong); err == nil {
		t.Error("Open with the wrong identity succeeded")
	}

	identities, err := ParseIdentities(strings.NewReader("# pngme identity\n" + keypair.Identity + "\n"))
	if err != nil {
		t.Fatalf("ParseIdentities: %v", err)
	}
	opened, err := Open(sealed, identities)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, message) {
		t.Error("decrypted message does not match")
	}
}

func TestOpenMalformed(t *testing.T) {
	valid, err := Seal([]byte(strings.Repeat("x", 100)), Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	tests := []struct {
		name    string
		payload []byte
		want    error
	}{
		{"magic only", Magic[:], ErrMalformed},
		{"header length past end", append(Magic[:], 0x10, 0x00), ErrMalformed},
		{"garbage header", append(Magic[:], 0x00, 0x02, 0xff, 0xff), ErrMalformed},
		{"truncated body", valid[:len(valid)-3], ErrMalformed},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Open(test.payload, nil); !errors.Is(err, test.want) {
				t.Errorf("got %v, want %v", err, test.want)
			}
		})
	}
}

func TestOpenUnsupportedVersion(t *testing.T) {
	sealed, err := Seal([]byte("hi"), Options{})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	// The header is a small CBOR map; "v": 1 encodes as 0x61 'v' 0x01.
	index := bytes.Index(sealed, []byte{0x61, 'v', 0x01})
	if index < 0 {
		t.Fatalf("version field not found in %x", sealed)
	}
	sealed[index+2] = 0x07
	if _, err := Open(sealed, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestParseRecipientsRejectsGarbage(t *testing.T) {
	if _, err := ParseRecipients([]string{"age1notakey"}); err == nil {
		t.Error("ParseRecipients accepted an invalid key")
	}
	if _, err := ParseIdentities(strings.NewReader("not an identity\n")); err == nil {
		t.Error("ParseIdentities accepted an invalid identity")
	}
}

func TestGenerateKeypair(t *testing.T) {
	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	if !strings.HasPrefix(keypair.Identity, "AGE-SECRET-KEY-1") {
		t.Errorf("Identity lacks the AGE-SECRET-KEY-1 prefix")
	}
	if !strings.HasPrefix(keypair.Recipient, "age1") {
		t.Errorf("Recipient = %q, want prefix age1", keypair.Recipient)
	}
	identity, err := age.ParseX25519Identity(keypair.Identity)
	if err != nil {
		t.Fatalf("ParseX25519Identity: %v", err)
	}
	if identity.Recipient().String() != keypair.Recipient {
		t.Error("Recipient does not belong to Identity")
	}
}
