// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides pngme's CBOR encoding configuration.
//
// CBOR appears in two places: the header of a sealed message envelope
// (lib/envelope) and the machine-readable chunk listing written by
// "pngme list --cbor". Both go through the modes in this package, so
// the same value always encodes to the same bytes. The encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that are only ever CBOR use `cbor` struct tags. Types that
// are also printed as JSON use `json` tags only; fxamacker/cbor reads
// `json` tags when `cbor` tags are absent. Never put both on one field.
package codec
