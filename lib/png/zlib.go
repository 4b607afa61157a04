// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxInflatedSize bounds the output of inflating a zTXt, iTXt, or iCCP
// stream. A few hundred bytes of deflate data can expand to gigabytes.
const MaxInflatedSize = 64 << 20

// compressionDeflate is the only compression method the format
// defines: zlib-wrapped deflate.
const compressionDeflate = 0

func inflate(compressed []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	defer reader.Close()

	inflated, err := io.ReadAll(io.LimitReader(reader, MaxInflatedSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	if len(inflated) > MaxInflatedSize {
		return nil, fmt.Errorf("%w: inflated size exceeds %d bytes", ErrCorruptStream, MaxInflatedSize)
	}
	return inflated, nil
}

func deflate(data []byte) []byte {
	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	// Writes to a bytes.Buffer cannot fail.
	writer.Write(data)
	writer.Close()
	return buffer.Bytes()
}
