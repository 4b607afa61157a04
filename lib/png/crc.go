// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import "hash/crc32"

// Checksum computes the chunk CRC: CRC-32 (ISO-HDLC, the IEEE
// polynomial) over the type bytes followed by the payload bytes. The
// length field is not covered.
func Checksum(chunkType ChunkType, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, chunkType[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
