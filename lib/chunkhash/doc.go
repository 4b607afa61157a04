// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkhash computes content digests of PNG chunks and
// documents, and compares documents by those digests.
//
// Digests are BLAKE3 in keyed mode with a separate key per domain
// (chunk, Merkle node, document), so the same bytes never hash to the
// same value in two roles. A chunk digest covers the type and payload;
// a document digest covers a Merkle tree of its chunk digests in order.
//
// [Diff] aligns two documents along the longest common subsequence of
// chunk digests and reports additions, removals, and in-place changes.
package chunkhash
