// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Pngme hides messages in PNG files. It provides subcommands for
// inspecting a file's chunks (info, list, text, verify, diff, browse),
// storing and recovering messages (encode, decode, remove), and
// generating the age identities used to encrypt them (keygen).
package main
