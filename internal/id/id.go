// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package id generates unique string identifiers for locally created
// entities (messages, chat sessions) before the backend assigns canonical
// ones.
package id

import (
	"encoding/hex"
	"math/rand"

	"github.com/google/uuid"
)

// New returns a 36-character UUID v4 string.
//
// The secure random source is used when available. If it is exhausted or
// otherwise unavailable, New falls back to math/rand with the version and
// variant nibbles forced, so the result is always a syntactically valid v4
// UUID. New never fails.
func New() string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return fallbackUUID()
}

// fallbackUUID builds a v4-shaped UUID from a non-cryptographic source.
func fallbackUUID() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}

	// Force version 4 and the 10xx variant.
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	h := hex.EncodeToString(b[:])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
