// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"time"
)

// =============================================================================
// SESSION AND PROJECT SUMMARIES
// =============================================================================

// ChatSessionSummary is a sidebar entry for one chat session. Created
// locally with a placeholder title on "new chat", or fetched from the
// backend. Recency ordering is derived at render time, never stored.
type ChatSessionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectSummary describes a project. Read-only from the client's
// perspective; fetched once at startup.
type ProjectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SortChatsByRecency returns a new slice with chats ordered by UpdatedAt
// descending. The input slice is left unmodified.
func SortChatsByRecency(chats []ChatSessionSummary) []ChatSessionSummary {
	sorted := make([]ChatSessionSummary, len(chats))
	copy(sorted, chats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}
