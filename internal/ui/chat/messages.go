// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Bubble Tea message types for the chat view. Every asynchronous result
// carries the generation counter of the chat activation that issued it;
// results from a superseded activation are discarded on receipt.

package chat

import (
	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the fetched message history for a chat.
type HistoryLoadedMsg struct {
	Generation int
	Messages   []model.ChatMessage
	Err        error
}

// =============================================================================
// SEND PIPELINE MESSAGES
// =============================================================================

// UploadFinishedMsg reports the outcome of the file upload stage.
type UploadFinishedMsg struct {
	Generation int
	FileIDs    []string
	Err        error
}

// CompletionFinishedMsg reports the outcome of the completion stage.
type CompletionFinishedMsg struct {
	Generation int
	Response   *api.CompletionResponse
	Err        error
}
