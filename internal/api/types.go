// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// CompletionRequest is the JSON body posted to /chat/{chatId}/respond.
type CompletionRequest struct {
	Message string   `json:"message"`
	FileIDs []string `json:"fileIds,omitempty"`
}

// CompletionResponse is the decoded body of a successful completion call.
// Every field is optional on the wire and may be independently absent; the
// caller defaults each one on its own (fresh id, placeholder content,
// current time).
type CompletionResponse struct {
	ID        *string    `json:"id"`
	Content   *string    `json:"content"`
	CreatedAt *time.Time `json:"createdAt"`
}

// messagesEnvelope wraps the history endpoint's response.
type messagesEnvelope struct {
	Messages []model.ChatMessage `json:"messages"`
}

// fileIDsEnvelope wraps the upload endpoint's response.
type fileIDsEnvelope struct {
	FileIDs []string `json:"fileIds"`
}

// projectsEnvelope wraps the project list response.
type projectsEnvelope struct {
	Projects []model.ProjectSummary `json:"projects"`
}

// chatsEnvelope wraps the chat list response.
type chatsEnvelope struct {
	Chats []model.ChatSessionSummary `json:"chats"`
}
