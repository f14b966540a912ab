// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/workspace-tui/internal/id"
)

// =============================================================================
// AUTHOR TYPE
// =============================================================================

// Author identifies the sender of a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
	AuthorSystem    Author = "system"
)

// String returns the string representation of the author.
func (a Author) String() string {
	return string(a)
}

// DisplayName returns a human-readable label for the author.
func (a Author) DisplayName() string {
	switch a {
	case AuthorUser:
		return "You"
	case AuthorAssistant:
		return "Assistant"
	case AuthorSystem:
		return "System"
	default:
		return string(a)
	}
}

// =============================================================================
// CHAT MESSAGE
// =============================================================================

// ChatMessage is a single entry in a chat session's history.
//
// Messages are immutable once created: failure and loading indicators are
// expressed as separate synthetic messages, never by mutating an existing
// one. The list for a session is discarded wholesale when the active chat
// changes; the backend stays authoritative.
type ChatMessage struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	// Error marks a synthetic assistant message that reports a failed turn.
	Error bool `json:"error,omitempty"`

	// Loading marks the transient assistant placeholder shown while a
	// completion request is pending.
	Loading bool `json:"loading,omitempty"`
}

// NewUserMessage creates a user message with a fresh local id.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        id.New(),
		Author:    AuthorUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with a fresh local id.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        id.New(),
		Author:    AuthorAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewErrorMessage creates the error-flagged assistant message appended when
// a send pipeline fails.
func NewErrorMessage(content string) ChatMessage {
	m := NewAssistantMessage(content)
	m.Error = true
	return m
}

// NewLoadingMessage creates the pending-response placeholder.
func NewLoadingMessage() ChatMessage {
	m := NewAssistantMessage("")
	m.Loading = true
	return m
}

// FilterDisplayable returns the user- and assistant-authored entries of
// history in their original order. System entries are part of what was
// fetched but never displayed.
func FilterDisplayable(history []ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Author == AuthorUser || m.Author == AuthorAssistant {
			out = append(out, m)
		}
	}
	return out
}
