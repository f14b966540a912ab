// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders a single chat message. It is a pure function of the
// message: author label, localized timestamp, and either the loading marker
// or the content, styled distinctly when the error flag is set.
type MessageBubble struct {
	Message       model.ChatMessage
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg model.ChatMessage, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Author == model.AuthorUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE - Blue tones, right-aligned feel
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.contentWidthLimit()
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)
	header := b.renderHeader()

	// Right-align the bubble.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Purple tones, left-aligned; carries loading and error
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	if b.Message.Loading {
		return lipgloss.JoinVertical(lipgloss.Left,
			b.renderHeader(),
			b.theme.AssistantBubble.Render(b.renderLoadingDots()),
		)
	}

	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.contentWidthLimit()
	rendered := renderWithCodeBlocks(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(rendered)+4, b.Width-8)

	bubbleStyle := b.theme.AssistantBubble
	if b.Message.Error {
		bubbleStyle = b.theme.ErrorBubble
	}
	bubble := bubbleStyle.Width(contentWidth).MarginRight(4).Render(rendered)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

// ==========================================================================
// SHARED PIECES
// ==========================================================================

func (b *MessageBubble) renderHeader() string {
	roleStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	parts := []string{roleStyle.Render(strings.ToLower(b.Message.Author.DisplayName()))}

	if b.ShowTimestamp && !b.Message.CreatedAt.IsZero() {
		tsStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		parts = append(parts, tsStyle.Render(formatTimestamp(b.Message.CreatedAt)))
	}

	return strings.Join(parts, " ")
}

// renderLoadingDots renders the three-dot pending marker.
func (b *MessageBubble) renderLoadingDots() string {
	dotStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	return dotStyle.Render("● ● ●")
}

func (b *MessageBubble) contentWidthLimit() int {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	return maxContentWidth
}

// renderWithCodeBlocks wraps prose and highlights fenced code blocks.
func renderWithCodeBlocks(content string, width int) string {
	if !strings.Contains(content, "```") {
		return wordWrap(content, width)
	}

	var out []string
	segments := strings.Split(content, "```")
	for i, segment := range segments {
		if i%2 == 0 {
			if trimmed := strings.TrimRight(segment, "\n"); trimmed != "" {
				out = append(out, wordWrap(trimmed, width))
			}
			continue
		}
		// Odd segments are fenced code: an optional language tag on the
		// first line, code below. An unterminated fence renders as code too.
		language := ""
		code := segment
		if nl := strings.IndexByte(segment, '\n'); nl >= 0 {
			language = strings.TrimSpace(segment[:nl])
			code = segment[nl+1:]
		}
		block := NewCodeBlock(language, code)
		block.SetMaxWidth(width)
		out = append(out, block.Render())
	}
	return strings.Join(out, "\n")
}
