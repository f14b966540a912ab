// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat pane: transcript viewport, upload panel, input area.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewport.View())

	if panel := m.renderUploadPanel(); panel != "" {
		sections = append(sections, panel)
	}

	sections = append(sections, m.renderInputArea())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// syncViewport re-renders the transcript into the viewport and follows the
// newest message.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders all messages plus the pending placeholder.
func (m Model) renderTranscript() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	if len(m.messages) == 0 && m.pending == nil {
		if m.state == StateLoading {
			return m.theme.ThinkingText.Render("Loading conversation...")
		}
		return m.theme.ThinkingText.Render("No messages yet. Say hello.")
	}

	var parts []string
	for _, msg := range m.messages {
		bubble := components.NewMessageBubble(msg, m.theme)
		bubble.SetWidth(width)
		bubble.ShowTimestamp = m.showTimestamps
		parts = append(parts, bubble.View())
	}
	if m.pending != nil {
		bubble := components.NewMessageBubble(*m.pending, m.theme)
		bubble.SetWidth(width)
		parts = append(parts, bubble.View())
	}

	return strings.Join(parts, "\n\n")
}

// renderUploadPanel shows the staged attachments, the uploading indicator,
// and any send-pipeline error.
func (m Model) renderUploadPanel() string {
	var lines []string

	if m.upload.HasFiles() {
		names := make([]string, len(m.upload.Files))
		for i, f := range m.upload.Files {
			names[i] = f.Name
		}
		lines = append(lines, m.theme.UploadList.Render("Ready to upload: "+strings.Join(names, ", ")))
	}
	if m.upload.IsUploading {
		lines = append(lines, m.theme.StatusNote.Render(m.spinner.View()+" Uploading files..."))
	}
	if m.upload.Err != "" {
		lines = append(lines, m.theme.UploadError.Render("Upload failed: "+m.upload.Err))
	}

	return strings.Join(lines, "\n")
}

// renderInputArea renders the composition box and the status line.
func (m Model) renderInputArea() string {
	box := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	status := m.renderStatusLine()
	if status == "" {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, box, status)
}

func (m Model) renderStatusLine() string {
	switch {
	case m.statusNote != "":
		return m.theme.StatusNote.Render(m.statusNote)
	case m.state == StateWaiting:
		return m.theme.ThinkingText.Render(m.spinner.View() + " Assistant is thinking...")
	case m.state == StateUploading:
		return m.theme.ThinkingText.Render(m.spinner.View() + " Uploading...")
	default:
		return ""
	}
}

// uploadPanelHeight reserves layout room for the upload panel lines.
func uploadPanelHeight(u model.UploadState) int {
	h := 0
	if u.HasFiles() {
		h++
	}
	if u.IsUploading {
		h++
	}
	if u.Err != "" {
		h++
	}
	return h
}
