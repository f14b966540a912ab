// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/workspace-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full application frame: header, sidebar plus chat body,
// status bar. While a transcript preview is open it replaces the chat pane.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Starting..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.renderMain())
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := util.TruncateWidth(m.activeTitle(), m.width-16)
	return m.theme.Header.Width(m.width).Render("Data Copilot  " + title)
}

func (m Model) renderMain() string {
	if m.preview != "" {
		pane := lipgloss.NewStyle().
			Width(m.width - lipgloss.Width(m.sidebar.View())).
			MaxHeight(m.height - 2)
		return pane.Render(m.preview)
	}
	return m.chat.View()
}

func (m Model) renderStatusBar() string {
	text := m.status
	if text == "" {
		if m.preview != "" {
			text = "esc: close preview"
		} else {
			text = "tab: switch pane · n: new chat · ctrl+e: export · ctrl+c: quit"
		}
	}
	return m.theme.StatusBar.Width(m.width).Render(util.TruncateWidth(text, m.width-2))
}
