// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/config"
	"github.com/jeranaias/workspace-tui/internal/id"
	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)

	case chatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case configReloadedMsg:
		return m.handleConfigReloaded(msg)

	case transcriptExportedMsg:
		return m.handleTranscriptExported(msg)
	}

	// Everything else (history, upload, completion results, spinner ticks)
	// belongs to the chat view.
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit
	}

	// The preview overlay swallows input until dismissed.
	if m.preview != "" {
		switch msg.String() {
		case "esc", "q", "ctrl+e":
			m.preview = ""
			m.status = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m.toggleFocus()

	case "ctrl+e":
		if len(m.chat.Messages()) == 0 {
			m.status = "Nothing to export yet"
			return m, nil
		}
		m.status = "Exporting transcript..."
		return m, exportTranscriptCmd(m.activeTitle(), m.chat.Messages(), m.width-4)
	}

	if m.focus == focusSidebar {
		var event components.SidebarEvent
		m.sidebar, event = m.sidebar.Update(msg)
		switch event := event.(type) {
		case components.SelectChatEvent:
			return m.activateChat(event.ChatID)
		case components.CreateChatEvent:
			return m.createChat()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusChat {
		m.focus = focusSidebar
		m.chat.Blur()
		return m, nil
	}
	m.focus = focusChat
	return m, m.chat.Focus()
}

// =============================================================================
// CHAT ACTIVATION
// =============================================================================

// activateChat switches the active session and moves focus to the input.
func (m Model) activateChat(chatID string) (tea.Model, tea.Cmd) {
	m.activeChatID = chatID
	m.sidebar.SelectedID = chatID
	m.focus = focusChat
	m.status = ""
	return m, tea.Batch(m.chat.SetChatID(chatID), m.chat.Focus())
}

// createChat prepends a fresh untitled session and activates it immediately;
// no backend call is involved until the first message is sent.
func (m Model) createChat() (tea.Model, tea.Cmd) {
	summary := model.ChatSessionSummary{
		ID:        id.New(),
		Title:     "Untitled chat",
		UpdatedAt: time.Now(),
	}
	m.chats = append([]model.ChatSessionSummary{summary}, m.chats...)
	m.sidebar.SetChats(m.chats)
	return m.activateChat(summary.ID)
}

// =============================================================================
// STARTUP LISTS
// =============================================================================

func (m Model) handleProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Best effort: the sidebar shows its empty placeholder.
		log.Printf("project list load failed: %v", msg.Err)
		return m, nil
	}
	m.projects = msg.Projects
	m.sidebar.SetProjects(msg.Projects)
	return m, nil
}

func (m Model) handleChatsLoaded(msg chatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("chat list load failed: %v", msg.Err)
		return m, nil
	}
	m.chats = msg.Chats
	m.sidebar.SetChats(msg.Chats)

	// The provisional local id gives way to the first backend chat.
	if len(msg.Chats) > 0 {
		return m.activateChat(msg.Chats[0].ID)
	}
	return m, nil
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m Model) handleConfigReloaded(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	m.cfg = msg.Config
	m.applyConfig(msg.Config)
	log.Printf("config reloaded: backend=%s", msg.Config.Backend.BaseURL)

	// Re-arm for the next reload.
	return m, waitForConfigCmd(m.watcher)
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.client.SetBaseURL(cfg.Backend.BaseURL)
	m.sidebar.Compact = cfg.UI.CompactSidebar
	m.chat.SetShowTimestamps(cfg.UI.ShowTimestamps)
	m.layout()
}

// =============================================================================
// EXPORT
// =============================================================================

func (m Model) handleTranscriptExported(msg transcriptExportedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("transcript export failed: %v", msg.Err)
		m.status = "Export failed: " + msg.Err.Error()
		return m, nil
	}
	m.preview = msg.Preview
	m.status = "Saved transcript to " + msg.Path
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	sidebarWidth := 32
	if m.sidebar.Compact {
		sidebarWidth = 24
	}
	if sidebarWidth > m.width/3 {
		sidebarWidth = m.width / 3
	}

	// One row each for the header and the status bar.
	bodyHeight := m.height - 2
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	m.sidebar.SetSize(sidebarWidth, bodyHeight)
	m.chat.SetSize(m.width-sidebarWidth, bodyHeight)
}
