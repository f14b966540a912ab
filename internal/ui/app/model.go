// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/config"
	"github.com/jeranaias/workspace-tui/internal/id"
	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/chat"
	"github.com/jeranaias/workspace-tui/internal/ui/components"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

type focusArea int

const (
	focusChat focusArea = iota
	focusSidebar
)

// =============================================================================
// APP MODEL
// =============================================================================

// Model is the root Bubble Tea model. It owns the project and chat
// collections, the active chat id, and composes the sidebar with the chat
// view. Everything session-scoped lives in the chat model; everything
// workspace-scoped lives here.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	cfg    *config.Config

	// watcher is nil when config live reload is disabled.
	watcher *config.Watcher

	sidebar components.Sidebar
	chat    chat.Model

	projects []model.ProjectSummary
	chats    []model.ChatSessionSummary

	// activeChatID starts as a locally generated id and is reassigned to the
	// first backend chat once the startup list arrives.
	activeChatID string

	focus   focusArea
	width   int
	height  int
	preview string // non-empty while the transcript preview overlay is shown
	status  string

	// initCmd carries the initial chat activation issued during construction.
	initCmd  tea.Cmd
	quitting bool
}

// New creates the root model. cfg must be non-nil; watcher may be nil.
func New(theme *styles.Theme, client *api.Client, cfg *config.Config, watcher *config.Watcher) Model {
	sidebar := components.NewSidebar(theme)
	sidebar.Compact = cfg.UI.CompactSidebar

	chatModel := chat.New(theme, client)
	chatModel.SetShowTimestamps(cfg.UI.ShowTimestamps)

	m := Model{
		theme:        theme,
		client:       client,
		cfg:          cfg,
		watcher:      watcher,
		sidebar:      sidebar,
		chat:         chatModel,
		activeChatID: id.New(),
		focus:        focusChat,
	}
	m.sidebar.SelectedID = m.activeChatID
	m.initCmd = m.chat.SetChatID(m.activeChatID)
	return m
}

// Init starts the initial history fetch plus the independent project and
// chat list loads. Either list failing leaves its collection empty without
// affecting the other.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.chat.Init(),
		m.initCmd,
		loadProjectsCmd(m.client),
		loadChatsCmd(m.client),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfigCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// ActiveChatID returns the id of the chat currently shown.
func (m Model) ActiveChatID() string {
	return m.activeChatID
}

// Chats returns the chat session collection in backend order.
func (m Model) Chats() []model.ChatSessionSummary {
	return m.chats
}

// Projects returns the project collection.
func (m Model) Projects() []model.ProjectSummary {
	return m.projects
}

// activeTitle resolves the title of the active chat for the header and
// exports.
func (m Model) activeTitle() string {
	for _, c := range m.chats {
		if c.ID == m.activeChatID {
			if c.Title != "" {
				return c.Title
			}
			break
		}
	}
	return "Untitled chat"
}
