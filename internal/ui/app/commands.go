// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/config"
	"github.com/jeranaias/workspace-tui/internal/export"
	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

type projectsLoadedMsg struct {
	Projects []model.ProjectSummary
	Err      error
}

type chatsLoadedMsg struct {
	Chats []model.ChatSessionSummary
	Err   error
}

type configReloadedMsg struct {
	Config *config.Config
}

type transcriptExportedMsg struct {
	Path    string
	Preview string
	Err     error
}

// =============================================================================
// COMMANDS
// =============================================================================

func loadProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsLoadedMsg{Projects: projects, Err: err}
	}
}

func loadChatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background())
		return chatsLoadedMsg{Chats: chats, Err: err}
	}
}

// waitForConfigCmd blocks on the next live-reloaded configuration. The
// handler re-issues it so reloads keep flowing.
func waitForConfigCmd(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return configReloadedMsg{Config: cfg}
	}
}

// exportTranscriptCmd saves the transcript and renders its preview.
func exportTranscriptCmd(title string, messages []model.ChatMessage, width int) tea.Cmd {
	return func() tea.Msg {
		dir, err := export.DefaultDir()
		if err != nil {
			return transcriptExportedMsg{Err: err}
		}
		path, err := export.Save(dir, title, messages)
		if err != nil {
			return transcriptExportedMsg{Err: err}
		}

		md := export.Markdown(title, messages)
		preview, err := export.Preview(md, width)
		if err != nil {
			// The file is already on disk; fall back to raw markdown.
			preview = md
		}
		return transcriptExportedMsg{Path: path, Preview: preview}
	}
}
