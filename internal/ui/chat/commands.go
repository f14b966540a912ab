// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// Commands close over the generation that issued them so a response arriving
// after the session changed can be recognized and dropped. No timeouts are
// imposed here; the client's transport timeout is the only bound.

// fetchHistoryCmd loads the message history for a chat.
func fetchHistoryCmd(client *api.Client, chatID string, generation int) tea.Cmd {
	return func() tea.Msg {
		msgs, err := client.FetchMessages(context.Background(), chatID)
		return HistoryLoadedMsg{Generation: generation, Messages: msgs, Err: err}
	}
}

// uploadFilesCmd uploads the staged attachments.
func uploadFilesCmd(client *api.Client, chatID string, files []model.Attachment, generation int) tea.Cmd {
	return func() tea.Msg {
		ids, err := client.UploadFiles(context.Background(), chatID, files)
		return UploadFinishedMsg{Generation: generation, FileIDs: ids, Err: err}
	}
}

// submitCompletionCmd posts one chat turn.
func submitCompletionCmd(client *api.Client, chatID, message string, fileIDs []string, generation int) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.SubmitCompletion(context.Background(), chatID, api.CompletionRequest{
			Message: message,
			FileIDs: fileIDs,
		})
		return CompletionFinishedMsg{Generation: generation, Response: resp, Err: err}
	}
}
