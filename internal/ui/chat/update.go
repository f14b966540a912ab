// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/id"
	"github.com/jeranaias/workspace-tui/internal/model"
)

// attachCommand stages files for the next submission.
const attachCommand = "/attach"

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case UploadFinishedMsg:
		return m.handleUploadFinished(msg)

	case CompletionFinishedMsg:
		return m.handleCompletionFinished(msg)

	case spinner.TickMsg:
		if m.state == StateReady {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Anything else (cursor blinks in particular) belongs to the textarea;
	// dropping it here would freeze the cursor after the first blink.
	if m.focused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.handleSubmit()

	case tea.KeyCtrlJ:
		// Multi-line composition: ctrl+j inserts a line break.
		m.input.InsertString("\n")
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMISSION - the optimistic send pipeline
// =============================================================================

// handleSubmit runs the submission transition:
//
//	text empty after trimming  -> rejected, no state change, no network call
//	/attach ...                -> replace the pending file set, nothing else
//	otherwise                  -> append user message + clear input now,
//	                              then upload (if files), then completion
func (m Model) handleSubmit() (Model, tea.Cmd) {
	raw := m.input.Value()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return m, nil
	}

	if strings.HasPrefix(trimmed, attachCommand) {
		return m.handleAttach(trimmed), nil
	}

	// One turn at a time: a submission while another is outstanding is
	// rejected outright rather than interleaved.
	if m.state == StateUploading || m.state == StateWaiting {
		m.statusNote = "Still waiting for the previous response..."
		return m, nil
	}
	if m.state == StateLoading {
		m.statusNote = "Loading chat history..."
		return m, nil
	}

	// Optimistic update: the user message is appended and the input
	// cleared before any network call resolves, and the append is never
	// rolled back regardless of downstream failure.
	userMsg := model.NewUserMessage(raw)
	m.messages = append(m.messages, userMsg)
	m.pendingText = userMsg.Content
	m.input.Reset()
	m.statusNote = ""

	placeholder := model.NewLoadingMessage()
	m.pending = &placeholder

	if m.upload.HasFiles() {
		m.upload.IsUploading = true
		m.upload.Err = ""
		m.state = StateUploading
		m.syncViewport()
		return m, tea.Batch(
			uploadFilesCmd(m.client, m.chatID, m.upload.Files, m.generation),
			m.spinner.Tick,
		)
	}

	m.state = StateWaiting
	m.syncViewport()
	return m, tea.Batch(
		submitCompletionCmd(m.client, m.chatID, m.pendingText, nil, m.generation),
		m.spinner.Tick,
	)
}

// handleAttach replaces the pending attachment set. Each /attach fully
// replaces the previous selection; a bare /attach clears it.
func (m Model) handleAttach(line string) Model {
	fields := strings.Fields(line)[1:]

	files := make([]model.Attachment, 0, len(fields))
	for _, path := range fields {
		files = append(files, model.NewAttachment(path))
	}
	m.upload.Replace(files)
	m.input.Reset()

	if len(files) == 0 {
		m.statusNote = "Attachments cleared"
	} else {
		m.statusNote = ""
	}
	return m
}

// =============================================================================
// ASYNC RESULT HANDLING
// =============================================================================

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (Model, tea.Cmd) {
	if msg.Generation != m.generation {
		// A superseded activation's fetch resolved late; drop it.
		return m, nil
	}

	m.state = StateReady
	m.statusNote = ""

	if msg.Err != nil {
		// History-load failure is silent to the user: the session stays
		// usable with an empty list.
		log.Printf("history load failed for chat %s: %v", m.chatID, msg.Err)
		m.messages = nil
		m.syncViewport()
		return m, nil
	}

	m.messages = model.FilterDisplayable(msg.Messages)
	m.syncViewport()
	return m, nil
}

func (m Model) handleUploadFinished(msg UploadFinishedMsg) (Model, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}

	if msg.Err != nil {
		// No completion call is issued when the upload stage fails.
		return m.failTurn(msg.Err), nil
	}

	m.upload.Reset()
	m.state = StateWaiting
	return m, submitCompletionCmd(m.client, m.chatID, m.pendingText, msg.FileIDs, m.generation)
}

func (m Model) handleCompletionFinished(msg CompletionFinishedMsg) (Model, tea.Cmd) {
	if msg.Generation != m.generation {
		return m, nil
	}

	if msg.Err != nil {
		return m.failTurn(msg.Err), nil
	}

	m.statusNote = ""

	// Each response field is defaulted independently; a partially
	// populated response keeps what it has.
	assistant := model.ChatMessage{
		ID:        id.New(),
		Author:    model.AuthorAssistant,
		Content:   emptyContentPlaceholder,
		CreatedAt: time.Now(),
	}
	if msg.Response != nil {
		if msg.Response.ID != nil {
			assistant.ID = *msg.Response.ID
		}
		if msg.Response.Content != nil {
			assistant.Content = *msg.Response.Content
		}
		if msg.Response.CreatedAt != nil {
			assistant.CreatedAt = *msg.Response.CreatedAt
		}
	}

	m.messages = append(m.messages, assistant)
	m.pending = nil
	m.pendingText = ""
	m.state = StateReady
	m.syncViewport()
	return m, nil
}

// failTurn applies the failure fallback for the send pipeline: a synthetic
// error-flagged assistant message plus the error string in upload state.
// The optimistically appended user message stays.
func (m Model) failTurn(err error) Model {
	log.Printf("send failed for chat %s: %v", m.chatID, err)

	m.messages = append(m.messages, model.NewErrorMessage(errorResponseText))
	m.upload.Err = err.Error()
	m.upload.IsUploading = false
	m.pending = nil
	m.pendingText = ""
	m.statusNote = ""
	m.state = StateReady
	m.syncViewport()
	return m
}
