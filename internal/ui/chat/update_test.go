// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme(), api.NewClient())
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func submitText(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	return pressEnter(m)
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

// =============================================================================
// ACTIVATION
// =============================================================================

func TestSetChatIDClearsStateSynchronously(t *testing.T) {
	m := newTestModel()
	m.messages = []model.ChatMessage{model.NewUserMessage("old")}
	m.upload.Replace([]model.Attachment{model.NewAttachment("/tmp/a.csv")})
	m.upload.Err = "previous failure"
	m.input.SetValue("half-typed")

	cmd := m.SetChatID("chat-1")

	if cmd == nil {
		t.Fatal("expected a history fetch command")
	}
	if m.ChatID() != "chat-1" {
		t.Errorf("chat id = %q, want chat-1", m.ChatID())
	}
	if m.State() != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.State())
	}
	// The reset happens before the fetch resolves, not after.
	if len(m.Messages()) != 0 {
		t.Errorf("messages not cleared: %d left", len(m.Messages()))
	}
	if m.upload.HasFiles() || m.upload.Err != "" || m.upload.IsUploading {
		t.Errorf("upload state not cleared: %+v", m.upload)
	}
	if m.InputValue() != "" {
		t.Errorf("input not cleared: %q", m.InputValue())
	}
}

func TestSetChatIDBumpsGeneration(t *testing.T) {
	m := newTestModel()
	first := m.generation
	m.SetChatID("chat-1")
	m.SetChatID("chat-2")
	if m.generation != first+2 {
		t.Errorf("generation = %d, want %d", m.generation, first+2)
	}
}

// =============================================================================
// HISTORY LOADING
// =============================================================================

func TestHistoryLoadedFiltersSystemMessages(t *testing.T) {
	m := newTestModel()
	m.SetChatID("chat-1")

	loaded := []model.ChatMessage{
		{ID: "1", Author: model.AuthorSystem, Content: "context preamble"},
		{ID: "2", Author: model.AuthorUser, Content: "hello"},
		{ID: "3", Author: model.AuthorAssistant, Content: "hi"},
	}
	m, _ = m.Update(HistoryLoadedMsg{Generation: m.generation, Messages: loaded})

	if m.State() != StateReady {
		t.Fatalf("state = %v, want StateReady", m.State())
	}
	got := m.Messages()
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("wrong messages kept: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestStaleHistoryDiscarded(t *testing.T) {
	m := newTestModel()
	m.SetChatID("chat-1")
	stale := m.generation
	m.SetChatID("chat-2")

	m, _ = m.Update(HistoryLoadedMsg{
		Generation: stale,
		Messages:   []model.ChatMessage{model.NewUserMessage("from chat-1")},
	})

	if len(m.Messages()) != 0 {
		t.Errorf("stale history applied: %d messages", len(m.Messages()))
	}
	if m.State() != StateLoading {
		t.Errorf("state = %v, want StateLoading while the live fetch is pending", m.State())
	}

	m, _ = m.Update(HistoryLoadedMsg{
		Generation: m.generation,
		Messages:   []model.ChatMessage{model.NewUserMessage("from chat-2")},
	})
	if len(m.Messages()) != 1 || m.Messages()[0].Content != "from chat-2" {
		t.Errorf("live history not applied: %+v", m.Messages())
	}
}

func TestHistoryErrorLeavesEmptyUsableSession(t *testing.T) {
	m := newTestModel()
	m.SetChatID("chat-1")

	m, _ = m.Update(HistoryLoadedMsg{Generation: m.generation, Err: errors.New("boom")})

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	if len(m.Messages()) != 0 {
		t.Errorf("got %d messages, want 0", len(m.Messages()))
	}
	// Silent failure: no error bubble, no upload error.
	if m.upload.Err != "" {
		t.Errorf("upload error set on history failure: %q", m.upload.Err)
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitRejectsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  "} {
		m := newTestModel()
		m, cmd := submitText(t, m, input)
		if cmd != nil {
			t.Errorf("input %q: got a command, want none", input)
		}
		if len(m.Messages()) != 0 {
			t.Errorf("input %q: message appended", input)
		}
		if m.State() != StateReady {
			t.Errorf("input %q: state = %v, want StateReady", input, m.State())
		}
	}
}

func TestSubmitAppendsOptimistically(t *testing.T) {
	m := newTestModel()
	m, cmd := submitText(t, m, "what is in this file?")

	if cmd == nil {
		t.Fatal("expected a completion command")
	}
	// The user message and cleared input are visible before anything resolves.
	if len(m.Messages()) != 1 {
		t.Fatalf("got %d messages, want 1", len(m.Messages()))
	}
	got := m.Messages()[0]
	if got.Author != model.AuthorUser || got.Content != "what is in this file?" {
		t.Errorf("wrong optimistic message: %+v", got)
	}
	if m.InputValue() != "" {
		t.Errorf("input not cleared: %q", m.InputValue())
	}
	if m.State() != StateWaiting {
		t.Errorf("state = %v, want StateWaiting", m.State())
	}
	if m.pending == nil || !m.pending.Loading {
		t.Error("expected a loading placeholder")
	}
}

func TestSubmitRejectedWhileTurnOutstanding(t *testing.T) {
	for _, state := range []State{StateUploading, StateWaiting} {
		m := newTestModel()
		m.state = state

		m, cmd := submitText(t, m, "second question")

		if cmd != nil {
			t.Errorf("state %v: got a command, want rejection", state)
		}
		if len(m.Messages()) != 0 {
			t.Errorf("state %v: message appended while turn outstanding", state)
		}
		if m.statusNote == "" {
			t.Errorf("state %v: expected a status note", state)
		}
		// The rejected text stays in the input.
		if m.InputValue() != "second question" {
			t.Errorf("state %v: input = %q, want it preserved", state, m.InputValue())
		}
	}
}

func TestSubmitRejectedWhileLoading(t *testing.T) {
	m := newTestModel()
	m.SetChatID("chat-1")

	m, cmd := submitText(t, m, "too early")

	if cmd != nil {
		t.Error("got a command, want rejection while history loads")
	}
	if len(m.Messages()) != 0 {
		t.Error("message appended while history loads")
	}
}

func TestAttachReplacesSelection(t *testing.T) {
	m := newTestModel()

	m, _ = submitText(t, m, "/attach /data/a.csv /data/b.csv")
	if got := len(m.UploadState().Files); got != 2 {
		t.Fatalf("got %d files, want 2", got)
	}

	// A second /attach replaces the set, it does not accumulate.
	m, _ = submitText(t, m, "/attach /data/c.csv")
	files := m.UploadState().Files
	if len(files) != 1 || files[0].Name != "c.csv" {
		t.Errorf("got %+v, want single c.csv", files)
	}

	// Bare /attach clears.
	m, _ = submitText(t, m, "/attach")
	if m.UploadState().HasFiles() {
		t.Errorf("files not cleared: %+v", m.UploadState().Files)
	}
}

func TestSubmitWithFilesUploadsFirst(t *testing.T) {
	m := newTestModel()
	m, _ = submitText(t, m, "/attach /data/a.csv")

	m, cmd := submitText(t, m, "summarize this")

	if cmd == nil {
		t.Fatal("expected an upload command")
	}
	if m.State() != StateUploading {
		t.Errorf("state = %v, want StateUploading", m.State())
	}
	if !m.UploadState().IsUploading {
		t.Error("IsUploading not set")
	}
	if len(m.Messages()) != 1 {
		t.Errorf("got %d messages, want the optimistic user message", len(m.Messages()))
	}
}

// =============================================================================
// UPLOAD STAGE
// =============================================================================

func TestUploadFailureSkipsCompletion(t *testing.T) {
	m := newTestModel()
	m, _ = submitText(t, m, "/attach /data/a.csv")
	m, _ = submitText(t, m, "summarize this")

	m, cmd := m.Update(UploadFinishedMsg{Generation: m.generation, Err: errors.New("413 too large")})

	if cmd != nil {
		t.Error("got a command after upload failure, completion must not run")
	}
	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	if m.upload.Err == "" {
		t.Error("upload error not recorded")
	}
	// The staged files survive a failed upload so the user can retry.
	if !m.upload.HasFiles() {
		t.Error("staged files dropped on upload failure")
	}
	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want user + error fallback", len(msgs))
	}
	if !msgs[1].Error || msgs[1].Content != errorResponseText {
		t.Errorf("wrong fallback message: %+v", msgs[1])
	}
}

func TestUploadSuccessIssuesCompletion(t *testing.T) {
	m := newTestModel()
	m, _ = submitText(t, m, "/attach /data/a.csv")
	m, _ = submitText(t, m, "summarize this")

	m, cmd := m.Update(UploadFinishedMsg{Generation: m.generation, FileIDs: []string{"f-1"}})

	if cmd == nil {
		t.Fatal("expected a completion command")
	}
	if m.State() != StateWaiting {
		t.Errorf("state = %v, want StateWaiting", m.State())
	}
	// A successful upload clears the staged set and any stale error.
	if m.upload.HasFiles() || m.upload.IsUploading || m.upload.Err != "" {
		t.Errorf("upload state not reset: %+v", m.upload)
	}
}

// =============================================================================
// COMPLETION STAGE
// =============================================================================

func TestCompletionResponseDefaults(t *testing.T) {
	when := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name        string
		resp        *api.CompletionResponse
		wantContent string
		wantID      string // empty means "any generated id"
	}{
		{
			name:        "full response",
			resp:        &api.CompletionResponse{ID: strPtr("srv-1"), Content: strPtr("42"), CreatedAt: timePtr(when)},
			wantContent: "42",
			wantID:      "srv-1",
		},
		{
			name:        "missing content",
			resp:        &api.CompletionResponse{ID: strPtr("srv-2"), CreatedAt: timePtr(when)},
			wantContent: "(no content)",
			wantID:      "srv-2",
		},
		{
			name:        "missing id and timestamp",
			resp:        &api.CompletionResponse{Content: strPtr("just text")},
			wantContent: "just text",
		},
		{
			name:        "empty response",
			resp:        &api.CompletionResponse{},
			wantContent: "(no content)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m, _ = submitText(t, m, "question")

			before := time.Now()
			m, _ = m.Update(CompletionFinishedMsg{Generation: m.generation, Response: tt.resp})

			msgs := m.Messages()
			if len(msgs) != 2 {
				t.Fatalf("got %d messages, want 2", len(msgs))
			}
			got := msgs[1]
			if got.Author != model.AuthorAssistant || got.Error {
				t.Errorf("wrong author/flags: %+v", got)
			}
			if got.Content != tt.wantContent {
				t.Errorf("content = %q, want %q", got.Content, tt.wantContent)
			}
			if tt.wantID != "" {
				if got.ID != tt.wantID {
					t.Errorf("id = %q, want %q", got.ID, tt.wantID)
				}
			} else if got.ID == "" {
				t.Error("expected a generated id")
			}
			if tt.resp.CreatedAt != nil {
				if !got.CreatedAt.Equal(when) {
					t.Errorf("createdAt = %v, want %v", got.CreatedAt, when)
				}
			} else if got.CreatedAt.Before(before) {
				t.Errorf("createdAt = %v, want a fresh timestamp", got.CreatedAt)
			}
			if m.State() != StateReady {
				t.Errorf("state = %v, want StateReady", m.State())
			}
			if m.pending != nil {
				t.Error("loading placeholder not cleared")
			}
		})
	}
}

func TestCompletionFailureKeepsUserMessage(t *testing.T) {
	m := newTestModel()
	m, _ = submitText(t, m, "question")

	m, _ = m.Update(CompletionFinishedMsg{Generation: m.generation, Err: errors.New("502 bad gateway")})

	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want user + error fallback", len(msgs))
	}
	if msgs[0].Author != model.AuthorUser || msgs[0].Content != "question" {
		t.Errorf("user message altered: %+v", msgs[0])
	}
	if !msgs[1].Error || msgs[1].Content != errorResponseText {
		t.Errorf("wrong fallback: %+v", msgs[1])
	}
	if !strings.Contains(m.upload.Err, "502") {
		t.Errorf("upload.Err = %q, want the cause recorded", m.upload.Err)
	}
	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
}

func TestStatusNoteClearedWhenTurnResolves(t *testing.T) {
	tests := []struct {
		name    string
		resolve CompletionFinishedMsg
	}{
		{"success", CompletionFinishedMsg{Response: &api.CompletionResponse{Content: strPtr("done")}}},
		{"failure", CompletionFinishedMsg{Err: errors.New("502")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m, _ = submitText(t, m, "first question")

			// An overlapping submission leaves a rejection note behind.
			m, _ = submitText(t, m, "second question")
			if m.statusNote == "" {
				t.Fatal("expected a rejection note while the turn is outstanding")
			}

			tt.resolve.Generation = m.generation
			m, _ = m.Update(tt.resolve)

			if m.statusNote != "" {
				t.Errorf("status note lingered after the turn resolved: %q", m.statusNote)
			}
		})
	}
}

func TestBlinkMessagesReachInput(t *testing.T) {
	m := newTestModel()

	// Init emits the first blink message; the update loop must hand it to
	// the textarea so the blink cycle keeps rescheduling itself.
	blink := m.Init()()
	m, cmd := m.Update(blink)
	if cmd == nil {
		t.Error("blink message dropped, cursor will stop blinking")
	}

	m.Blur()
	if _, cmd := m.Update(blink); cmd != nil {
		t.Error("blurred input should not reschedule blinks")
	}
}

func TestStaleCompletionDiscarded(t *testing.T) {
	m := newTestModel()
	m, _ = submitText(t, m, "question")
	stale := m.generation

	m.SetChatID("other-chat")
	m, _ = m.Update(HistoryLoadedMsg{Generation: m.generation})

	m, _ = m.Update(CompletionFinishedMsg{
		Generation: stale,
		Response:   &api.CompletionResponse{Content: strPtr("late answer")},
	})

	if len(m.Messages()) != 0 {
		t.Errorf("stale completion applied: %+v", m.Messages())
	}
}
