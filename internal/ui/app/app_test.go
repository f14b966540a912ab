// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/config"
	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func newTestApp() Model {
	return New(styles.NewTheme(), api.NewClient(), config.Default(), nil)
}

func press(m Model, key tea.KeyMsg) Model {
	updated, _ := m.Update(key)
	return updated.(Model)
}

func pressRune(m Model, r rune) Model {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestNewStartsWithGeneratedActiveChat(t *testing.T) {
	m := newTestApp()

	if !uuidPattern.MatchString(m.ActiveChatID()) {
		t.Errorf("active chat id %q is not a generated uuid", m.ActiveChatID())
	}
	if m.chat.ChatID() != m.ActiveChatID() {
		t.Errorf("chat view activated with %q, want %q", m.chat.ChatID(), m.ActiveChatID())
	}
}

func TestChatsLoadedActivatesFirstInBackendOrder(t *testing.T) {
	m := newTestApp()
	provisional := m.ActiveChatID()

	older := model.ChatSessionSummary{ID: "c-1", Title: "First", UpdatedAt: time.Now().Add(-time.Hour)}
	newer := model.ChatSessionSummary{ID: "c-2", Title: "Second", UpdatedAt: time.Now()}

	// Backend order wins for the initial activation, not recency order.
	updated, _ := m.Update(chatsLoadedMsg{Chats: []model.ChatSessionSummary{older, newer}})
	m = updated.(Model)

	if m.ActiveChatID() != "c-1" {
		t.Errorf("active chat = %q, want c-1", m.ActiveChatID())
	}
	if m.ActiveChatID() == provisional {
		t.Error("provisional id not replaced")
	}
	if len(m.Chats()) != 2 {
		t.Errorf("got %d chats, want 2", len(m.Chats()))
	}
}

func TestChatsLoadFailureKeepsProvisionalSession(t *testing.T) {
	m := newTestApp()
	provisional := m.ActiveChatID()

	updated, _ := m.Update(chatsLoadedMsg{Err: errors.New("backend down")})
	m = updated.(Model)

	if m.ActiveChatID() != provisional {
		t.Errorf("active chat changed on failed list load: %q", m.ActiveChatID())
	}
	if len(m.Chats()) != 0 {
		t.Errorf("got %d chats, want 0", len(m.Chats()))
	}
}

func TestListLoadsAreIndependent(t *testing.T) {
	m := newTestApp()

	updated, _ := m.Update(projectsLoadedMsg{Err: errors.New("boom")})
	m = updated.(Model)
	updated, _ = m.Update(chatsLoadedMsg{Chats: []model.ChatSessionSummary{{ID: "c-1"}}})
	m = updated.(Model)

	if len(m.Projects()) != 0 {
		t.Errorf("got %d projects, want 0", len(m.Projects()))
	}
	if len(m.Chats()) != 1 {
		t.Errorf("got %d chats, want 1", len(m.Chats()))
	}
}

func TestTabTogglesFocus(t *testing.T) {
	m := newTestApp()
	if m.focus != focusChat {
		t.Fatalf("initial focus = %v, want chat", m.focus)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusSidebar {
		t.Errorf("focus after tab = %v, want sidebar", m.focus)
	}
	if m.chat.Focused() {
		t.Error("chat still focused while sidebar has focus")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusChat || !m.chat.Focused() {
		t.Error("focus did not return to chat")
	}
}

func TestNewChatPrependsAndActivates(t *testing.T) {
	m := newTestApp()
	updated, _ := m.Update(chatsLoadedMsg{Chats: []model.ChatSessionSummary{{ID: "c-1", Title: "Existing"}}})
	m = updated.(Model)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab}) // focus sidebar
	m = pressRune(m, 'n')

	chats := m.Chats()
	if len(chats) != 2 {
		t.Fatalf("got %d chats, want 2", len(chats))
	}
	created := chats[0]
	if created.Title != "Untitled chat" {
		t.Errorf("title = %q, want Untitled chat", created.Title)
	}
	if !uuidPattern.MatchString(created.ID) {
		t.Errorf("created id %q is not a generated uuid", created.ID)
	}
	if m.ActiveChatID() != created.ID {
		t.Errorf("active chat = %q, want the created chat", m.ActiveChatID())
	}
	// Creation puts the user straight into the input.
	if m.focus != focusChat {
		t.Error("focus not returned to chat after creation")
	}
}

func TestExportRequiresMessages(t *testing.T) {
	m := newTestApp()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = updated.(Model)

	if cmd != nil {
		t.Error("export command issued with an empty transcript")
	}
	if m.status == "" {
		t.Error("expected a status note")
	}
}
