// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
	"github.com/jeranaias/workspace-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// SidebarEvent is a selection or creation signal the sidebar sends upward.
// Ownership of project and chat data stays with the parent; the sidebar
// renders what it is given and reports what was activated.
type SidebarEvent interface {
	sidebarEvent()
}

// SelectChatEvent reports that a chat entry was activated.
type SelectChatEvent struct {
	ChatID string
}

// CreateChatEvent reports that the "new chat" control was activated.
type CreateChatEvent struct{}

func (SelectChatEvent) sidebarEvent() {}
func (CreateChatEvent) sidebarEvent() {}

// Sidebar renders the project and chat collections. Chats are shown in a
// recency-derived order (descending UpdatedAt) computed at render time;
// the input slices are never mutated. The only internal state is the
// cursor position.
type Sidebar struct {
	Projects   []model.ProjectSummary
	Chats      []model.ChatSessionSummary
	SelectedID string

	// Compact drops descriptions and timestamps to save rows.
	Compact bool

	width  int
	height int
	cursor int // 0 = new-chat control, 1..len(chats) = sorted chat rows
	theme  *styles.Theme
}

// NewSidebar creates a sidebar.
func NewSidebar(theme *styles.Theme) Sidebar {
	return Sidebar{
		width:  30,
		height: 24,
		theme:  theme,
	}
}

// SetSize sets the rendered dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetChats replaces the chat collection and clamps the cursor.
func (s *Sidebar) SetChats(chats []model.ChatSessionSummary) {
	s.Chats = chats
	if s.cursor > len(chats) {
		s.cursor = len(chats)
	}
}

// SetProjects replaces the project collection.
func (s *Sidebar) SetProjects(projects []model.ProjectSummary) {
	s.Projects = projects
}

// Update handles key input while the sidebar has focus. It returns the
// updated sidebar and, when an entry was activated, the resulting event.
func (s Sidebar) Update(msg tea.KeyMsg) (Sidebar, SidebarEvent) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.Chats) {
			s.cursor++
		}
	case "n":
		return s, CreateChatEvent{}
	case "enter":
		if s.cursor == 0 {
			return s, CreateChatEvent{}
		}
		sorted := model.SortChatsByRecency(s.Chats)
		if idx := s.cursor - 1; idx < len(sorted) {
			return s, SelectChatEvent{ChatID: sorted[idx].ID}
		}
	}
	return s, nil
}

// View renders the sidebar.
func (s Sidebar) View() string {
	innerWidth := s.width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Workspace"))
	b.WriteString("\n")
	b.WriteString(s.theme.HeaderSubtitle.Render("AI copilots for your data"))
	b.WriteString("\n\n")

	// New chat control.
	newChat := "+ New chat"
	if s.cursor == 0 {
		b.WriteString(s.theme.SidebarItemActive.Render(newChat))
	} else {
		b.WriteString(s.theme.SidebarItem.Render(newChat))
	}
	b.WriteString("\n\n")

	// Projects.
	b.WriteString(s.theme.SidebarSection.Render("Projects"))
	b.WriteString("\n")
	if len(s.Projects) == 0 {
		b.WriteString(s.theme.SidebarPlaceholder.Render("No projects yet"))
		b.WriteString("\n")
	}
	for _, project := range s.Projects {
		b.WriteString(s.theme.SidebarItem.Render(util.TruncateWidth(project.Name, innerWidth)))
		b.WriteString("\n")
		if !s.Compact && project.Description != "" {
			b.WriteString(s.theme.SidebarTimestamp.Render(util.TruncateWidth(project.Description, innerWidth)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// Recent chats, recency-sorted at render time.
	b.WriteString(s.theme.SidebarSection.Render("Recent Chats"))
	b.WriteString("\n")
	sorted := model.SortChatsByRecency(s.Chats)
	if len(sorted) == 0 {
		b.WriteString(s.theme.SidebarPlaceholder.Render("Start a new conversation"))
		b.WriteString("\n")
	}
	for i, chat := range sorted {
		title := chat.Title
		if title == "" {
			title = "Untitled chat"
		}
		line := util.TruncateWidth(title, innerWidth)

		style := s.theme.SidebarItem
		switch {
		case s.cursor == i+1:
			style = s.theme.SidebarItemActive
		case chat.ID == s.SelectedID:
			style = s.theme.SidebarItemActive.Background(lipgloss.NoColor{})
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if !s.Compact && !chat.UpdatedAt.IsZero() {
			b.WriteString(s.theme.SidebarTimestamp.Render(formatTimestamp(chat.UpdatedAt)))
			b.WriteString("\n")
		}
	}

	return s.theme.Sidebar.Width(s.width).Height(s.height).Render(b.String())
}
