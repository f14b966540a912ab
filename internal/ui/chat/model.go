// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/workspace-tui/internal/api"
	"github.com/jeranaias/workspace-tui/internal/model"
	"github.com/jeranaias/workspace-tui/internal/ui/styles"
)

// errorResponseText is the literal apology shown as a synthetic assistant
// message when the send pipeline fails.
const errorResponseText = "Sorry, something went wrong while contacting the backend."

// emptyContentPlaceholder fills in for a completion response with no content
// field.
const emptyContentPlaceholder = "(no content)"

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view for one activation.
type State int

const (
	StateLoading   State = iota // Fetching history for the active chat
	StateReady                  // Ready for input
	StateUploading              // Uploading staged files
	StateWaiting                // Waiting for the completion response
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the message list
// and composition state for the active chat session: history loading,
// optimistic send, file upload sequencing, and failure fallback.
//
// All mutable state is confined to this model and updated only through its
// own transitions; there is no concurrent writer.
type Model struct {
	// State
	state      State
	chatID     string
	generation int // bumped on every activation; stale async results are dropped

	// Conversation
	messages []model.ChatMessage

	// Pending upload set
	upload model.UploadState

	// Transient placeholder bubble shown while a completion is pending.
	pending *model.ChatMessage

	// pendingText is the submitted turn's text, held for the completion
	// call while the upload stage runs.
	pendingText string

	// Styling
	theme *styles.Theme

	// Backend
	client *api.Client

	// UI components
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	// Dimensions
	width  int
	height int

	// Status
	statusNote     string
	focused        bool
	showTimestamps bool
}

// New creates a new chat model.
func New(theme *styles.Theme, client *api.Client) Model {
	ti := textarea.New()
	ti.Placeholder = "Ask anything about your data..."
	ti.CharLimit = 4096
	ti.SetHeight(2)
	ti.ShowLineNumbers = false
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	return Model{
		state:    StateReady,
		theme:    theme,
		client:   client,
		viewport: vp,
		input:    ti,
		spinner:  sp,
		focused:  true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// =============================================================================
// ACTIVATION
// =============================================================================

// SetChatID activates a chat session. The message list and upload state are
// cleared synchronously, before the history fetch resolves; the returned
// command loads the new session's history. An in-flight fetch for the
// previous session is not aborted, its result is discarded by the
// generation check.
func (m *Model) SetChatID(chatID string) tea.Cmd {
	m.chatID = chatID
	m.generation++
	m.messages = nil
	m.upload.Reset()
	m.pending = nil
	m.state = StateLoading
	m.statusNote = ""
	m.input.Reset()
	m.syncViewport()

	return tea.Batch(
		fetchHistoryCmd(m.client, chatID, m.generation),
		m.spinner.Tick,
	)
}

// ChatID returns the active chat session id.
func (m Model) ChatID() string {
	return m.chatID
}

// Messages returns the current message list.
func (m Model) Messages() []model.ChatMessage {
	return m.messages
}

// UploadState returns the pending upload state.
func (m Model) UploadState() model.UploadState {
	return m.upload
}

// State returns the view state.
func (m Model) State() State {
	return m.state
}

// InputValue returns the current composition text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Focus gives keyboard focus to the composition input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus from the composition input.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the chat pane has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetShowTimestamps toggles per-message timestamps in the transcript.
func (m *Model) SetShowTimestamps(show bool) {
	m.showTimestamps = show
	m.syncViewport()
}

// SetSize sets the rendered dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := m.input.Height() + 2
	vpHeight := height - inputHeight - uploadPanelHeight(m.upload) - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.SetWidth(width - 4)
	m.syncViewport()
}
