// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns a chat transcript into a markdown document, saves it
// to disk, and renders a terminal preview of it.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// MARKDOWN GENERATION
// =============================================================================

// Markdown renders the transcript as a markdown document. Loading
// placeholders are skipped; error-flagged messages are kept and marked.
func Markdown(title string, messages []model.ChatMessage) string {
	if title == "" {
		title = "Untitled chat"
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "_Exported %s_\n", time.Now().Format("January 2, 2006 at 3:04 PM"))

	for _, msg := range messages {
		if msg.Loading {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(msg.Author.DisplayName())
		if msg.Error {
			b.WriteString(" (error)")
		}
		if !msg.CreatedAt.IsZero() {
			b.WriteString(" - ")
			b.WriteString(msg.CreatedAt.Format("Jan 2 15:04"))
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(msg.Content, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

// =============================================================================
// SAVING
// =============================================================================

// DefaultDir returns the directory transcripts are written to.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".workspace-tui", "exports"), nil
}

// Save writes the transcript to dir as markdown and returns the file path.
// The filename is derived from the title plus a timestamp so repeated
// exports never collide.
func Save(dir, title string, messages []model.ChatMessage) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.md", slugify(title), time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(Markdown(title, messages)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// slugify reduces a title to a safe filename fragment.
func slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return "untitled-chat"
	}

	var b strings.Builder
	lastDash := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "untitled-chat"
	}
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	return slug
}

// =============================================================================
// PREVIEW
// =============================================================================

// Preview renders the markdown document for in-terminal display.
func Preview(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
