// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A few load-bearing styles must render without panicking and produce
	// non-empty output.
	if theme.UserBubble.Render("hi") == "" {
		t.Error("UserBubble renders empty")
	}
	if theme.ErrorBubble.Render("boom") == "" {
		t.Error("ErrorBubble renders empty")
	}
	if theme.SidebarItemActive.Render("chat") == "" {
		t.Error("SidebarItemActive renders empty")
	}
}
