// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestFilterDisplayable(t *testing.T) {
	history := []ChatMessage{
		{ID: "1", Author: AuthorSystem, Content: "You are a helpful assistant."},
		{ID: "2", Author: AuthorUser, Content: "hi"},
		{ID: "3", Author: AuthorAssistant, Content: "hello"},
	}

	got := FilterDisplayable(history)

	if len(got) != 2 {
		t.Fatalf("FilterDisplayable returned %d messages, want 2", len(got))
	}
	if got[0].Content != "hi" || got[0].Author != AuthorUser {
		t.Errorf("first displayable = %+v, want the user entry", got[0])
	}
	if got[1].Content != "hello" || got[1].Author != AuthorAssistant {
		t.Errorf("second displayable = %+v, want the assistant entry", got[1])
	}
}

func TestFilterDisplayableEmpty(t *testing.T) {
	if got := FilterDisplayable(nil); len(got) != 0 {
		t.Errorf("FilterDisplayable(nil) = %v, want empty", got)
	}
}

func TestSortChatsByRecency(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	input := []ChatSessionSummary{
		{ID: "a", UpdatedAt: t1},
		{ID: "c", UpdatedAt: t3},
		{ID: "b", UpdatedAt: t2},
	}

	got := SortChatsByRecency(input)

	wantOrder := []string{"c", "b", "a"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("sorted[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	// The input sequence must be left unmodified.
	if input[0].ID != "a" || input[1].ID != "c" || input[2].ID != "b" {
		t.Errorf("input mutated: %v", input)
	}
}

func TestMessageConstructors(t *testing.T) {
	user := NewUserMessage("Hello")
	if user.Author != AuthorUser || user.Content != "Hello" {
		t.Errorf("NewUserMessage = %+v", user)
	}
	if user.ID == "" {
		t.Error("NewUserMessage did not assign an id")
	}

	errMsg := NewErrorMessage("boom")
	if !errMsg.Error || errMsg.Author != AuthorAssistant {
		t.Errorf("NewErrorMessage = %+v", errMsg)
	}

	loading := NewLoadingMessage()
	if !loading.Loading || loading.Content != "" {
		t.Errorf("NewLoadingMessage = %+v", loading)
	}

	if user.ID == errMsg.ID || errMsg.ID == loading.ID {
		t.Error("locally originated messages must not share ids")
	}
}

func TestUploadStateReset(t *testing.T) {
	u := UploadState{
		Files:       []Attachment{NewAttachment("/tmp/a.txt")},
		IsUploading: true,
		Err:         "previous failure",
	}
	u.Reset()

	if u.HasFiles() || u.IsUploading || u.Err != "" {
		t.Errorf("Reset left state %+v", u)
	}
}

func TestUploadStateReplace(t *testing.T) {
	u := UploadState{Files: []Attachment{NewAttachment("/tmp/a.txt"), NewAttachment("/tmp/b.txt")}}
	u.Replace([]Attachment{NewAttachment("/tmp/c.txt")})

	if len(u.Files) != 1 || u.Files[0].Name != "c.txt" {
		t.Errorf("Replace accumulated instead of replacing: %+v", u.Files)
	}
}

func TestAuthorDisplayName(t *testing.T) {
	tests := []struct {
		author Author
		want   string
	}{
		{AuthorUser, "You"},
		{AuthorAssistant, "Assistant"},
		{AuthorSystem, "System"},
		{Author("tool"), "tool"},
	}
	for _, tc := range tests {
		if got := tc.author.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.author, got, tc.want)
		}
	}
}
