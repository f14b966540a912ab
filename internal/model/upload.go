// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "path/filepath"

// =============================================================================
// UPLOAD STATE
// =============================================================================

// Attachment is a file staged for upload with the next submission.
type Attachment struct {
	// Name is the filename sent to the backend (base name of Path).
	Name string
	// Path is the local filesystem path the content is read from.
	Path string
}

// NewAttachment creates an attachment for a local file path.
func NewAttachment(path string) Attachment {
	return Attachment{Name: filepath.Base(path), Path: path}
}

// UploadState tracks the pending attachment set for the active chat. It is
// owned exclusively by the chat controller and reset whenever the active
// chat changes or after a successful upload.
type UploadState struct {
	Files       []Attachment
	IsUploading bool
	Err         string
}

// Reset returns the state to its default: no files, not uploading, no error.
func (u *UploadState) Reset() {
	u.Files = nil
	u.IsUploading = false
	u.Err = ""
}

// Replace swaps the pending file set for a newly selected one. Selections
// replace each other; files are never accumulated across selections.
func (u *UploadState) Replace(files []Attachment) {
	u.Files = files
}

// HasFiles reports whether any attachments are staged.
func (u UploadState) HasFiles() bool {
	return len(u.Files) > 0
}
