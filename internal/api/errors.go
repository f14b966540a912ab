// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"strconv"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Each remote operation fails with its own error type so callers can tell
// the stages of the send pipeline apart. Every type carries the HTTP status
// the backend answered with.

// HistoryFetchError reports a non-success status from the message history
// endpoint.
type HistoryFetchError struct {
	Status int
	Cause  error
}

func (e *HistoryFetchError) Error() string {
	if e.Cause != nil {
		return "failed to load chat history: " + e.Cause.Error()
	}
	return "failed to load chat history: status " + strconv.Itoa(e.Status)
}

func (e *HistoryFetchError) Unwrap() error {
	return e.Cause
}

// UploadError reports a non-success status from the file upload endpoint.
type UploadError struct {
	Status int
	Cause  error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return "file upload failed: " + e.Cause.Error()
	}
	return "file upload failed with status " + strconv.Itoa(e.Status)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// CompletionError reports a non-success status from the completion endpoint.
type CompletionError struct {
	Status int
	Cause  error
}

func (e *CompletionError) Error() string {
	if e.Cause != nil {
		return "completion request failed: " + e.Cause.Error()
	}
	return "backend returned " + strconv.Itoa(e.Status)
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// PREDICATES
// =============================================================================

// IsHistoryFetchError checks whether err is a history fetch failure.
func IsHistoryFetchError(err error) bool {
	var he *HistoryFetchError
	return errors.As(err, &he)
}

// IsUploadError checks whether err is a file upload failure.
func IsUploadError(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue)
}

// IsCompletionError checks whether err is a completion failure.
func IsCompletionError(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce)
}
