// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat view: the message list and composition
// state for one chat session.
//
// Lifecycle per activation:
//
//	Loading -> Ready -> (Uploading -> Waiting | Waiting) -> Ready
//
// Activation (SetChatID) clears the list and upload state synchronously and
// fetches history; a history fetch that fails leaves an empty, usable
// session and is only logged. Submission appends the user message and
// clears the input before any network call resolves, then runs upload (when
// files are staged) followed by the completion request. Any failure in that
// pipeline appends a synthetic error-flagged assistant message and records
// the error in the upload state; the optimistic user message is never
// rolled back.
//
// Stale asynchronous results are recognized by a generation counter bumped
// on every activation, and a second submission is rejected while one is
// outstanding.
package chat
