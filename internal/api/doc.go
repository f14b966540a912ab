// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api wraps the workspace backend's HTTP surface behind typed
// methods:
//
//	GET  /projects               -> ListProjects
//	GET  /chats                  -> ListChats
//	GET  /chat/{id}/messages     -> FetchMessages
//	POST /chat/{id}/files        -> UploadFiles (multipart, field "files")
//	POST /chat/{id}/respond      -> SubmitCompletion (JSON)
//
// Non-success statuses on the per-chat operations become HistoryFetchError,
// UploadError and CompletionError respectively, each carrying the status
// code. The list endpoints return plain errors; their callers treat any
// failure as an empty collection and log it.
//
// No retries and no timeout policy live here beyond the transport timeout;
// a failed send requires the user to re-submit.
package api
