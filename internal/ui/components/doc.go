// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for workspace-tui:
// the message bubble, the project/chat sidebar, and the code block
// renderer. Components are pure renderers over the data they are handed;
// mutable application state lives with their owners.
package components
