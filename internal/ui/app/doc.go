// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root of the terminal UI. It composes the sidebar and
// the chat view, owns the workspace-level collections (projects, chat
// sessions, the active chat id), and handles global keys, config live
// reload, and transcript export.
package app
