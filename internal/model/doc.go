// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the client-side data model: chat messages, session
// and project summaries, and the pending upload set.
//
// The package is intentionally dependency-free beyond the id generator.
// All types mirror the backend's wire shapes (see internal/api) but carry
// parsed time.Time values and the client-only Error/Loading flags.
package model
