// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/jeranaias/workspace-tui/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base address (default: http://localhost:8000)
	BaseURL string

	// Timeout for requests (default: 30s). Uploads and completions share it;
	// this layer imposes no policy beyond the transport timeout.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the workspace backend. It wraps the
// five remote operations behind typed methods and translates non-success
// responses into the error types in errors.go.
//
// The Client is safe for concurrent use: requests run on their own
// goroutines while config live reload rewrites the base URL from the event
// loop, so the mutable address is behind a lock.
type Client struct {
	mu         sync.RWMutex
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base address.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.BaseURL
}

// SetBaseURL updates the backend base address (used by config live reload).
// In-flight requests keep the address they started with.
func (c *Client) SetBaseURL(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.BaseURL = base
}

// =============================================================================
// HISTORY
// =============================================================================

// FetchMessages retrieves the full message history for a chat, in backend
// order. System-authored entries are included; display filtering is the
// caller's concern.
func (c *Client) FetchMessages(ctx context.Context, chatID string) ([]model.ChatMessage, error) {
	endpoint := c.BaseURL() + "/chat/" + url.PathEscape(chatID) + "/messages"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &HistoryFetchError{Cause: err}
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, &HistoryFetchError{Cause: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		drain(resp.Body)
		return nil, &HistoryFetchError{Status: resp.StatusCode}
	}

	var envelope messagesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &HistoryFetchError{Status: resp.StatusCode, Cause: err}
	}
	if envelope.Messages == nil {
		return []model.ChatMessage{}, nil
	}
	return envelope.Messages, nil
}

// =============================================================================
// FILE UPLOAD
// =============================================================================

// UploadFiles sends the staged attachments as a multipart body under the
// repeated "files" field and returns the backend-assigned file ids.
func (c *Client) UploadFiles(ctx context.Context, chatID string, files []model.Attachment) ([]string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, &UploadError{Cause: err}
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return nil, &UploadError{Cause: err}
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return nil, &UploadError{Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &UploadError{Cause: err}
	}

	endpoint := c.BaseURL() + "/chat/" + url.PathEscape(chatID) + "/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		drain(resp.Body)
		return nil, &UploadError{Status: resp.StatusCode}
	}

	var envelope fileIDsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &UploadError{Status: resp.StatusCode, Cause: err}
	}
	return envelope.FileIDs, nil
}

// =============================================================================
// COMPLETION
// =============================================================================

// SubmitCompletion posts one chat turn and returns the decoded response.
// Absent response fields are returned as nil pointers for the caller to
// default independently.
func (c *Client) SubmitCompletion(ctx context.Context, chatID string, payload CompletionRequest) (*CompletionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &CompletionError{Cause: err}
	}

	endpoint := c.BaseURL() + "/chat/" + url.PathEscape(chatID) + "/respond"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &CompletionError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, &CompletionError{Cause: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		drain(resp.Body)
		return nil, &CompletionError{Status: resp.StatusCode}
	}

	var result CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &CompletionError{Status: resp.StatusCode, Cause: err}
	}
	return &result, nil
}

// =============================================================================
// STARTUP LISTS
// =============================================================================

// ListProjects retrieves the project collection shown in the sidebar.
func (c *Client) ListProjects(ctx context.Context) ([]model.ProjectSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/projects", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		drain(resp.Body)
		return nil, errors.New("list projects: backend returned " + resp.Status)
	}

	var envelope projectsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Projects, nil
}

// ListChats retrieves the chat session collection, in backend order.
func (c *Client) ListChats(ctx context.Context) ([]model.ChatSessionSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/chats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		drain(resp.Body)
		return nil, errors.New("list chats: backend returned " + resp.Status)
	}

	var envelope chatsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Chats, nil
}

// =============================================================================
// INTERNAL
// =============================================================================

// do executes the request and logs the round trip.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("API Request failed: %s %s: %v", req.Method, req.URL.Path, err)
		return nil, err
	}
	log.Printf("API Response: %s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func drain(r io.Reader) {
	io.Copy(io.Discard, r)
}
