// Package api is the HTTP client for the media vault admin API. It wraps
// the JSON envelope every endpoint speaks and turns refusals into errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Entry mirrors the storage entry DTO served by the admin API.
type Entry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	IsDirectory  bool      `json:"is_directory"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	PublicURL    string    `json:"public_url"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one admin API server with a fixed bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// List returns the direct children of a directory.
func (c *Client) List(ctx context.Context, directory string) ([]Entry, error) {
	q := url.Values{"dir": {directory}}
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/files?"+q.Encode(), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FileInfo returns metadata for a single file or directory.
func (c *Client) FileInfo(ctx context.Context, path string) (*Entry, error) {
	q := url.Values{"path": {path}}
	var entry Entry
	if err := c.do(ctx, http.MethodGet, "/api/files/info?"+q.Encode(), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateFolder creates an empty directory under parent.
func (c *Client) CreateFolder(ctx context.Context, parent, name string) (*Entry, error) {
	body := map[string]string{"directory": parent, "name": name}
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/api/files/folders", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteItem removes a file or a directory subtree. A missing target is not
// an error; the server's message says what happened either way.
func (c *Client) DeleteItem(ctx context.Context, path string) (string, error) {
	q := url.Values{"path": {path}}
	env, err := c.request(ctx, http.MethodDelete, "/api/files/item?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// RenameItem moves a file or directory subtree to a new path.
func (c *Client) RenameItem(ctx context.Context, oldPath, newPath string) (*Entry, error) {
	body := map[string]string{"old_path": oldPath, "new_path": newPath}
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/api/files/rename", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UploadTicket requests a one-time signed PUT URL for a new file. Satisfies
// uploader.TicketSource.
func (c *Client) UploadTicket(ctx context.Context, filename, contentType, directory string) (string, string, error) {
	body := map[string]string{
		"filename":     filename,
		"content_type": contentType,
		"directory":    directory,
	}
	var ticket struct {
		URL  string `json:"url"`
		Path string `json:"path"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/files/upload-url", body, &ticket); err != nil {
		return "", "", err
	}
	return ticket.URL, ticket.Path, nil
}

// DownloadURL resolves a retrieval URL for a file.
func (c *Client) DownloadURL(ctx context.Context, path string, expires time.Duration, forceDownload bool) (string, error) {
	q := url.Values{"path": {path}}
	if expires > 0 {
		q.Set("expires", expires.String())
	}
	if forceDownload {
		q.Set("force", "true")
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/files/download-url?"+q.Encode(), nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// do runs a request and unmarshals the envelope's data into out. Envelope
// refusals (success=false) become errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	env, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("server refused: %s", env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
	}
	return &env, nil
}
