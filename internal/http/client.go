package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/handiism/bingpot/internal/model"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "bingpot"

// Client wraps HTTP operations for the Bing archive and image endpoints.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional overall request timeout
//   - Status checking that reports non-2xx answers as model.KindProtocol
//   - JSON decoding and in-memory downloads with progress tracking
//
// Every failure is returned as a *model.Error so callers can branch on its
// Kind. Response bodies are always closed before a method returns.
//
// Example usage:
//
//	client := NewClient("bingpot", 0)
//
//	var archive dto.Archive
//	err := client.GetJSON(ctx, archiveURL, &archive)
//
//	data, err := client.DownloadBytes(ctx, imageURL, func(read, total int64) {
//	    fmt.Printf("%d / %d\n", read, total)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// A zero timeout leaves requests unbounded; cancel through the context
// instead. An empty userAgent falls back to DefaultUserAgent.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: &buf,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// It is -1 when the server did not send one.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *model.Error of kind:
//   - KindTransport if the request or reading the body fails
//   - KindProtocol if the response status is not 2xx
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.DownloadBytes(ctx, url, nil)
}

// GetJSON performs a GET request and decodes the JSON body into dest.
//
// In addition to the errors of Get, a body that does not decode into dest
// is reported as KindDecode.
//
// Example:
//
//	var archive dto.Archive
//	err := client.GetJSON(ctx, "https://www.bing.com/HPImageArchive.aspx?format=js&idx=0&n=1", &archive)
func (c *Client) GetJSON(ctx context.Context, url string, dest any) error {
	resp, err := c.do(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return model.NewError(model.KindDecode, url, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// DownloadBytes downloads a resource and returns the bytes in memory.
//
// onProgress is optional and is called with (bytesRead, totalBytes) as the
// body streams in; totalBytes is -1 when the length is unknown.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, imageURL, nil)
func (c *Client) DownloadBytes(ctx context.Context, url string, onProgress func(read, total int64)) ([]byte, error) {
	resp, err := c.do(ctx, url, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var buf bytes.Buffer
	var writer io.Writer = &buf
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   &buf,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return nil, model.NewError(model.KindTransport, url, fmt.Errorf("read body: %w", err))
	}
	return buf.Bytes(), nil
}

// do sends a GET and checks the status. On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.NewError(model.KindTransport, url, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, model.NewError(model.KindTransport, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, model.StatusError(url, resp.StatusCode)
	}
	return resp, nil
}
