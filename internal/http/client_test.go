package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/handiism/bingpot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("hello"))
	}))
	t.Cleanup(server.Close)

	c := NewClient("", 0)
	body, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestClient_NonSuccessStatusIsProtocolError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"not found", http.StatusNotFound},
		{"not modified", http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(server.Close)

			_, err := NewClient("test", time.Second).Get(context.Background(), server.URL)
			require.Error(t, err)

			var perr *model.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, model.KindProtocol, perr.Kind)
			assert.Equal(t, tt.status, perr.Status)
			assert.Equal(t, server.URL, perr.URL)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient("test", time.Second).Get(context.Background(), url)
	assert.ErrorIs(t, err, model.ErrTransport)
}

func TestClient_CancelledContextIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("test", 0).Get(ctx, server.URL)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"bing"}`))
		default:
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}
	}))
	t.Cleanup(server.Close)

	c := NewClient("test", time.Second)

	var payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), server.URL+"/ok", &payload))
	assert.Equal(t, "bing", payload.Name)

	err := c.GetJSON(context.Background(), server.URL+"/html", &payload)
	assert.ErrorIs(t, err, model.ErrDecode)
}

func TestClient_DownloadBytesReportsProgress(t *testing.T) {
	data := make([]byte, 64*1024)
	for i := range data {
		data[i] = byte(i)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	var lastRead, lastTotal int64
	calls := 0
	got, err := NewClient("test", time.Second).DownloadBytes(context.Background(), server.URL, func(read, total int64) {
		calls++
		lastRead, lastTotal = read, total
	})
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Positive(t, calls)
	assert.Equal(t, int64(len(data)), lastRead)
	assert.Equal(t, int64(len(data)), lastTotal)
}
