package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	if args != nil {
		request.Params.Arguments = args
	}
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func newTestServer(t *testing.T, baseURL string, entries []Endpoint) *DocsMCPServer {
	t.Helper()
	client := NewDocsClient(baseURL, testTable(t, entries))
	return NewDocsMCPServer(client, zerolog.Nop())
}

func TestGetElementAPI_ArgumentValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "https://docs.example.dev", []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
	})

	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "missing arguments object",
			args:     nil,
			expected: "invalid: missing arguments",
		},
		{
			name:     "missing element field",
			args:     map[string]interface{}{},
			expected: "invalid: missing required argument: element",
		},
		{
			name:     "blank element",
			args:     map[string]interface{}{"element": ""},
			expected: "invalid: missing required argument: element",
		},
		{
			name:     "non-string element",
			args:     map[string]interface{}{"element": 42},
			expected: "invalid: missing required argument: element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := server.handleGetElementAPI(context.Background(), callToolRequest(toolGetElementAPI, tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.expected, resultText(t, result))
		})
	}
}

func TestGetElementAPI_Success(t *testing.T) {
	t.Parallel()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div class="md-content"><h1>Slider</h1><p>A slider.</p></div>`))
	}))
	defer mockServer.Close()

	server := newTestServer(t, mockServer.URL, []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
	})

	result, err := server.handleGetElementAPI(context.Background(),
		callToolRequest(toolGetElementAPI, map[string]interface{}{"element": "slider"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	payload := resultText(t, result)
	assert.Contains(t, payload, `"title": "Slider"`)
	assert.Contains(t, payload, `"description": "A slider."`)
	assert.Contains(t, payload, `"parameters": []`)
	assert.Contains(t, payload, `"examples": []`)
}

func TestGetElementAPI_UnknownElement(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "https://docs.example.dev", []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
		{Name: "card", Path: "/layouts/card/"},
	})

	result, err := server.handleGetElementAPI(context.Background(),
		callToolRequest(toolGetElementAPI, map[string]interface{}{"element": "knob"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	payload := resultText(t, result)
	assert.True(t, strings.HasPrefix(payload, "invalid: unknown element"), payload)
	assert.Contains(t, payload, "slider")
	assert.Contains(t, payload, "card")
}

func TestSearchAPI_ArgumentValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, "https://docs.example.dev", []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
	})

	result, err := server.handleSearchAPI(context.Background(), callToolRequest(toolSearchAPI, map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "invalid: missing required argument: query", resultText(t, result))
}

func TestSearchAPI_Success(t *testing.T) {
	t.Parallel()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inputs/slider/":
			w.Write([]byte(`<div class="md-content"><h1>Slider</h1><p>Drag to pick a value.</p></div>`))
		case "/layouts/card/":
			http.Error(w, "boom", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer mockServer.Close()

	server := newTestServer(t, mockServer.URL, []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
		{Name: "card", Path: "/layouts/card/"},
	})

	result, err := server.handleSearchAPI(context.Background(),
		callToolRequest(toolSearchAPI, map[string]interface{}{"query": "slider"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	payload := resultText(t, result)
	assert.Contains(t, payload, `"title": "Slider"`)
	assert.NotContains(t, payload, "card")
}

func TestSearchAPI_NoMatches(t *testing.T) {
	t.Parallel()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div class="md-content"><h1>Slider</h1></div>`))
	}))
	defer mockServer.Close()

	server := newTestServer(t, mockServer.URL, []Endpoint{
		{Name: "slider", Path: "/inputs/slider/"},
	})

	result, err := server.handleSearchAPI(context.Background(),
		callToolRequest(toolSearchAPI, map[string]interface{}{"query": "zzz-no-such-text"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "[]", resultText(t, result))
}
