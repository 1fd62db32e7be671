package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStripCodeFences(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n[1, 2]\n```", "[1, 2]"},
		{"fence with payload on first line", "```{\"a\": 1}\n```", `{"a": 1}`},
		{"leading whitespace", "  \n```json\n[]\n```  ", "[]"},
		{"no closing fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		if got := StripCodeFences(tc.input); got != tc.expected {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}

func TestGenerateText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.Query().Get("key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello "},{"text":"world"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", 5*time.Second)
	text, err := client.GenerateText(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Hello world" {
		t.Errorf("expected concatenated parts, got %q", text)
	}
}

func TestGenerateText_NoAPIKey(t *testing.T) {
	client := NewClient("", "", "", 0)
	if client.Enabled() {
		t.Error("expected client without API key to be disabled")
	}
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestGenerateText_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected provider error")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected provider message in error, got %v", err)
	}
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", 5*time.Second)
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Error("expected error on empty candidate list")
	}
}

func TestGenerateText_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", 5*time.Second)
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Error("expected error on non-200 status")
	}
}
