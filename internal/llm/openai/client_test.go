package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"resume-builder/internal/llm"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func fakeServer(t *testing.T, reply string, status int) (*sync.Mutex, *map[string]any) {
	t.Helper()
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var mu sync.Mutex
	lastBody := map[string]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	apiURL = server.URL
	return &mu, &lastBody
}

func TestCompletePlainText(t *testing.T) {
	mu, body := fakeServer(t, `{"choices":[{"message":{"content":"  Led a team of 12.  "}}]}`, http.StatusOK)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got, err := client.Complete(context.Background(), "rewrite this", llm.CompleteOptions{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Led a team of 12." {
		t.Fatalf("unexpected content %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := (*body)["response_format"]; ok {
		t.Fatalf("plain completions should not set response_format")
	}
	if _, ok := (*body)["temperature"]; !ok {
		t.Fatalf("expected temperature for non gpt-5 model")
	}
}

func TestCompleteJSONUnwrapsItems(t *testing.T) {
	mu, body := fakeServer(t, `{"choices":[{"message":{"content":"{\"items\":[\"Go\",\"SQL\"]}"}}]}`, http.StatusOK)

	client, _ := NewClient("test-key", "gpt-5-mini")
	got, err := client.Complete(context.Background(), "skills as JSON", llm.CompleteOptions{JSON: true})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `["Go","SQL"]` {
		t.Fatalf("unexpected content %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	format, _ := (*body)["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", (*body)["response_format"])
	}
	if _, ok := (*body)["temperature"]; ok {
		t.Fatalf("expected temperature to be omitted for gpt-5 models")
	}
}

func TestCompleteSurfacesHTTPErrors(t *testing.T) {
	fakeServer(t, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, http.StatusUnauthorized)

	client, _ := NewClient("test-key", "gpt-4o")
	if _, err := client.Complete(context.Background(), "hi", llm.CompleteOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewClientRequiresConfig(t *testing.T) {
	if _, err := NewClient("", "gpt-4o"); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := NewClient("k", " "); err == nil {
		t.Fatalf("expected missing model error")
	}
}
