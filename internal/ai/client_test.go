package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/account360/account360-api/internal/contact"
)

func sampleContacts() []*contact.Contact {
	return []*contact.Contact{
		{Name: "Alice Smith", Email: "alice@example.com", Profession: "Software Engineer"},
		{Name: "Bob Jones", Email: "bob@example.com", Profession: "Data Scientist"},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Who is an engineer?", sampleContacts())

	if !strings.HasPrefix(prompt, "You are a contact data assistant. Based on this data:\n") {
		t.Errorf("prompt missing preamble: %q", prompt)
	}
	if !strings.Contains(prompt, "Alice Smith - alice@example.com - Software Engineer\n") {
		t.Errorf("prompt missing contact line: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "\nAnswer this question: Who is an engineer?") {
		t.Errorf("prompt missing question: %q", prompt)
	}
}

func TestClientAsk(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-3.5-turbo" {
			t.Errorf("model = %q", req.Model)
		}
		if req.MaxTokens != 200 {
			t.Errorf("max_tokens = %d, want 200", req.MaxTokens)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Alice Smith") {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "  Alice Smith is the engineer.  "}},
			},
		})
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gpt-3.5-turbo")

	answer, err := client.Ask(context.Background(), "Who is an engineer?", sampleContacts())
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "Alice Smith is the engineer." {
		t.Errorf("answer = %q, want trimmed model output", answer)
	}
}

func TestClientAsk_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gpt-3.5-turbo")

	if _, err := client.Ask(context.Background(), "anything", nil); err == nil {
		t.Error("Ask() should fail when the upstream errors")
	}
}

func TestClientAsk_NoChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", "gpt-3.5-turbo")

	if _, err := client.Ask(context.Background(), "anything", nil); err == nil {
		t.Error("Ask() should fail on an empty choices list")
	}
}
