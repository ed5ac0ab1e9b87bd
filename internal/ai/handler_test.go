package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/account360/account360-api/internal/contact"
	"github.com/account360/account360-api/internal/logging"
)

type staticLister struct {
	contacts []*contact.Contact
	err      error
}

func (l *staticLister) List(ctx context.Context, filter contact.ListFilter) ([]*contact.Contact, error) {
	return l.contacts, l.err
}

func newTestHandler(t *testing.T, lister ContactLister) (*Handler, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "There are two contacts."}},
			},
		})
	}))
	t.Cleanup(upstream.Close)

	client := NewClient(upstream.URL, "test-key", "gpt-3.5-turbo")
	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	return NewHandler(client, lister, logger), upstream
}

func postAsk(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/ai/ask", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Ask(rec, req)
	return rec
}

func TestAsk(t *testing.T) {
	h, _ := newTestHandler(t, &staticLister{contacts: []*contact.Contact{
		{Name: "Alice Smith", Email: "alice@example.com", Profession: "Software Engineer"},
	}})

	rec := postAsk(t, h, `{"question":"How many contacts are there?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Answer != "There are two contacts." {
		t.Errorf("answer = %q", resp.Answer)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	h, _ := newTestHandler(t, &staticLister{})

	rec := postAsk(t, h, `{"question":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAsk_BadBody(t *testing.T) {
	h, _ := newTestHandler(t, &staticLister{})

	rec := postAsk(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAsk_ListerFailure(t *testing.T) {
	h, _ := newTestHandler(t, &staticLister{err: context.DeadlineExceeded})

	rec := postAsk(t, h, `{"question":"anything"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
