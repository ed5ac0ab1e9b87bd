package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/logging"
)

type memStore struct {
	contacts []*Contact
}

func (s *memStore) List(ctx context.Context, filter ListFilter) ([]*Contact, error) {
	var out []*Contact
	// Newest first
	for i := len(s.contacts) - 1; i >= 0; i-- {
		c := s.contacts[i]
		if filter.Profession != "" && c.Profession != filter.Profession {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle) {
				continue
			}
		}
		out = append(out, c)
	}
	if out == nil {
		out = []*Contact{}
	}
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	for _, c := range s.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memStore) Create(ctx context.Context, c *Contact) (*Contact, error) {
	stored := *c
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.contacts = append(s.contacts, &stored)
	return &stored, nil
}

func (s *memStore) Update(ctx context.Context, id uuid.UUID, c *Contact) (*Contact, error) {
	for _, existing := range s.contacts {
		if existing.ID == id {
			existing.Name = c.Name
			existing.Email = c.Email
			existing.Contact = c.Contact
			existing.Profession = c.Profession
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memStore) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestRouter() (*chi.Mux, *memStore) {
	store := &memStore{}
	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	h := NewHandler(store, logger)

	r := chi.NewRouter()
	r.Get("/api/contacts", h.List)
	r.Post("/api/contacts", h.Create)
	r.Get("/api/contacts/{id}", h.Get)
	r.Put("/api/contacts/{id}", h.Update)
	r.Delete("/api/contacts/{id}", h.Delete)
	return r, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validRequest() Request {
	return Request{
		Name:       "Alice Smith",
		Email:      "alice@example.com",
		Contact:    "9876543210",
		Profession: "Software Engineer",
	}
}

func TestCreateContact(t *testing.T) {
	router, store := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/contacts", validRequest())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("created contact should have an ID")
	}
	if len(store.contacts) != 1 {
		t.Errorf("stored contacts = %d, want 1", len(store.contacts))
	}
}

func TestCreateContact_Validation(t *testing.T) {
	router, store := newTestRouter()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.Name = "" }},
		{"name with digits", func(r *Request) { r.Name = "Alice 42" }},
		{"malformed email", func(r *Request) { r.Email = "not-an-email" }},
		{"phone too short", func(r *Request) { r.Contact = "12345" }},
		{"phone too long", func(r *Request) { r.Contact = "98765432100" }},
		{"phone with letters", func(r *Request) { r.Contact = "98765abcde" }},
		{"phone with sign", func(r *Request) { r.Contact = "+123456789" }},
		{"phone with minus", func(r *Request) { r.Contact = "-123456789" }},
		{"phone with decimal point", func(r *Request) { r.Contact = "12345.6789" }},
		{"unknown profession", func(r *Request) { r.Profession = "Astronaut" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			rec := doJSON(t, router, http.MethodPost, "/api/contacts", req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}

	// Nothing invalid should ever reach storage
	if len(store.contacts) != 0 {
		t.Errorf("stored contacts = %d, want 0", len(store.contacts))
	}
}

func TestListContacts(t *testing.T) {
	router, _ := newTestRouter()

	first := validRequest()
	second := validRequest()
	second.Name = "Bob Jones"
	second.Email = "bob@example.com"
	second.Profession = "Data Scientist"

	doJSON(t, router, http.MethodPost, "/api/contacts", first)
	doJSON(t, router, http.MethodPost, "/api/contacts", second)

	rec := doJSON(t, router, http.MethodGet, "/api/contacts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var contacts []*Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &contacts); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2", len(contacts))
	}
	if contacts[0].Name != "Bob Jones" {
		t.Errorf("first contact = %q, want newest first", contacts[0].Name)
	}

	// Profession filter
	rec = doJSON(t, router, http.MethodGet, "/api/contacts?profession=Data+Scientist", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &contacts); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Profession != "Data Scientist" {
		t.Errorf("profession filter returned %d contacts", len(contacts))
	}

	// Search filter
	rec = doJSON(t, router, http.MethodGet, "/api/contacts?search=alice", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &contacts); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Email != "alice@example.com" {
		t.Errorf("search filter returned %d contacts", len(contacts))
	}
}

func TestUpdateContact(t *testing.T) {
	router, store := newTestRouter()

	doJSON(t, router, http.MethodPost, "/api/contacts", validRequest())
	id := store.contacts[0].ID

	updated := validRequest()
	updated.Profession = "Product Manager"

	rec := doJSON(t, router, http.MethodPut, "/api/contacts/"+id.String(), updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if store.contacts[0].Profession != "Product Manager" {
		t.Errorf("profession = %q, want updated value", store.contacts[0].Profession)
	}

	// Unknown ID
	rec = doJSON(t, router, http.MethodPut, "/api/contacts/"+uuid.NewString(), updated)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteContact(t *testing.T) {
	router, store := newTestRouter()

	doJSON(t, router, http.MethodPost, "/api/contacts", validRequest())
	id := store.contacts[0].ID

	rec := doJSON(t, router, http.MethodDelete, "/api/contacts/"+id.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.contacts) != 0 {
		t.Errorf("stored contacts = %d, want 0", len(store.contacts))
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/contacts/"+id.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Malformed IDs read as not found, not server errors
	rec = doJSON(t, router, http.MethodDelete, "/api/contacts/not-a-uuid", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed id status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
