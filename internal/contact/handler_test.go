package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type stubNotifier struct {
	received []*Message
	err      error
}

func (n *stubNotifier) ContactReceived(ctx context.Context, m *Message) error {
	n.received = append(n.received, m)
	return n.err
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", &buf)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCreateMessage(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &stubNotifier{}
	h := NewHandler(repo, notifier, nil, nil)

	w := postJSON(t, h.Create, validRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var m Message
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.ID == "" {
		t.Error("expected an id in the response")
	}
	if len(notifier.received) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notifier.received))
	}
}

func TestCreateMessageValidation(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), nil, nil, nil)

	req := validRequest()
	req.Email = ""
	w := postJSON(t, h.Create, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateMessageNotifierFailureIsLoggedOnly(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &stubNotifier{err: errors.New("smtp down")}
	h := NewHandler(repo, notifier, nil, nil)

	w := postJSON(t, h.Create, validRequest())
	if w.Code != http.StatusCreated {
		t.Errorf("notification failure must not fail the request, got %d", w.Code)
	}
}

func TestListAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	stored, err := repo.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(repo, nil, nil, nil)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/admin/messages?limit=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var resp ListMessagesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Limit != 10 {
		t.Errorf("unexpected list response %+v", resp)
	}

	r := chi.NewRouter()
	r.Get("/admin/messages/{messageID}", h.Get)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/messages/"+stored.ID, nil))
	if w.Code != http.StatusOK {
		t.Errorf("get: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/messages/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing message, got %d", w.Code)
	}
}
