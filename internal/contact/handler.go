package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tukang-design/studio-api/internal/observability/metrics"
	"github.com/tukang-design/studio-api/pkg/logging"
)

// Notifier tells the studio about a received contact message. Implementations
// must not block the request on failure.
type Notifier interface {
	ContactReceived(ctx context.Context, m *Message) error
}

// Handler handles HTTP requests for contact messages
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewHandler creates a new contact handler
func NewHandler(repo Repository, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Create handles POST /contact requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			h.metrics.ObserveContact("rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.metrics.ObserveContact("error")
		h.logger.Error("failed to store contact message", "error", err)
		http.Error(w, "failed to submit message", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveContact("success")
	h.logger.Info("contact message received", "id", m.ID, "region", m.Region)

	if h.notifier != nil {
		if err := h.notifier.ContactReceived(r.Context(), m); err != nil {
			h.logger.Error("contact notification failed", "error", err, "id", m.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingMessage) ||
		errors.Is(err, ErrInvalidRegion)
}

// ListMessagesResponse is the response for listing contact messages
type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
	Count    int        `json:"count"`
	Offset   int        `json:"offset"`
	Limit    int        `json:"limit"`
}

// List handles GET /admin/messages requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	filter.Region = r.URL.Query().Get("region")

	messages, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list contact messages", "error", err)
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListMessagesResponse{
		Messages: messages,
		Count:    len(messages),
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	})
}

// Get handles GET /admin/messages/{messageID} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "messageID"))
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get contact message", "error", err)
		http.Error(w, "failed to get message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}
