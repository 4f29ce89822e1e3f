package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tukang-design/studio-api/internal/booking"
	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/observability/metrics"
	"github.com/tukang-design/studio-api/internal/pricing"
	"github.com/tukang-design/studio-api/internal/region"
	"github.com/tukang-design/studio-api/pkg/logging"
)

var tracer = otel.Tracer("studio-api/wizard")

// RegionResolver resolves a pricing region from request hints.
type RegionResolver interface {
	Resolve(ctx context.Context, hints region.Hints) catalog.Region
}

// Notifier tells the studio about a submitted booking. Implementations must
// not block submission on failure.
type Notifier interface {
	BookingSubmitted(ctx context.Context, b *booking.Booking) error
}

// Handler serves the booking wizard endpoints.
type Handler struct {
	store         Store
	bookings      booking.Repository
	resolver      RegionResolver
	notifier      Notifier
	metrics       *metrics.BookingMetrics
	logger        *logging.Logger
	calendarURL   string
	submitTimeout time.Duration
}

// HandlerConfig wires the wizard handler's collaborators.
type HandlerConfig struct {
	Store         Store
	Bookings      booking.Repository
	Resolver      RegionResolver
	Notifier      Notifier
	Metrics       *metrics.BookingMetrics
	Logger        *logging.Logger
	CalendarURL   string
	SubmitTimeout time.Duration
}

// NewHandler creates a new wizard handler
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.SubmitTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		store:         cfg.Store,
		bookings:      cfg.Bookings,
		resolver:      cfg.Resolver,
		notifier:      cfg.Notifier,
		metrics:       cfg.Metrics,
		logger:        logger,
		calendarURL:   cfg.CalendarURL,
		submitTimeout: timeout,
	}
}

// Routes returns the wizard subrouter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)
		r.Post("/service", h.SelectService)
		r.Post("/configuration", h.SetConfiguration)
		r.Post("/addons/{addOnID}/toggle", h.ToggleAddOn)
		r.Put("/brief", h.SetBrief)
		r.Put("/contact", h.SetContact)
		r.Put("/region", h.OverrideRegion)
		r.Post("/advance", h.Advance)
		r.Post("/back", h.Back)
		r.Post("/discovery", h.EnterDiscovery)
		r.Post("/submit", h.Submit)
	})
	return r
}

// EstimateView is the current quote, recomputed on every response.
type EstimateView struct {
	Total          int64            `json:"total"`
	TotalFormatted string           `json:"totalFormatted"`
	DueNow         int64            `json:"dueNow"`
	DueNowFmt      string           `json:"dueNowFormatted"`
	DueLater       []int64          `json:"dueLater,omitempty"`
	Plan           pricing.Schedule `json:"schedule"`
}

// SessionResponse is the wizard state returned to the client.
type SessionResponse struct {
	*Session
	Estimate    EstimateView `json:"estimate"`
	CalendarURL string       `json:"calendarUrl,omitempty"`
}

func (h *Handler) view(s *Session) SessionResponse {
	svc := catalog.ServiceByID(s.ServiceID)
	total := pricing.Total(svc, s.Region, s.Domain, s.AddOns)
	schedule := pricing.ApplyPlan(total, s.PaymentPlan)

	resp := SessionResponse{
		Session: s,
		Estimate: EstimateView{
			Total:          total,
			TotalFormatted: pricing.Format(total, s.Region),
			DueNow:         schedule.DueNow,
			DueNowFmt:      pricing.Format(schedule.DueNow, s.Region),
			DueLater:       schedule.DueLater,
			Plan:           schedule,
		},
	}
	if s.Step == StepDiscovery {
		resp.CalendarURL = h.calendarURL
	}
	return resp
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, s *Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(h.view(s))
}

// validationErrs are the visitor-correctable failures; anything outside this
// list (and the not-found/conflict sentinels) is an internal failure.
var validationErrs = []error{
	ErrIllegalTransition,
	ErrNoServiceSelected,
	ErrUnknownService,
	ErrUnknownAddOn,
	ErrConfigurationIncomplete,
	ErrBriefIncomplete,
	ErrInvalidMainGoal,
	ErrContactIncomplete,
	ErrInvalidChoice,
	ErrInvalidRegion,
}

func isValidationErr(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, ErrSubmissionInProgress), errors.Is(err, ErrAlreadySubmitted):
		status = http.StatusConflict
		msg = err.Error()
	case isValidationErr(err):
		status = http.StatusBadRequest
		msg = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// CreateSession handles POST /wizard/sessions. Region detection runs in the
// background and is applied only while the session has no manual choice.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := NewSession(uuid.NewString())
	if err := h.store.Create(r.Context(), s); err != nil {
		h.logger.Error("failed to create session", "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	hints := region.Hints{
		IP:             clientIP(r),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Timezone:       r.Header.Get("X-Timezone"),
	}
	if h.resolver != nil {
		go h.detectRegion(s.ID, hints)
	}

	h.logger.Info("wizard session created", "session_id", s.ID)
	h.writeSession(w, http.StatusCreated, s)
}

// detectRegion runs detection off the request goroutine and applies the
// result unless the visitor already overrode the region or the session is
// gone (which simply discards the result).
func (h *Handler) detectRegion(sessionID string, hints region.Hints) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	detected := h.resolver.Resolve(ctx, hints)
	_, err := h.store.Update(ctx, sessionID, func(s *Session) error {
		s.ApplyDetectedRegion(detected)
		return nil
	})
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		h.logger.Warn("failed to apply detected region", "error", err, "session_id", sessionID)
	}
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from proxy headers.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// GetSession handles GET /wizard/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, s)
}

// DeleteSession handles DELETE /wizard/sessions/{sessionID} (restart).
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, fn func(*Session) error) {
	s, err := h.store.Update(r.Context(), chi.URLParam(r, "sessionID"), fn)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, s)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// SelectService handles POST /wizard/sessions/{sessionID}/service
func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, func(s *Session) error {
		return s.SelectService(req.ServiceID)
	})
}

// SetConfiguration handles POST /wizard/sessions/{sessionID}/configuration
func (h *Handler) SetConfiguration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domain      pricing.DomainChoice `json:"domain"`
		PaymentPlan pricing.PaymentPlan  `json:"paymentPlan"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, func(s *Session) error {
		return s.SetConfiguration(req.Domain, req.PaymentPlan)
	})
}

// ToggleAddOn handles POST /wizard/sessions/{sessionID}/addons/{addOnID}/toggle
func (h *Handler) ToggleAddOn(w http.ResponseWriter, r *http.Request) {
	addOnID := chi.URLParam(r, "addOnID")
	h.update(w, r, func(s *Session) error {
		return s.ToggleAddOn(addOnID)
	})
}

// SetBrief handles PUT /wizard/sessions/{sessionID}/brief
func (h *Handler) SetBrief(w http.ResponseWriter, r *http.Request) {
	var req Brief
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, func(s *Session) error {
		return s.SetBrief(req)
	})
}

// SetContact handles PUT /wizard/sessions/{sessionID}/contact
func (h *Handler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req ContactInfo
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, func(s *Session) error {
		s.SetContact(req)
		return nil
	})
}

// OverrideRegion handles PUT /wizard/sessions/{sessionID}/region
func (h *Handler) OverrideRegion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Region catalog.Region `json:"region"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, func(s *Session) error {
		return s.OverrideRegion(req.Region)
	})
}

// Advance handles POST /wizard/sessions/{sessionID}/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *Session) error {
		return s.Advance()
	})
}

// Back handles POST /wizard/sessions/{sessionID}/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *Session) error {
		return s.Back()
	})
}

// EnterDiscovery handles POST /wizard/sessions/{sessionID}/discovery
func (h *Handler) EnterDiscovery(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(s *Session) error {
		return s.EnterDiscovery()
	})
}

// SubmitResponse confirms a persisted booking.
type SubmitResponse struct {
	Reference string           `json:"reference"`
	Booking   *booking.Booking `json:"booking"`
	Session   SessionResponse  `json:"session"`
}

// Submit handles POST /wizard/sessions/{sessionID}/submit. On failure the
// session stays on the contact step with all entered data intact; the
// client may retry.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ctx, span := tracer.Start(r.Context(), "wizard.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	// Claim the submission slot; rapid repeated clicks get a 409.
	snapshot, err := h.store.Update(ctx, sessionID, func(s *Session) error {
		if err := s.CanSubmit(); err != nil {
			return err
		}
		if s.Submitting {
			return ErrSubmissionInProgress
		}
		s.Submitting = true
		return nil
	})
	if err != nil {
		h.metrics.ObserveSubmission("rejected")
		writeError(w, err)
		return
	}

	submitCtx, cancel := context.WithTimeout(ctx, h.submitTimeout)
	defer cancel()

	b, err := h.bookings.Create(submitCtx, buildBookingRequest(snapshot))
	if err != nil {
		h.metrics.ObserveSubmission("error")
		h.logger.Error("booking submission failed", "error", err, "session_id", sessionID)
		h.releaseSubmission(sessionID)

		status := http.StatusBadGateway
		message := "submission failed, please try again"
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
			message = "submission timed out, please try again"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"error": message, "retryable": true})
		return
	}

	final, err := h.store.Update(ctx, sessionID, func(s *Session) error {
		return s.CompleteSubmission(b.Reference)
	})
	if err != nil {
		// The booking is persisted; the session just failed to advance.
		h.logger.Error("failed to finalize session", "error", err, "session_id", sessionID)
		final = snapshot
	}

	h.metrics.ObserveSubmission("success")
	h.logger.Info("booking submitted",
		"session_id", sessionID,
		"reference", b.Reference,
		"service", b.ServiceID,
		"region", b.Region,
		"estimated_total", b.EstimatedTotal,
	)

	if h.notifier != nil {
		if err := h.notifier.BookingSubmitted(ctx, b); err != nil {
			h.logger.Error("booking notification failed", "error", err, "reference", b.Reference)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitResponse{
		Reference: b.Reference,
		Booking:   b,
		Session:   h.view(final),
	})
}

func (h *Handler) releaseSubmission(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := h.store.Update(ctx, sessionID, func(s *Session) error {
		s.Submitting = false
		return nil
	}); err != nil {
		h.logger.Warn("failed to release submission flag", "error", err, "session_id", sessionID)
	}
}

// buildBookingRequest snapshots the session into the quote payload.
func buildBookingRequest(s *Session) *booking.CreateBookingRequest {
	svc := catalog.ServiceByID(s.ServiceID)
	total := pricing.Total(svc, s.Region, s.Domain, s.AddOns)
	schedule := pricing.ApplyPlan(total, s.PaymentPlan)

	selections := make([]booking.AddOnSelection, 0, len(s.AddOns))
	for _, id := range s.AddOns {
		if addOn := catalog.AddOnByID(id); addOn != nil {
			selections = append(selections, booking.AddOnSelection{
				ID:       addOn.ID,
				Name:     addOn.Name,
				Category: addOn.Category,
				Price:    pricing.AddOnPrice(addOn, s.Region),
			})
		}
	}

	req := &booking.CreateBookingRequest{
		Name:                s.Contact.Name,
		Email:               s.Contact.Email,
		Company:             s.Contact.Company,
		Phone:               s.Contact.Phone,
		AddOns:              selections,
		Domain:              s.Domain,
		PaymentPlan:         s.PaymentPlan,
		BusinessName:        s.Brief.BusinessName,
		BusinessDescription: s.Brief.BusinessDescription,
		MainGoal:            s.Brief.MainGoal,
		EstimatedTotal:      total,
		DueNow:              schedule.DueNow,
		Region:              s.Region,
	}
	if svc != nil {
		req.ServiceID = svc.ID
		req.ServiceName = svc.Name
		req.ServicePrice = pricing.ServicePrice(svc, s.Region)
	}
	return req
}
