package booking

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows admin booking listings.
type ListFilter struct {
	Region string
	Limit  int
	Offset int
}

// Repository defines the interface for booking storage
type Repository interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter ListFilter) ([]*Booking, error)
}

// newReference builds a short human-readable booking reference,
// e.g. "TKG-20260831-4821".
func newReference(now time.Time) string {
	return fmt.Sprintf("TKG-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// InMemoryRepository is an in-memory Repository used in development and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		bookings: make(map[string]*Booking),
	}
}

// Create stores a new booking in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &Booking{
		ID:                  uuid.New().String(),
		Reference:           newReference(now),
		Name:                req.Name,
		Email:               req.Email,
		Company:             req.Company,
		Phone:               req.Phone,
		ServiceID:           req.ServiceID,
		ServiceName:         req.ServiceName,
		ServicePrice:        req.ServicePrice,
		AddOns:              append([]AddOnSelection(nil), req.AddOns...),
		Domain:              req.Domain,
		PaymentPlan:         req.PaymentPlan,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		MainGoal:            req.MainGoal,
		EstimatedTotal:      req.EstimatedTotal,
		DueNow:              req.DueNow,
		Region:              req.Region,
		CreatedAt:           now,
	}

	r.mu.Lock()
	r.bookings[b.ID] = b
	r.mu.Unlock()

	return b, nil
}

// GetByID retrieves a booking by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// List returns bookings newest first, honoring the filter.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	r.mu.RLock()
	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if filter.Region != "" && string(b.Region) != filter.Region {
			continue
		}
		out = append(out, b)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Booking{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
