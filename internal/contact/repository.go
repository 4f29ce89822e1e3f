package contact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows admin message listings.
type ListFilter struct {
	Region string
	Limit  int
	Offset int
}

// Repository defines the interface for contact message storage
type Repository interface {
	Create(ctx context.Context, req *CreateMessageRequest) (*Message, error)
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, filter ListFilter) ([]*Message, error)
}

// InMemoryRepository is an in-memory Repository used in development and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	messages map[string]*Message
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		messages: make(map[string]*Message),
	}
}

// Create stores a new message in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := &Message{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Message:   req.Message,
		Region:    req.Region,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.messages[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

// GetByID retrieves a message by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	return m, nil
}

// List returns messages newest first, honoring the filter.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Message, error) {
	r.mu.RLock()
	out := make([]*Message, 0, len(r.messages))
	for _, m := range r.messages {
		if filter.Region != "" && string(m.Region) != filter.Region {
			continue
		}
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Message{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
