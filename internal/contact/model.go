package contact

import (
	"strings"
	"time"

	"github.com/tukang-design/studio-api/internal/catalog"
)

// Message is a persisted contact-form submission.
type Message struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Company   string         `json:"company,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Message   string         `json:"message"`
	Region    catalog.Region `json:"region"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CreateMessageRequest is the payload for the public contact endpoint.
type CreateMessageRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Company string         `json:"company"`
	Phone   string         `json:"phone"`
	Message string         `json:"message"`
	Region  catalog.Region `json:"region"`
}

// Validate checks required fields and defaults the region.
func (r *CreateMessageRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMissingMessage
	}
	if r.Region == "" {
		r.Region = catalog.RegionINT
	}
	if !r.Region.Valid() {
		return ErrInvalidRegion
	}
	return nil
}
