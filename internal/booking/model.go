package booking

import (
	"strings"
	"time"

	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/pricing"
)

// AddOnSelection is a priced snapshot of an add-on at submission time.
type AddOnSelection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

// Booking is a submitted project booking/quote request.
type Booking struct {
	ID                  string               `json:"id"`
	Reference           string               `json:"reference"`
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Company             string               `json:"company,omitempty"`
	Phone               string               `json:"phone,omitempty"`
	ServiceID           string               `json:"serviceId"`
	ServiceName         string               `json:"serviceName"`
	ServicePrice        int64                `json:"servicePrice"`
	AddOns              []AddOnSelection     `json:"addOns"`
	Domain              pricing.DomainChoice `json:"domain"`
	PaymentPlan         pricing.PaymentPlan  `json:"paymentPlan"`
	BusinessName        string               `json:"businessName"`
	BusinessDescription string               `json:"businessDescription"`
	MainGoal            string               `json:"mainGoal"`
	EstimatedTotal      int64                `json:"estimatedTotal"`
	DueNow              int64                `json:"dueNow"`
	Region              catalog.Region       `json:"region"`
	CreatedAt           time.Time            `json:"createdAt"`
}

// CreateBookingRequest carries the quote payload assembled by the wizard.
type CreateBookingRequest struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Company             string               `json:"company"`
	Phone               string               `json:"phone"`
	ServiceID           string               `json:"serviceId"`
	ServiceName         string               `json:"serviceName"`
	ServicePrice        int64                `json:"servicePrice"`
	AddOns              []AddOnSelection     `json:"addOns"`
	Domain              pricing.DomainChoice `json:"domain"`
	PaymentPlan         pricing.PaymentPlan  `json:"paymentPlan"`
	BusinessName        string               `json:"businessName"`
	BusinessDescription string               `json:"businessDescription"`
	MainGoal            string               `json:"mainGoal"`
	EstimatedTotal      int64                `json:"estimatedPrice"`
	DueNow              int64                `json:"dueNow"`
	Region              catalog.Region       `json:"region"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.ServiceID) == "" {
		return ErrMissingService
	}
	if !r.Region.Valid() {
		return ErrInvalidRegion
	}
	return nil
}
