package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tukang-design/studio-api/internal/booking"
	"github.com/tukang-design/studio-api/internal/contact"
	"github.com/tukang-design/studio-api/internal/pricing"
	"github.com/tukang-design/studio-api/pkg/logging"
)

// Service sends operator notifications for new bookings and contact messages.
type Service struct {
	email      EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewService creates a notification service. Recipients receive every
// operator email.
func NewService(email EmailSender, recipients []string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:      email,
		recipients: recipients,
		logger:     logger,
	}
}

// BookingSubmitted emails the studio about a new booking.
func (s *Service) BookingSubmitted(ctx context.Context, b *booking.Booking) error {
	if s.email == nil || len(s.recipients) == 0 {
		s.logger.Debug("notify: email not configured, skipping booking notification", "reference", b.Reference)
		return nil
	}

	subject := fmt.Sprintf("New booking %s - %s", b.Reference, b.Name)
	return s.broadcast(ctx, subject, bookingBody(b))
}

// ContactReceived emails the studio about a new contact message.
func (s *Service) ContactReceived(ctx context.Context, m *contact.Message) error {
	if s.email == nil || len(s.recipients) == 0 {
		s.logger.Debug("notify: email not configured, skipping contact notification", "id", m.ID)
		return nil
	}

	subject := fmt.Sprintf("New contact message - %s", m.Name)
	return s.broadcast(ctx, subject, contactBody(m))
}

func (s *Service) broadcast(ctx context.Context, subject, body string) error {
	var errs []error
	for _, to := range s.recipients {
		err := s.email.Send(ctx, EmailMessage{
			To:      to,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			s.logger.Error("notify: send failed", "error", err, "to", to)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func bookingBody(b *booking.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reference: %s\n", b.Reference)
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)
	if b.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	}
	if b.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", b.Company)
	}
	fmt.Fprintf(&sb, "\nService: %s (%s)\n", b.ServiceName, pricing.Format(b.ServicePrice, b.Region))
	if len(b.AddOns) > 0 {
		sb.WriteString("Add-ons:\n")
		for _, a := range b.AddOns {
			fmt.Fprintf(&sb, "  - %s (%s)\n", a.Name, pricing.Format(a.Price, b.Region))
		}
	}
	if b.Domain != "" {
		fmt.Fprintf(&sb, "Domain: %s\n", b.Domain)
	}

	schedule := pricing.ApplyPlan(b.EstimatedTotal, b.PaymentPlan)
	fmt.Fprintf(&sb, "\nEstimated total: %s\n", pricing.Format(b.EstimatedTotal, b.Region))
	fmt.Fprintf(&sb, "Payment: %s\n", pricing.Describe(schedule, b.Region))
	fmt.Fprintf(&sb, "Region: %s\n", b.Region)

	fmt.Fprintf(&sb, "\nBusiness: %s\n", b.BusinessName)
	fmt.Fprintf(&sb, "Goal: %s\n", b.MainGoal)
	if b.BusinessDescription != "" {
		fmt.Fprintf(&sb, "About: %s\n", b.BusinessDescription)
	}
	return sb.String()
}

func contactBody(m *contact.Message) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", m.Name)
	fmt.Fprintf(&sb, "Email: %s\n", m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", m.Phone)
	}
	if m.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", m.Company)
	}
	fmt.Fprintf(&sb, "Region: %s\n", m.Region)
	fmt.Fprintf(&sb, "\n%s\n", m.Message)
	return sb.String()
}
