package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tukang-design/studio-api/internal/booking"
	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/contact"
	"github.com/tukang-design/studio-api/internal/pricing"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func sampleBooking() *booking.Booking {
	return &booking.Booking{
		ID:             "b-1",
		Reference:      "TKG-20260831-0042",
		Name:           "Aina Rahman",
		Email:          "aina@example.com",
		ServiceID:      "business",
		ServiceName:    "Business Website",
		ServicePrice:   4500,
		AddOns:         []booking.AddOnSelection{{ID: "seo", Name: "SEO Starter", Category: "Growth", Price: 900}},
		Domain:         pricing.DomainNew,
		PaymentPlan:    pricing.PlanFull,
		BusinessName:   "Kopi Corner",
		MainGoal:       "generate-leads",
		EstimatedTotal: 5480,
		Region:         catalog.RegionMY,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestBookingSubmittedEmailsAllRecipients(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, []string{"studio@example.com", "ops@example.com"}, nil)

	if err := svc.BookingSubmitted(context.Background(), sampleBooking()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if !strings.Contains(msg.Subject, "TKG-20260831-0042") {
		t.Errorf("subject missing reference: %q", msg.Subject)
	}
	for _, want := range []string{"Aina Rahman", "Business Website", "RM4,500", "RM5,480", "SEO Starter", "Kopi Corner"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestContactReceivedEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, []string{"studio@example.com"}, nil)

	m := &contact.Message{
		ID:      "m-1",
		Name:    "Wei Lin",
		Email:   "wei@example.com",
		Message: "Do you build portfolio sites?",
		Region:  catalog.RegionSG,
	}
	if err := svc.ContactReceived(context.Background(), m); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Body, "Do you build portfolio sites?") {
		t.Error("body missing the message text")
	}
}

func TestUnconfiguredServiceIsNoOp(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if err := svc.BookingSubmitted(context.Background(), sampleBooking()); err != nil {
		t.Errorf("expected nil without a sender, got %v", err)
	}
	if err := svc.ContactReceived(context.Background(), &contact.Message{}); err != nil {
		t.Errorf("expected nil without a sender, got %v", err)
	}
}

func TestSendFailureIsReported(t *testing.T) {
	sender := &recordingSender{err: errors.New("rate limited")}
	svc := NewService(sender, []string{"a@example.com", "b@example.com"}, nil)

	err := svc.BookingSubmitted(context.Background(), sampleBooking())
	if err == nil {
		t.Fatal("expected an error when sends fail")
	}
	// Failures on one recipient must not skip the rest.
	if len(sender.sent) != 2 {
		t.Errorf("expected both sends attempted, got %d", len(sender.sent))
	}
}
