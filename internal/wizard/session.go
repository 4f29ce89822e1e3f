package wizard

import (
	"strings"
	"time"

	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/pricing"
)

// RegionSource records how a session's region was decided. A manual choice
// always wins over a detection result that arrives later.
type RegionSource string

const (
	// RegionSourcePending means auto-detection has not resolved yet.
	RegionSourcePending RegionSource = "pending"
	// RegionSourceDetected means auto-detection set the region.
	RegionSourceDetected RegionSource = "detected"
	// RegionSourceManual means the visitor picked the region themselves.
	RegionSourceManual RegionSource = "manual"
)

// Brief holds the project brief fields.
type Brief struct {
	BusinessName        string `json:"businessName"`
	BusinessDescription string `json:"businessDescription"`
	MainGoal            string `json:"mainGoal"`
}

// ContactInfo holds the checkout contact fields.
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// Session is the aggregate state of one booking wizard run. It is created
// fresh per visitor session and mutated only through its methods.
type Session struct {
	ID           string               `json:"id"`
	Step         Step                 `json:"step"`
	ServiceID    string               `json:"serviceId"`
	Domain       pricing.DomainChoice `json:"domain"`
	PaymentPlan  pricing.PaymentPlan  `json:"paymentPlan"`
	Brief        Brief                `json:"brief"`
	Contact      ContactInfo          `json:"contact"`
	AddOns       []string             `json:"addOns"`
	Region       catalog.Region       `json:"region"`
	RegionSource RegionSource         `json:"regionSource"`
	Submitting   bool                 `json:"submitting"`
	BookingRef   string               `json:"bookingRef,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// NewSession creates a session at the starter step with the international
// default region, awaiting detection.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		Step:         StepStarter,
		Region:       catalog.RegionINT,
		RegionSource: RegionSourcePending,
		AddOns:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SelectService sets the chosen package. Selecting a new service replaces
// the previous one; only one package can be selected at a time.
func (s *Session) SelectService(serviceID string) error {
	if catalog.ServiceByID(serviceID) == nil {
		return ErrUnknownService
	}
	s.ServiceID = serviceID
	s.touch()
	return nil
}

// SetConfiguration records the domain and payment plan choices and keeps
// the domain add-on membership in sync: a new domain always implies the
// add-on, an existing domain always removes it. Re-applying the same
// choice is a no-op.
func (s *Session) SetConfiguration(domain pricing.DomainChoice, plan pricing.PaymentPlan) error {
	if !domain.Valid() || !plan.Valid() {
		return ErrInvalidChoice
	}
	if domain != pricing.DomainUnset {
		s.Domain = domain
		s.syncDomainAddOn()
	}
	if plan != pricing.PlanUnset {
		s.PaymentPlan = plan
	}
	s.touch()
	return nil
}

func (s *Session) syncDomainAddOn() {
	switch s.Domain {
	case pricing.DomainNew:
		s.addAddOn(catalog.DomainAddOnID)
	case pricing.DomainExisting:
		s.removeAddOn(catalog.DomainAddOnID)
	}
}

// ToggleAddOn flips membership of an add-on; toggling twice restores the
// original state. Toggling the domain add-on also updates the domain
// choice so the sync stays bidirectional.
func (s *Session) ToggleAddOn(addOnID string) error {
	if catalog.AddOnByID(addOnID) == nil {
		return ErrUnknownAddOn
	}
	if s.HasAddOn(addOnID) {
		s.removeAddOn(addOnID)
		if addOnID == catalog.DomainAddOnID {
			s.Domain = pricing.DomainExisting
		}
	} else {
		s.addAddOn(addOnID)
		if addOnID == catalog.DomainAddOnID {
			s.Domain = pricing.DomainNew
		}
	}
	s.touch()
	return nil
}

// HasAddOn reports add-on membership.
func (s *Session) HasAddOn(addOnID string) bool {
	for _, id := range s.AddOns {
		if id == addOnID {
			return true
		}
	}
	return false
}

func (s *Session) addAddOn(addOnID string) {
	if !s.HasAddOn(addOnID) {
		s.AddOns = append(s.AddOns, addOnID)
	}
}

func (s *Session) removeAddOn(addOnID string) {
	out := s.AddOns[:0]
	for _, id := range s.AddOns {
		if id != addOnID {
			out = append(out, id)
		}
	}
	s.AddOns = out
}

// SetBrief records the project brief fields. Partial input is accepted;
// completeness is enforced when advancing.
func (s *Session) SetBrief(b Brief) error {
	if b.MainGoal != "" && !catalog.ValidMainGoal(b.MainGoal) {
		return ErrInvalidMainGoal
	}
	s.Brief = b
	s.touch()
	return nil
}

// SetContact records the checkout contact fields.
func (s *Session) SetContact(c ContactInfo) {
	s.Contact = c
	s.touch()
}

// Advance moves one step forward after the current step's gate passes.
// The state is left unchanged when the gate fails.
func (s *Session) Advance() error {
	switch s.Step {
	case StepStarter:
		svc := catalog.ServiceByID(s.ServiceID)
		if svc == nil {
			return ErrNoServiceSelected
		}
		// Advanced/custom requests skip the self-serve flow entirely.
		if svc.Advanced {
			return s.EnterDiscovery()
		}
	case StepConfigurator:
		if s.Domain == pricing.DomainUnset || s.PaymentPlan == pricing.PlanUnset {
			return ErrConfigurationIncomplete
		}
	case StepBrief:
		if strings.TrimSpace(s.Brief.BusinessName) == "" ||
			strings.TrimSpace(s.Brief.BusinessDescription) == "" {
			return ErrBriefIncomplete
		}
		if !catalog.ValidMainGoal(s.Brief.MainGoal) {
			return ErrBriefIncomplete
		}
	case StepContact:
		// Contact exits through Submit, never through Advance.
		return ErrIllegalTransition
	default:
		return ErrIllegalTransition
	}

	to := s.Step.next()
	if !canTransition(s.Step, to) {
		return ErrIllegalTransition
	}
	s.Step = to
	s.touch()
	return nil
}

// Back moves to the immediately preceding step. Entered data is preserved.
func (s *Session) Back() error {
	to := s.Step.prev()
	if to == "" || !canTransition(s.Step, to) {
		return ErrIllegalTransition
	}
	s.Step = to
	s.touch()
	return nil
}

// EnterDiscovery jumps to the discovery branch. Only reachable from the
// starter step; discovery is terminal for the session.
func (s *Session) EnterDiscovery() error {
	if !canTransition(s.Step, StepDiscovery) {
		return ErrIllegalTransition
	}
	s.Step = StepDiscovery
	s.touch()
	return nil
}

// OverrideRegion applies an explicit visitor choice. It always wins: any
// detection result arriving afterwards is discarded.
func (s *Session) OverrideRegion(region catalog.Region) error {
	if !region.Valid() {
		return ErrInvalidRegion
	}
	s.Region = region
	s.RegionSource = RegionSourceManual
	s.touch()
	return nil
}

// ApplyDetectedRegion applies an auto-detection result, unless the visitor
// already chose a region manually or an earlier detection landed first.
func (s *Session) ApplyDetectedRegion(region catalog.Region) {
	if s.RegionSource != RegionSourcePending {
		return
	}
	if !region.Valid() {
		return
	}
	s.Region = region
	s.RegionSource = RegionSourceDetected
	s.touch()
}

// CanSubmit reports whether the session is ready for submission.
func (s *Session) CanSubmit() error {
	if s.Step == StepThankYou {
		return ErrAlreadySubmitted
	}
	if s.Step != StepContact {
		return ErrIllegalTransition
	}
	if strings.TrimSpace(s.Contact.Name) == "" || strings.TrimSpace(s.Contact.Email) == "" {
		return ErrContactIncomplete
	}
	return nil
}

// CompleteSubmission transitions to thank-you after a successful persist.
func (s *Session) CompleteSubmission(bookingRef string) error {
	if !canTransition(s.Step, StepThankYou) {
		return ErrIllegalTransition
	}
	s.Step = StepThankYou
	s.BookingRef = bookingRef
	s.Submitting = false
	s.touch()
	return nil
}
