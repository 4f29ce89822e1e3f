package wizard

// Step is one discrete screen/state in the booking flow.
type Step string

const (
	// StepStarter is the package selection screen.
	StepStarter Step = "starter"
	// StepConfigurator collects the domain choice and payment plan.
	StepConfigurator Step = "configurator"
	// StepBrief collects business details and the primary goal.
	StepBrief Step = "brief"
	// StepContact collects contact details and owns submission.
	StepContact Step = "contact"
	// StepDiscovery is the terminal branch for custom/complex requests.
	StepDiscovery Step = "discovery"
	// StepThankYou is the terminal state after a successful submission.
	StepThankYou Step = "thank-you"
)

// transitions is the closed table of allowed step movements. Anything not
// listed here is an illegal transition.
var transitions = map[Step][]Step{
	StepStarter:      {StepConfigurator, StepDiscovery},
	StepConfigurator: {StepBrief, StepStarter},
	StepBrief:        {StepContact, StepConfigurator},
	StepContact:      {StepThankYou, StepBrief},
	StepDiscovery:    {},
	StepThankYou:     {},
}

// next returns the forward step in the linear flow, or "" at a terminal.
func (s Step) next() Step {
	switch s {
	case StepStarter:
		return StepConfigurator
	case StepConfigurator:
		return StepBrief
	case StepBrief:
		return StepContact
	case StepContact:
		return StepThankYou
	}
	return ""
}

// prev returns the backward step in the linear flow, or "" at the start and
// at terminals (discovery and thank-you only exit to the homepage).
func (s Step) prev() Step {
	switch s {
	case StepConfigurator:
		return StepStarter
	case StepBrief:
		return StepConfigurator
	case StepContact:
		return StepBrief
	}
	return ""
}

// canTransition reports whether moving from one step to another is allowed
// by the transition table.
func canTransition(from, to Step) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
