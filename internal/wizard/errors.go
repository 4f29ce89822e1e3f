package wizard

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for an id
	ErrSessionNotFound = errors.New("session not found")

	// ErrIllegalTransition is returned for a step movement outside the table
	ErrIllegalTransition = errors.New("illegal step transition")

	// ErrNoServiceSelected blocks advancing from the starter step
	ErrNoServiceSelected = errors.New("select a package before continuing")

	// ErrUnknownService is returned for a service id not in the catalog
	ErrUnknownService = errors.New("unknown service")

	// ErrUnknownAddOn is returned for an add-on id not in the catalog
	ErrUnknownAddOn = errors.New("unknown add-on")

	// ErrConfigurationIncomplete blocks advancing from the configurator step
	ErrConfigurationIncomplete = errors.New("choose a domain option and payment plan before continuing")

	// ErrBriefIncomplete blocks advancing from the brief step
	ErrBriefIncomplete = errors.New("business name, description, and main goal are required")

	// ErrInvalidMainGoal is returned when the goal is not a catalog option
	ErrInvalidMainGoal = errors.New("main goal must be one of the listed options")

	// ErrContactIncomplete blocks submission without name and email
	ErrContactIncomplete = errors.New("name and email are required")

	// ErrInvalidChoice is returned for unrecognised domain/plan values
	ErrInvalidChoice = errors.New("unrecognised option value")

	// ErrInvalidRegion is returned for an unknown manual region override
	ErrInvalidRegion = errors.New("unknown region code")

	// ErrSubmissionInProgress guards against duplicate concurrent submits
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrAlreadySubmitted is returned once a session reached thank-you
	ErrAlreadySubmitted = errors.New("session already submitted")
)
