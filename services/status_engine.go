package services

import (
	"github.com/mintcleaning/booking-app/models"
)

// Transition is a validated status change. Obtain one through
// ValidateTransition; a zero Transition is meaningless.
type Transition struct {
	From string
	To   string
}

// SideEffectSet lists the writes a transition requires beyond the status
// column itself.
type SideEffectSet struct {
	CreateCalendarEvent  bool
	PersistMeetingLink   bool
	ClearProfileVerified bool
}

// legalTransitions is the whole lifecycle. Terminal statuses have no
// outgoing edges; direct admin overrides that skip the interview are
// deliberately not in this table.
var legalTransitions = map[string][]string{
	models.ApplicationStatusPendingReview: {
		models.ApplicationStatusScheduledInterview,
	},
	models.ApplicationStatusScheduledInterview: {
		models.ApplicationStatusVerified,
		models.ApplicationStatusRejected,
	},
}

// ValidateTransition classifies a requested status change. It performs no
// I/O and never fails for anything other than an illegal transition.
func ValidateTransition(current, requested string) (Transition, error) {
	for _, allowed := range legalTransitions[current] {
		if requested == allowed {
			return Transition{From: current, To: requested}, nil
		}
	}
	return Transition{}, &InvalidTransitionError{From: current, To: requested}
}

// SideEffectsFor returns the additional writes the orchestrator must perform
// for a validated transition.
func SideEffectsFor(t Transition) SideEffectSet {
	var effects SideEffectSet
	if t.To == models.ApplicationStatusScheduledInterview {
		effects.CreateCalendarEvent = true
		effects.PersistMeetingLink = true
	}
	if t.To == models.ApplicationStatusRejected {
		effects.ClearProfileVerified = true
	}
	return effects
}
