package statemachine

import (
	"errors"

	"pharmacy-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.CartStatus
	To    models.CartStatus
	Actor string // "customer" or "staff"
}

// validTransitions is the authoritative cart lifecycle definition
var validTransitions = []Transition{
	// Checkout moves a fresh cart into processing
	{From: models.StatusNew, To: models.StatusProcessing, Actor: "customer"},
	// Staff drive fulfilment from there
	{From: models.StatusProcessing, To: models.StatusShipped, Actor: "staff"},
	{From: models.StatusShipped, To: models.StatusCompleted, Actor: "staff"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.CartStatus
	To    models.CartStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.CartStatus) []models.CartStatus {
	var nexts []models.CartStatus
	seen := map[models.CartStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.CartStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.CartStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
