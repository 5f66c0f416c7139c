package statemachine

import (
	"fmt"
	"strings"

	"pizzastore/errs"
	"pizzastore/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Driver takes a processed order out and hands it over
	{From: models.StatusProcessing, To: models.StatusOutForDelivery, Actor: models.RoleDriver},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: models.RoleDriver},
	// Manager can drive the whole lifecycle, cancellations included
	{From: models.StatusProcessing, To: models.StatusOutForDelivery, Actor: models.RoleManager},
	{From: models.StatusProcessing, To: models.StatusCancelled, Actor: models.RoleManager},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: models.RoleManager},
	{From: models.StatusOutForDelivery, To: models.StatusCancelled, Actor: models.RoleManager},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state for
// an actor. An empty actor means any actor.
func ValidTransitionsFrom(status models.OrderStatus, actor models.UserRole) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From != status || seen[t.To] {
			continue
		}
		if actor != "" && t.Actor != actor {
			continue
		}
		nexts = append(nexts, t.To)
		seen[t.To] = true
	}
	return nexts
}

// IsTerminal reports whether no actor can move an order out of status.
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status, "")) == 0
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s; valid next states: %s",
		errs.ErrInvalidTransition, from, to, actor, describeValidFrom(from, actor))
}

func describeValidFrom(status models.OrderStatus, actor models.UserRole) string {
	nexts := ValidTransitionsFrom(status, actor)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
