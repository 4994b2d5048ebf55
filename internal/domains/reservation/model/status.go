package model

import "lodge/shared/failure"

const (
	StatusBooked    = "BOOKED"
	StatusArrived   = "ARRIVED"
	StatusCancelled = "CANCELLED"
)

// transitions holds the legal lifecycle moves. BOOKED is the initial
// state; ARRIVED and CANCELLED are terminal. An arrived guest cannot
// be cancelled.
var transitions = map[string]map[string]bool{
	StatusBooked: {
		StatusArrived:   true,
		StatusCancelled: true,
	},
	StatusArrived:   {},
	StatusCancelled: {},
}

func ValidStatus(status string) bool {
	_, ok := transitions[status]

	return ok
}

func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}

	return allowed[to]
}

// Transition validates the lifecycle move from one status to another,
// returning an InvalidTransition failure when it is not legal.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return failure.InvalidTransition(from, to) // nolint:wrapcheck
	}

	return nil
}
