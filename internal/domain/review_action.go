package domain

import "fmt"

// ReviewAction is the feedback a user gives after reviewing a term.
// The numeric values are the wire encoding used by the HTTP API.
type ReviewAction int

// Possible review actions.
const (
	ReviewActionLower ReviewAction = 0
	ReviewActionKeep  ReviewAction = 1
	ReviewActionRaise ReviewAction = 2
)

// Valid reports whether a is one of the known review actions.
func (a ReviewAction) Valid() bool {
	switch a {
	case ReviewActionLower, ReviewActionKeep, ReviewActionRaise:
		return true
	default:
		return false
	}
}

func (a ReviewAction) String() string {
	switch a {
	case ReviewActionLower:
		return "lower"
	case ReviewActionKeep:
		return "keep"
	case ReviewActionRaise:
		return "raise"
	default:
		return fmt.Sprintf("ReviewAction(%d)", int(a))
	}
}

// ParseReviewAction converts a wire value into a ReviewAction.
func ParseReviewAction(n int) (ReviewAction, error) {
	a := ReviewAction(n)
	if !a.Valid() {
		return ReviewActionKeep, fmt.Errorf("%w: %d", ErrInvalidReviewAction, n)
	}
	return a, nil
}
