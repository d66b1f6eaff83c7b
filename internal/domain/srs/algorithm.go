package srs

import (
	"time"

	"github.com/termdeck/termdeck-api/internal/domain"
)

// nextLevel computes the level a term moves to after a review.
//
// Lower moves one level down, Keep stays, Raise moves one level up. The
// result is always clamped into [domain.MinLevel, domain.MaxLevel], so Lower
// at MinLevel and Raise at MaxLevel are no-ops.
//
// Any other action is treated as Keep. The second return value is false in
// that case so the caller can report the unrecognized action.
func nextLevel(current domain.Level, action domain.ReviewAction) (domain.Level, bool) {
	var next domain.Level

	switch action {
	case domain.ReviewActionLower:
		next = current - 1
	case domain.ReviewActionKeep:
		next = current
	case domain.ReviewActionRaise:
		next = current + 1
	default:
		return current.Clamp(), false
	}

	return next.Clamp(), true
}

// isDue decides whether a term with the given level and last level change
// belongs in a study session at now.
//
// Algorithm behavior:
//   - MinLevel terms are always due
//   - MaxLevel terms are never due (retired)
//   - Intermediate terms never raised (levelChangedAt == nil) are due
//   - Otherwise a term is due once the whole waiting period for its level has
//     elapsed since levelChangedAt, compared in whole milliseconds
//
// now is supplied by the caller; this function never reads the clock.
func isDue(level domain.Level, levelChangedAt *time.Time, now time.Time, params *Params) bool {
	if level <= domain.MinLevel {
		return true
	}
	if level >= domain.MaxLevel {
		return false
	}
	if levelChangedAt == nil {
		return true
	}

	elapsed := now.Sub(*levelChangedAt).Milliseconds()
	return elapsed >= params.DurationFor(level).Milliseconds()
}

// applyReview returns a copy of term with the reviewed level. Only a Raise
// stamps LevelChangedAt with now; Lower and Keep leave it as it was.
func applyReview(
	term *domain.Term,
	action domain.ReviewAction,
	now time.Time,
) (*domain.Term, bool) {
	next, recognized := nextLevel(term.Level, action)

	updated := *term
	updated.Level = next
	if term.LevelChangedAt != nil {
		changedAt := *term.LevelChangedAt
		updated.LevelChangedAt = &changedAt
	}

	if recognized && action == domain.ReviewActionRaise {
		stamp := now
		updated.LevelChangedAt = &stamp
	}
	updated.UpdatedAt = now

	return &updated, recognized
}
