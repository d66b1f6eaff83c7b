package domain

import "fmt"

// Level is the proficiency rank of a term on the spaced-repetition ladder.
// MinLevel means just learned, MaxLevel means mastered and retired from review.
type Level int

const (
	// MinLevel is the level every new term starts at.
	MinLevel Level = 0

	// MaxLevel is the mastered level. Terms at MaxLevel are never due.
	MaxLevel Level = 6
)

// Valid reports whether l lies within [MinLevel, MaxLevel].
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Clamp returns l forced into [MinLevel, MaxLevel].
func (l Level) Clamp() Level {
	if l < MinLevel {
		return MinLevel
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// ParseLevel converts n into a Level, rejecting out-of-range values.
func ParseLevel(n int) (Level, error) {
	l := Level(n)
	if !l.Valid() {
		return MinLevel, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidLevel, n, MinLevel, MaxLevel)
	}
	return l, nil
}

// Levels returns every level from MinLevel to MaxLevel in ascending order.
func Levels() []Level {
	levels := make([]Level, 0, MaxLevel-MinLevel+1)
	for l := MinLevel; l <= MaxLevel; l++ {
		levels = append(levels, l)
	}
	return levels
}
