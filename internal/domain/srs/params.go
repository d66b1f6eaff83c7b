package srs

import (
	"fmt"
	"time"

	"github.com/termdeck/termdeck-api/internal/domain"
)

const day = 24 * time.Hour

// Params defines the configurable parameters of the leveling algorithm.
type Params struct {
	// LevelDurations is how long a term must wait at each level, after being
	// raised to it, before it is due again. It holds one entry per level from
	// domain.MinLevel to domain.MaxLevel.
	//
	// The MinLevel entry is never consulted because level 0 terms are always
	// due. It stays in the table so the mapping covers the full level range.
	LevelDurations [domain.MaxLevel + 1]time.Duration
}

// ParamsConfig allows overriding the default waiting periods, in days, of the
// intermediate levels. Zero values keep the default.
type ParamsConfig struct {
	Level1Days int
	Level2Days int
	Level3Days int
	Level4Days int
	Level5Days int
}

// NewDefaultParams creates a new Params instance with the default ladder:
// 3, 6, 12, 24 and 48 days for levels 1 through 5.
func NewDefaultParams() *Params {
	return &Params{
		LevelDurations: [domain.MaxLevel + 1]time.Duration{
			0,
			3 * day,
			6 * day,
			12 * day,
			24 * day,
			48 * day,
			0,
		},
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	overrides := []int{
		config.Level1Days,
		config.Level2Days,
		config.Level3Days,
		config.Level4Days,
		config.Level5Days,
	}
	for i, days := range overrides {
		if days > 0 {
			params.LevelDurations[i+1] = time.Duration(days) * day
		}
	}

	return params
}

// Validate checks that every duration is non-negative and that the retired
// level has no waiting period.
func (p *Params) Validate() error {
	for level, d := range p.LevelDurations {
		if d < 0 {
			return fmt.Errorf("%w: negative duration %s for level %d", ErrInvalidParams, d, level)
		}
	}
	if p.LevelDurations[domain.MaxLevel] != 0 {
		return fmt.Errorf("%w: level %d must have a zero duration", ErrInvalidParams, domain.MaxLevel)
	}
	return nil
}

// DurationFor returns the waiting period configured for level.
// Out-of-range levels are clamped first.
func (p *Params) DurationFor(level domain.Level) time.Duration {
	return p.LevelDurations[level.Clamp()]
}
