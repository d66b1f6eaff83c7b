package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/domain"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	expected := map[domain.Level]time.Duration{
		0: 0,
		1: 3 * day,
		2: 6 * day,
		3: 12 * day,
		4: 24 * day,
		5: 48 * day,
		6: 0,
	}
	for level, d := range expected {
		assert.Equal(t, d, params.DurationFor(level), "level %d", level)
	}
	require.NoError(t, params.Validate())
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	t.Run("zero config keeps defaults", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, NewDefaultParams(), NewParams(ParamsConfig{}))
	})

	t.Run("overrides only the provided levels", func(t *testing.T) {
		t.Parallel()
		params := NewParams(ParamsConfig{Level1Days: 1, Level5Days: 90})

		assert.Equal(t, 1*day, params.DurationFor(1))
		assert.Equal(t, 6*day, params.DurationFor(2))
		assert.Equal(t, 90*day, params.DurationFor(5))
		assert.Equal(t, time.Duration(0), params.DurationFor(domain.MaxLevel))
	})

	t.Run("negative values are ignored", func(t *testing.T) {
		t.Parallel()
		params := NewParams(ParamsConfig{Level3Days: -4})
		assert.Equal(t, 12*day, params.DurationFor(3))
	})
}

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	t.Run("negative duration", func(t *testing.T) {
		t.Parallel()
		params := NewDefaultParams()
		params.LevelDurations[2] = -time.Second
		assert.ErrorIs(t, params.Validate(), ErrInvalidParams)
	})

	t.Run("waiting period on retired level", func(t *testing.T) {
		t.Parallel()
		params := NewDefaultParams()
		params.LevelDurations[domain.MaxLevel] = day
		assert.ErrorIs(t, params.Validate(), ErrInvalidParams)
	})
}

func TestDurationForClampsLevel(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	assert.Equal(t, params.DurationFor(domain.MaxLevel), params.DurationFor(42))
	assert.Equal(t, params.DurationFor(domain.MinLevel), params.DurationFor(-1))
}
