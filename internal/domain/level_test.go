package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelClamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in, out Level
	}{
		{-5, MinLevel},
		{-1, MinLevel},
		{0, 0},
		{3, 3},
		{6, 6},
		{7, MaxLevel},
		{100, MaxLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.out, tc.in.Clamp(), "clamp(%d)", tc.in)
		assert.True(t, tc.in.Clamp().Valid())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 6; n++ {
		l, err := ParseLevel(n)
		require.NoError(t, err)
		assert.Equal(t, Level(n), l)
	}

	for _, n := range []int{-1, 7} {
		_, err := ParseLevel(n)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	}
}

func TestLevels(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Level{0, 1, 2, 3, 4, 5, 6}, Levels())
}

func TestReviewAction(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		wire   int
		action ReviewAction
		name   string
	}{
		{0, ReviewActionLower, "lower"},
		{1, ReviewActionKeep, "keep"},
		{2, ReviewActionRaise, "raise"},
	}

	for _, tc := range testCases {
		a, err := ParseReviewAction(tc.wire)
		require.NoError(t, err)
		assert.Equal(t, tc.action, a)
		assert.Equal(t, tc.name, a.String())
	}

	_, err := ParseReviewAction(3)
	assert.ErrorIs(t, err, ErrInvalidReviewAction)
	assert.Equal(t, "ReviewAction(3)", ReviewAction(3).String())
	assert.False(t, ReviewAction(-1).Valid())
}
