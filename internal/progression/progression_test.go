package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_Boundaries(t *testing.T) {
	tests := []struct {
		points   int64
		level    string
		progress int
	}{
		{0, LevelBeginner, 0},
		{1, LevelBeginner, 1},
		{50, LevelBeginner, 50},
		{99, LevelBeginner, 99},
		{100, LevelIntermediate, 0},
		{110, LevelIntermediate, 5},
		{199, LevelIntermediate, 49},
		{299, LevelIntermediate, 99},
		{300, LevelAdvanced, 0},
		{550, LevelAdvanced, 50},
		{799, LevelAdvanced, 99},
		{800, LevelAdvanced, 100},
		{10000, LevelAdvanced, 100},
	}

	for _, tt := range tests {
		level, progress := Compute(tt.points)
		assert.Equal(t, tt.level, level, "level for %d points", tt.points)
		assert.Equal(t, tt.progress, progress, "progress for %d points", tt.points)
	}
}

func TestCompute_TruncatesInsteadOfRounding(t *testing.T) {
	// 101 points is 0.5% into the Intermediate band; truncation keeps it at 0.
	level, progress := Compute(101)
	assert.Equal(t, LevelIntermediate, level)
	assert.Equal(t, 0, progress)

	// 299 points is 99.5% of the band and must not round up to 100.
	_, progress = Compute(299)
	assert.Equal(t, 99, progress)
}

func TestCompute_Monotonic(t *testing.T) {
	rank := map[string]int{
		LevelBeginner:     0,
		LevelIntermediate: 1,
		LevelAdvanced:     2,
	}

	prevLevel, prevProgress := Compute(0)
	for p := int64(1); p <= 1200; p++ {
		level, progress := Compute(p)

		assert.GreaterOrEqual(t, rank[level], rank[prevLevel], "level regressed at %d points", p)
		if level == prevLevel {
			assert.GreaterOrEqual(t, progress, prevProgress, "progress regressed at %d points", p)
		}
		assert.GreaterOrEqual(t, progress, 0)
		assert.LessOrEqual(t, progress, 100)

		prevLevel, prevProgress = level, progress
	}
}
