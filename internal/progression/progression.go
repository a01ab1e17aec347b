// Package progression implements the fixed points-to-level policy used by the
// dashboard. Compute is a pure function so it can be applied inside a storage
// transaction as well as tested in isolation.
package progression

// Level labels in ascending order.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Band thresholds, fixed policy constants.
const (
	intermediateFloor = 100
	advancedFloor     = 300
	advancedSpan      = 500
)

// Compute maps a cumulative point total to a level label and a progress
// percentage in [0, 100]. Division is truncating; only the Advanced band
// needs clamping since its span is open-ended.
func Compute(points int64) (level string, progress int) {
	switch {
	case points < intermediateFloor:
		return LevelBeginner, int(points * 100 / intermediateFloor)
	case points < advancedFloor:
		return LevelIntermediate, int((points - intermediateFloor) * 100 / (advancedFloor - intermediateFloor))
	default:
		p := int((points - advancedFloor) * 100 / advancedSpan)
		if p > 100 {
			p = 100
		}
		return LevelAdvanced, p
	}
}
