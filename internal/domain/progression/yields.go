package progression

// Yield tables indexed by level index (0..6). Out-of-range indexes fall back
// to the lowest tier's value rather than panicking, so a stale or corrupt
// level stored client-side can never take down a request.
var (
	patientsPerDayTable = [...]int{4, 6, 8, 10, 12, 14, 16}
	qualityOfCareTable  = [...]float64{70, 75, 80, 85, 90, 95, 99}
	baseQCTable         = [...]float64{1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 1.6}
)

// Streak bonus schedule. The bonus is stepped rather than continuous, with a
// deliberately outsized jump at exactly 7 days and saturation at 14 days.
// The non-monotonic rate is intentional gamification: the week mark is the
// retention cliff the product rewards hardest. Do not smooth it.
const (
	StreakCapDays  = 14
	StreakJumpDay  = 7
	maxStreakBonus = 3.0
)

// streakSteps lists lower-bound day thresholds and their bonuses, descending.
var streakSteps = []struct {
	minDays int
	bonus   float64
}{
	{StreakCapDays, maxStreakBonus},
	{8, 2.5},
	{StreakJumpDay, 2.0},
	{5, 1.0},
	{3, 0.5},
	{1, 0.25},
	{0, 0.0},
}

// PatientsPerDay returns the daily patient yield for the given level index.
func PatientsPerDay(levelIndex int) int {
	if levelIndex < 0 || levelIndex >= len(patientsPerDayTable) {
		return patientsPerDayTable[0]
	}
	return patientsPerDayTable[levelIndex]
}

// QualityOfCare returns the quality-of-care rating for the given level index.
func QualityOfCare(levelIndex int) float64 {
	if levelIndex < 0 || levelIndex >= len(qualityOfCareTable) {
		return qualityOfCareTable[0]
	}
	return qualityOfCareTable[levelIndex]
}

// StreakBonus returns the stepped streak bonus for the given streak length.
// Negative streaks yield the base bonus of 0.
func StreakBonus(streakDays int) float64 {
	for _, step := range streakSteps {
		if streakDays >= step.minDays {
			return step.bonus
		}
	}
	return 0.0
}

// TotalQualityCoefficient returns the level-indexed base coefficient plus the
// streak bonus. For example levelIndex 2 with a 7-day streak yields
// 1.2 + 2.0 = 3.2.
func TotalQualityCoefficient(levelIndex, streakDays int) float64 {
	base := baseQCTable[0]
	if levelIndex >= 0 && levelIndex < len(baseQCTable) {
		base = baseQCTable[levelIndex]
	}
	return base + StreakBonus(streakDays)
}
