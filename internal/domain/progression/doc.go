// Package progression implements the gamified clinic leveling engine: tier
// computation from unlocked rooms and the fixed yield tables that derive
// patients-per-day, quality-of-care, and the streak-boosted total quality
// coefficient from a level index. Everything here is a pure function of its
// inputs so the formulas can be property-tested in isolation.
package progression
