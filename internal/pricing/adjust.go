// Package pricing re-anchors a recommendation's price levels to a live quote.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Levels are the entry/stop/target prices of a trade idea.
type Levels struct {
	Entry  float64
	Stop   float64
	Target float64
}

// Usable reports whether live can serve as an anchor price.
func Usable(live float64) bool {
	return !math.IsNaN(live) && !math.IsInf(live, 0) && live > 0
}

// Reanchor moves entry to live and keeps the static distances to stop and
// target: stop = live - (entry - stop), target = live + (target - entry).
// Results are rounded to 2 decimal places. ok is false, and static is
// returned untouched, when live is not a usable price.
func Reanchor(static Levels, live float64) (Levels, bool) {
	if !Usable(live) {
		return static, false
	}
	entry := decimal.NewFromFloat(static.Entry)
	stopDiff := entry.Sub(decimal.NewFromFloat(static.Stop))
	targetDiff := decimal.NewFromFloat(static.Target).Sub(entry)
	anchor := decimal.NewFromFloat(live)

	return Levels{
		Entry:  round2(anchor),
		Stop:   round2(anchor.Sub(stopDiff)),
		Target: round2(anchor.Add(targetDiff)),
	}, true
}

// Round2 rounds v half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
