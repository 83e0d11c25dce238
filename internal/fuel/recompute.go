// ABOUTME: Full recompute of efficiency and fuel estimates from a fill-up history
// ABOUTME: The authoritative derivation used after every history mutation

package fuel

import (
	"math"

	"github.com/harper/fueltrack/internal/models"
)

// minSampleDistanceKm is the minimum full-to-full distance that counts as an
// efficiency sample. Anything shorter is refueling noise, not driving.
const minSampleDistanceKm = 1

// RecomputeResult is the derived portion of the vehicle state.
type RecomputeResult struct {
	AvgKmPerL   float64
	SampleCount int
	FuelLeftL   float64
}

// Recompute derives average efficiency, sample count, and the fuel estimate
// from an arbitrary fill-up collection plus the current odometer.
//
// Only tank-full entries participate: each adjacent pair (sorted by date) more
// than minSampleDistanceKm apart yields one sample, distance divided by the
// liters added at the later entry. Samples are averaged with equal weight.
// With no samples the previous average is retained, never reset to a default.
// The fuel estimate counts back from the most recent tank-full entry; with no
// tank-full entry the previous estimate is retained.
func Recompute(fillups []models.FillUp, odometerKm, tankCapacityL, prevAvgKmPerL, prevFuelLeftL float64) RecomputeResult {
	fulls := make([]models.FillUp, 0, len(fillups))
	for _, f := range fillups {
		if f.TankFull {
			fulls = append(fulls, f)
		}
	}
	models.SortFillUpsByDate(fulls)

	var sum float64
	var count int
	for i := 1; i < len(fulls); i++ {
		dist := fulls[i].OdometerKm - fulls[i-1].OdometerKm
		if dist > minSampleDistanceKm && fulls[i].Liters > 0 {
			sum += dist / fulls[i].Liters
			count++
		}
	}

	avg := prevAvgKmPerL
	if count > 0 {
		avg = sum / float64(count)
	}

	fuelLeft := prevFuelLeftL
	if len(fulls) > 0 {
		last := fulls[len(fulls)-1]
		sinceKm := math.Max(0, odometerKm-last.OdometerKm)
		used := sinceKm / math.Max(1, avg)
		fuelLeft = clampFuel(tankCapacityL-used, tankCapacityL)
	}

	return RecomputeResult{
		AvgKmPerL:   avg,
		SampleCount: count,
		FuelLeftL:   fuelLeft,
	}
}

func clampFuel(v, capacity float64) float64 {
	return math.Max(0, math.Min(capacity, v))
}
