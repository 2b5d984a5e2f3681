// Package ratings computes the review aggregates shown on pharmacy pages:
// the average star rating and a percentage histogram over five buckets.
package ratings

import "math"

// Average returns the mean of ratings, or 0 when there are none.
func Average(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// Histogram buckets ratings into stars 1..5 by nearest-integer rounding and
// returns each bucket's share as a whole percentage. Ratings below 1 land in
// bucket 1. Returns nil when there are no ratings, which the API reports as
// "no data".
func Histogram(ratings []float64) map[int]int {
	if len(ratings) == 0 {
		return nil
	}
	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, r := range ratings {
		b := int(math.Round(r))
		if b < 1 {
			b = 1
		}
		if b > 5 {
			b = 5
		}
		counts[b]++
	}
	pct := make(map[int]int, 5)
	for star, n := range counts {
		pct[star] = int(math.Round(float64(n) / float64(len(ratings)) * 100))
	}
	return pct
}
