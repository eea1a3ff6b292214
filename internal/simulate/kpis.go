package simulate

import "math"

// netWorthAtYears samples net worth at the last month of each milestone
// year: 5, 10, 20, then doubling, bounded by the horizon.
func netWorthAtYears(netWorth []float64) map[int]float64 {
	out := make(map[int]float64)
	for _, year := range milestoneYears(len(netWorth)) {
		out[year] = netWorth[year*12-1]
	}
	return out
}

func milestoneYears(horizonMonths int) []int {
	var years []int
	for _, y := range []int{5, 10} {
		if y*12 <= horizonMonths {
			years = append(years, y)
		}
	}
	for y := 20; y*12 <= horizonMonths; y *= 2 {
		years = append(years, y)
	}
	return years
}

// cagr returns the compound annual growth rate of net worth from month 0
// to the final month, or nil when the figure is degenerate: a horizon too
// short to span time, or a non-positive starting or ending net worth.
func cagr(netWorth []float64) *float64 {
	if len(netWorth) < 2 {
		return nil
	}
	start, end := netWorth[0], netWorth[len(netWorth)-1]
	if start <= 0 || end <= 0 {
		return nil
	}

	years := float64(len(netWorth)-1) / 12
	rate := math.Pow(end/start, 1/years) - 1
	return &rate
}
