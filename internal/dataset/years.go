package dataset

// Range returns the inclusive sequence of years between start and end. Both
// bounds are clamped into [MinYear, MaxYear] independently and the smaller
// one starts the sequence, so reversed bounds yield the same years.
func (ds *Dataset) Range(start, end int) []int {
	return YearRange(start, end, ds.minYear, ds.maxYear)
}

// YearRange is Range over explicit bounds
func YearRange(start, end, minYear, maxYear int) []int {
	lo := clamp(start, minYear, maxYear)
	hi := clamp(end, minYear, maxYear)
	if lo > hi {
		lo, hi = hi, lo
	}
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	return years
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
