package conflict

import (
	"cmp"
	"slices"
)

// Validate checks that every distribution sums to DistributionTotal and that
// the ranges cover 1..simulationDays exactly once. All ranges are checked so
// the caller sees every problem in one pass; the error, when non-nil, is a
// ValidationErrors. Declaration order is preserved in the returned plan and
// has no effect on coverage.
func Validate(simulationDays int, ranges []DayRange, distributions []Distribution) (Plan, error) {
	var errs ValidationErrors

	if simulationDays < 1 {
		errs = append(errs, ErrNonPositiveLength)
	}
	if len(ranges) != len(distributions) {
		errs = append(errs, ErrCountMismatch)
		return Plan{}, errs
	}

	for i, d := range distributions {
		for level, v := range d {
			if v < 0 || v > MaxLevelWeight {
				errs = append(errs, &LevelValueError{RangeIndex: i, Level: level, Value: v})
			}
		}
		if sum := d.Sum(); sum != DistributionTotal {
			errs = append(errs, &DistributionSumError{RangeIndex: i, Range: ranges[i], Sum: sum})
		}
	}

	for i, r := range ranges {
		if r.Start < 1 || r.End < r.Start {
			errs = append(errs, &RangeBoundsError{RangeIndex: i, Range: r})
		}
	}

	if simulationDays >= 1 {
		if cov := checkCoverage(simulationDays, ranges); cov != nil {
			errs = append(errs, cov)
		}
	}

	if len(errs) > 0 {
		return Plan{}, errs
	}

	plan := Plan{
		SimulationDays: simulationDays,
		Ranges:         make([]RangeAssessment, len(ranges)),
	}
	for i, r := range ranges {
		plan.Ranges[i] = RangeAssessment{Days: r, Levels: NewLevelTable(distributions[i])}
	}
	return plan, nil
}

// checkCoverage walks the ranges in start order against 1..n. It works on
// spans, so the cost depends on the number of ranges and not on n.
func checkCoverage(n int, ranges []DayRange) *CoverageError {
	cov := &CoverageError{SimulationDays: n}

	spans := make([]DayRange, 0, len(ranges))
	for _, r := range ranges {
		if r.End < r.Start {
			continue
		}
		if r.Start < 1 || r.End > n {
			cov.OutOfBounds = true
		}
		start, end := max(r.Start, 1), min(r.End, n)
		if start <= end {
			spans = append(spans, DayRange{Start: start, End: end})
		}
	}
	slices.SortStableFunc(spans, func(a, b DayRange) int { return cmp.Compare(a.Start, b.Start) })

	// reach is the last day covered so far; it never exceeds n.
	reach := 0
	for _, s := range spans {
		if s.Start-1 > reach {
			cov.MissingSpans = append(cov.MissingSpans, DayRange{Start: reach + 1, End: s.Start - 1})
		}
		if s.Start <= reach {
			cov.DuplicatedSpans = appendSpan(cov.DuplicatedSpans, DayRange{Start: s.Start, End: min(s.End, reach)})
		}
		reach = max(reach, s.End)
	}
	if reach < n {
		cov.MissingSpans = append(cov.MissingSpans, DayRange{Start: reach + 1, End: n})
	}

	if !cov.OutOfBounds && !cov.IsGap() && !cov.IsOverlap() {
		return nil
	}
	cov.Missing = expandSpans(cov.MissingSpans)
	cov.Duplicated = expandSpans(cov.DuplicatedSpans)
	return cov
}

// appendSpan adds r to sorted spans, merging it with the last span when they
// touch or overlap.
func appendSpan(spans []DayRange, r DayRange) []DayRange {
	if last := len(spans) - 1; last >= 0 && r.Start-1 <= spans[last].End {
		spans[last].End = max(spans[last].End, r.End)
		return spans
	}
	return append(spans, r)
}

// expandSpans lists the days of spans, or nil when they hold more than
// MaxListedDays days.
func expandSpans(spans []DayRange) []int {
	total := 0
	for _, s := range spans {
		if s.End-s.Start >= MaxListedDays-total {
			return nil
		}
		total += s.End - s.Start + 1
	}
	if total == 0 {
		return nil
	}
	days := make([]int, 0, total)
	for _, s := range spans {
		for d := s.Start; d <= s.End; d++ {
			days = append(days, d)
		}
	}
	return days
}
