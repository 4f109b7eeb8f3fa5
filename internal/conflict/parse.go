package conflict

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDayRange parses "start-end". A bare "n" is the single-day range n-n.
func ParseDayRange(s string) (DayRange, error) {
	s = strings.TrimSpace(s)
	startText, endText, found := strings.Cut(s, "-")
	if !found {
		endText = startText
	}
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return DayRange{}, fmt.Errorf("invalid day range %q: start is not a number", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endText))
	if err != nil {
		return DayRange{}, fmt.Errorf("invalid day range %q: end is not a number", s)
	}
	return DayRange{Start: start, End: end}, nil
}

// ParseDistribution parses four comma-separated level weights, e.g. "5,0,0,0".
func ParseDistribution(s string) (Distribution, error) {
	parts := strings.Split(s, ",")
	if len(parts) != LevelCount {
		return Distribution{}, fmt.Errorf("invalid distribution %q: want %d comma-separated values, got %d",
			s, LevelCount, len(parts))
	}
	var d Distribution
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Distribution{}, fmt.Errorf("invalid distribution %q: level %d is not a number", s, i+1)
		}
		d[i] = v
	}
	return d, nil
}

// ParseAssessment parses "start-end:l1,l2,l3,l4".
func ParseAssessment(s string) (DayRange, Distribution, error) {
	rangeText, distText, found := strings.Cut(s, ":")
	if !found {
		return DayRange{}, Distribution{}, fmt.Errorf("invalid assessment %q: want start-end:l1,l2,l3,l4", s)
	}
	r, err := ParseDayRange(rangeText)
	if err != nil {
		return DayRange{}, Distribution{}, err
	}
	d, err := ParseDistribution(distText)
	if err != nil {
		return DayRange{}, Distribution{}, err
	}
	return r, d, nil
}
