package conflict

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNonPositiveLength reports a simulation length below one day.
	ErrNonPositiveLength = errors.New("length of simulation must be at least 1 day")

	// ErrCountMismatch reports a different number of ranges and distributions.
	ErrCountMismatch = errors.New("every day range needs exactly one conflict distribution")
)

// CoverageMessage is the single aggregate coverage failure text.
const CoverageMessage = "ranges must cover all days without gaps or overlaps"

// DistributionSumError reports a range whose levels do not sum to DistributionTotal.
type DistributionSumError struct {
	RangeIndex int
	Range      DayRange
	Sum        int
}

func (e *DistributionSumError) Error() string {
	return fmt.Sprintf("range %d (%s): conflict levels must sum to %d (currently %d)",
		e.RangeIndex+1, e.Range, DistributionTotal, e.Sum)
}

// LevelValueError reports a level weight outside 0..MaxLevelWeight.
type LevelValueError struct {
	RangeIndex int
	Level      int
	Value      int
}

func (e *LevelValueError) Error() string {
	return fmt.Sprintf("range %d: %s must be between 0 and %d (got %d)",
		e.RangeIndex+1, LevelLabels[e.Level], MaxLevelWeight, e.Value)
}

// RangeBoundsError reports a range that starts before day 1 or ends before it starts.
type RangeBoundsError struct {
	RangeIndex int
	Range      DayRange
}

func (e *RangeBoundsError) Error() string {
	return fmt.Sprintf("range %d (%s): start must be at least 1 and no later than end",
		e.RangeIndex+1, e.Range)
}

// MaxListedDays bounds how many days CoverageError expands into Missing and
// Duplicated. Larger problems are reported through the span fields only.
const MaxListedDays = 10000

// CoverageError reports that the ranges do not tile 1..N exactly. The message
// never distinguishes gaps from overlaps; the span fields carry the detail.
type CoverageError struct {
	SimulationDays  int
	MissingSpans    []DayRange
	DuplicatedSpans []DayRange
	Missing         []int // expanded MissingSpans, empty past MaxListedDays
	Duplicated      []int // expanded DuplicatedSpans, empty past MaxListedDays
	OutOfBounds     bool  // some range reaches before day 1 or past the last day
}

func (e *CoverageError) Error() string {
	return CoverageMessage
}

// IsGap reports whether at least one day is uncovered.
func (e *CoverageError) IsGap() bool { return len(e.MissingSpans) > 0 }

// IsOverlap reports whether at least one day is covered twice.
func (e *CoverageError) IsOverlap() bool { return len(e.DuplicatedSpans) > 0 }

// ValidationErrors collects every problem found in one validation pass.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Messages returns one human-readable line per problem, in detection order.
func (v ValidationErrors) Messages() []string {
	out := make([]string, len(v))
	for i, err := range v {
		out[i] = err.Error()
	}
	return out
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	return v
}

// Messages extracts display lines from err. A ValidationErrors yields one line
// per entry; any other error yields its message.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Messages()
	}
	return []string{err.Error()}
}
