// Package conflict validates conflict-likelihood assessments over a simulation
// horizon. An assessment splits days 1..N into contiguous ranges and assigns
// each range a weighting across four combat-intensity levels.
package conflict

import (
	"encoding/json"
	"fmt"
)

// LevelCount is the number of conflict levels in a distribution.
const LevelCount = 4

// DistributionTotal is the sum every distribution must reach.
const DistributionTotal = 5

// MaxLevelWeight bounds a single level's weight.
const MaxLevelWeight = 5

// LevelLabels is the fixed label schema attached to every distribution.
var LevelLabels = [LevelCount]string{
	"1: Non-Combat",
	"2: Sustain Combat",
	"3: Assault Combat",
	"4: Extreme Combat",
}

// DayRange is a 1-indexed inclusive span of simulation days.
type DayRange struct {
	Start int
	End   int
}

// String renders the range as "start-end".
func (r DayRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of days covered, zero for an inverted range.
func (r DayRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// MarshalJSON encodes the range as a "start-end" string.
func (r DayRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a "start-end" string.
func (r *DayRange) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("day range must be a string: %w", err)
	}
	parsed, err := ParseDayRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Distribution weights the four conflict levels, in LevelLabels order.
type Distribution [LevelCount]int

// Sum returns the total weight.
func (d Distribution) Sum() int {
	total := 0
	for _, v := range d {
		total += v
	}
	return total
}

// LevelTable is a distribution tagged with its label schema.
type LevelTable struct {
	Labels       []string     `json:"Labels"`
	Distribution Distribution `json:"Distribution"`
}

// NewLevelTable attaches the fixed labels to d.
func NewLevelTable(d Distribution) LevelTable {
	labels := make([]string, LevelCount)
	copy(labels, LevelLabels[:])
	return LevelTable{Labels: labels, Distribution: d}
}

// RangeAssessment pairs a day range with its conflict levels.
type RangeAssessment struct {
	Days   DayRange   `json:"Days"`
	Levels LevelTable `json:"Conflict Levels"`
}

// Plan is an accepted conflict assessment. Ranges keep declaration order.
type Plan struct {
	SimulationDays int               `json:"Length of Simulation in Days"`
	PlatoonID      int               `json:"Medical Platoon ID"`
	BloodInventory int               `json:"Fresh Whole Blood Inventory on Hand (pints)"`
	Ranges         []RangeAssessment `json:"Conflict Ranges"`
}

// Submission is the raw form input for one conflict assessment.
type Submission struct {
	SimulationDays int
	PlatoonID      int
	BloodInventory int
	Ranges         []DayRange
	Distributions  []Distribution
}

// Plan validates the submission and returns the accepted plan stamped with
// the unit fields. On failure the returned error is a ValidationErrors.
func (s Submission) Plan() (Plan, error) {
	plan, err := Validate(s.SimulationDays, s.Ranges, s.Distributions)
	if err != nil {
		return Plan{}, err
	}
	plan.PlatoonID = s.PlatoonID
	plan.BloodInventory = s.BloodInventory
	return plan, nil
}
