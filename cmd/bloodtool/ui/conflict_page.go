package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bloodtool/internal/conflict"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	keySimulationDays = "simulation_days"
	keyPlatoonID      = "med_platoon_id"
	keyInventory      = "blood_inventory"
	keyNumRanges      = "num_ranges"
)

const daysPerWeek = 7

func rangeKey(i int) string { return fmt.Sprintf("range_%d", i) }

func levelKey(i, level int) string { return fmt.Sprintf("range_%d_level_%d", i, level) }

// weeklyRange is the default span of range i: one week, clipped to the horizon.
func weeklyRange(i, days int) conflict.DayRange {
	start := i*daysPerWeek + 1
	end := start + daysPerWeek - 1
	if days > 0 && end > days {
		end = max(days, start)
	}
	return conflict.DayRange{Start: start, End: end}
}

// ConflictPageModel collects a conflict assessment and shows the accepted log.
type ConflictPageModel struct {
	form       Form
	maxRanges  int
	exportPath string
	entries    []conflict.Plan
	errors     []string
	stored     viewport.Model
	table      *SimpleTable
	styles     Styles
	width      int
	height     int
}

// NewConflictPageModel creates the conflict prediction page. maxRanges caps
// the number of day ranges; exportPath is shown next to the export key.
func NewConflictPageModel(styles Styles, maxRanges int, exportPath string) ConflictPageModel {
	m := ConflictPageModel{
		maxRanges:  maxRanges,
		exportPath: exportPath,
		stored:     viewport.New(80, 10),
		styles:     styles,
	}
	m.form = NewForm(styles, m.specs())
	m.refreshStored()
	return m
}

// rangeCount is the entered count, or one range per week when blank.
func (m ConflictPageModel) rangeCount() int {
	if m.form.Value(keyNumRanges) != "" {
		return m.form.Count(keyNumRanges, m.maxRanges)
	}
	days := m.form.Count(keySimulationDays, 0)
	weeks := (days + daysPerWeek - 1) / daysPerWeek
	if m.maxRanges > 0 {
		weeks = min(weeks, m.maxRanges)
	}
	return weeks
}

func (m ConflictPageModel) specs() []FieldSpec {
	specs := []FieldSpec{
		{Key: keySimulationDays, Label: "Length of Simulation in Days", Default: "0", CharLimit: 6},
		{Key: keyPlatoonID, Label: "Medical Platoon ID", Default: "0", CharLimit: 9},
		{Key: keyInventory, Label: "Fresh Whole Blood Inventory on Hand (pints)", Default: "0", CharLimit: 9},
		{Key: keyNumRanges, Label: "Number of Day Ranges", CharLimit: 4, Placeholder: "weekly",
			Hint: fmt.Sprintf("(max %d, blank for one per week)", m.maxRanges)},
	}
	days := m.form.Count(keySimulationDays, 0)
	for i := 0; i < m.rangeCount(); i++ {
		n := i + 1
		specs = append(specs, FieldSpec{
			Key:         rangeKey(i),
			Label:       fmt.Sprintf("Range %d Days", n),
			Default:     weeklyRange(i, days).String(),
			Placeholder: "start-end",
			CharLimit:   13,
		})
		for level, label := range conflict.LevelLabels {
			specs = append(specs, FieldSpec{
				Key:       levelKey(i, level),
				Label:     fmt.Sprintf("Range %d %s", n, label),
				Default:   "0",
				CharLimit: 1,
				Hint:      fmt.Sprintf("(0-%d)", conflict.MaxLevelWeight),
			})
		}
	}
	return specs
}

// resync rebuilds the form after a layout field changed. Range fields
// still holding the weekly default for oldDays follow the new horizon.
func (m *ConflictPageModel) resync(oldDays int) {
	m.form.Sync(m.specs())
	days := m.form.Count(keySimulationDays, 0)
	if days == oldDays {
		return
	}
	for i := 0; i < m.rangeCount(); i++ {
		if m.form.Value(rangeKey(i)) == weeklyRange(i, oldDays).String() {
			m.form.SetValue(rangeKey(i), weeklyRange(i, days).String())
		}
	}
}

func (m ConflictPageModel) layoutKey() string {
	return m.form.Value(keySimulationDays) + "|" + m.form.Value(keyNumRanges)
}

// SetSize updates the page dimensions.
func (m *ConflictPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	formRows := FormHeight(h) / 2
	m.form.SetSize(max(w-50, 10), formRows-len(m.errors))
	m.stored.Width = w
	m.stored.Height = max(h-formRows-PageChromeHeight-len(m.hints()), 3)
	m.refreshStored()
}

// SetEntries replaces the accepted log shown under the form.
func (m *ConflictPageModel) SetEntries(entries []conflict.Plan) {
	m.entries = entries
	m.refreshStored()
}

func (m *ConflictPageModel) refreshStored() {
	m.table = NewSimpleTable("Stored User Data", []string{"#", "Days", "Platoon", "Inventory (pints)", "Ranges"})
	m.table.Empty = "No accepted assessments yet."
	for i, p := range m.entries {
		spans := make([]string, len(p.Ranges))
		for j, r := range p.Ranges {
			spans[j] = r.Days.String()
		}
		m.table.AddRow(
			strconv.Itoa(i+1),
			strconv.Itoa(p.SimulationDays),
			strconv.Itoa(p.PlatoonID),
			strconv.Itoa(p.BloodInventory),
			strings.Join(spans, ", "),
		)
	}
	m.table.MaxWidth = 40

	content := m.table.View(m.styles)
	if len(m.entries) > 0 {
		content += "\n" + RenderJSON(m.entries, m.width, m.styles.Theme.IsDark)
	}
	m.stored.SetContent(content)
}

// Update handles messages. Enter validates and submits the assessment.
func (m ConflictPageModel) Update(msg tea.Msg) (ConflictPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			plan, err := m.plan()
			if err != nil {
				m.errors = errorLines(err)
				return m, nil
			}
			m.errors = nil
			return m, emit(ConflictSubmitted{Plan: plan})
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.stored, cmd = m.stored.Update(msg)
			return m, cmd
		}
	}

	before := m.layoutKey()
	oldDays := m.form.Count(keySimulationDays, 0)
	cmd := m.form.Update(msg)
	if m.layoutKey() != before {
		m.resync(oldDays)
	}
	return m, cmd
}

// submission parses the form. Parse problems are returned before any
// validation runs.
func (m ConflictPageModel) submission() (conflict.Submission, error) {
	var errs []error
	sub := conflict.Submission{
		SimulationDays: collect(&errs)(m.form.Int(keySimulationDays)),
		PlatoonID:      collect(&errs)(m.form.Int(keyPlatoonID)),
		BloodInventory: collect(&errs)(m.form.Int(keyInventory)),
	}
	if m.form.Value(keyNumRanges) != "" {
		n, err := m.form.Int(keyNumRanges)
		switch {
		case err != nil:
			errs = append(errs, err)
		case n < 1:
			errs = append(errs, errors.New("number of day ranges must be at least 1"))
		case n > m.maxRanges:
			errs = append(errs, fmt.Errorf("at most %d day ranges allowed", m.maxRanges))
		}
	}

	for i := 0; i < m.rangeCount(); i++ {
		r, err := conflict.ParseDayRange(m.form.Value(rangeKey(i)))
		if err != nil {
			errs = append(errs, fmt.Errorf("range %d: %w", i+1, err))
		}
		var d conflict.Distribution
		for level := range d {
			d[level] = collect(&errs)(m.form.Int(levelKey(i, level)))
		}
		sub.Ranges = append(sub.Ranges, r)
		sub.Distributions = append(sub.Distributions, d)
	}
	return sub, errors.Join(errs...)
}

// plan parses the form and runs the conflict validator.
func (m ConflictPageModel) plan() (conflict.Plan, error) {
	sub, err := m.submission()
	if err != nil {
		return conflict.Plan{}, err
	}
	return sub.Plan()
}

// hints returns the live per-range sum warnings.
func (m ConflictPageModel) hints() []string {
	var out []string
	for i := 0; i < m.rangeCount(); i++ {
		sum := 0
		for level := 0; level < conflict.LevelCount; level++ {
			v, err := m.form.Int(levelKey(i, level))
			if err == nil {
				sum += v
			}
		}
		if sum != conflict.DistributionTotal {
			out = append(out, fmt.Sprintf("Range %d: levels sum to %d (need %d)", i+1, sum, conflict.DistributionTotal))
		}
	}
	return out
}

// View renders the page.
func (m ConflictPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Conflict Prediction Page"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Based on your current intelligence, the likelihood of being at each conflict level..."))
	sb.WriteString("\n\n")
	sb.WriteString(m.form.View())
	for _, h := range m.hints() {
		sb.WriteString(m.styles.Warning.Render(h))
		sb.WriteString("\n")
	}
	sb.WriteString(renderErrors(m.styles, m.errors))
	sb.WriteString("\n")
	sb.WriteString(m.stored.View())
	sb.WriteString("\n")
	help := "enter: Submit • pgup/pgdown: scroll stored data"
	if len(m.entries) > 0 {
		help += fmt.Sprintf(" • ctrl+e: Download JSON File (%s)", m.exportPath)
	}
	sb.WriteString(m.styles.Muted.Render(help))
	sb.WriteString("\n")
	return sb.String()
}
