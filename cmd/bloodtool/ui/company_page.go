package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bloodtool/internal/forms"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	keyCompanyID   = "company_id"
	keyNumPlatoons = "num_platoons"
)

func platoonKey(field string, i int) string { return fmt.Sprintf("%s_%d", field, i) }

// CompanyPageModel edits the Medical Logistics Company record.
type CompanyPageModel struct {
	form        Form
	maxPlatoons int
	errors      []string
	styles      Styles
	width       int
	height      int
}

// NewCompanyPageModel creates the company page. maxPlatoons caps the number
// of platoon sections.
func NewCompanyPageModel(styles Styles, maxPlatoons int) CompanyPageModel {
	m := CompanyPageModel{maxPlatoons: maxPlatoons, styles: styles}
	m.form = NewForm(styles, m.specs(0))
	return m
}

func (m CompanyPageModel) specs(platoons int) []FieldSpec {
	specs := []FieldSpec{
		{Key: keyCompanyID, Label: "Medical Logistics Company ID", Default: "0", CharLimit: 9},
		{Key: keyNumPlatoons, Label: "Number of Platoons", Default: "0", CharLimit: 4,
			Hint: fmt.Sprintf("(max %d)", m.maxPlatoons)},
	}
	for i := 0; i < platoons; i++ {
		n := i + 1
		specs = append(specs,
			FieldSpec{Key: platoonKey("pid", i), Label: fmt.Sprintf("Platoon ID %d", n), CharLimit: 32},
			FieldSpec{Key: platoonKey("size", i), Label: fmt.Sprintf("Platoon Size %d", n), Default: "0", CharLimit: 9},
			FieldSpec{Key: platoonKey("days", i), Label: fmt.Sprintf("Days Away from Home Base (Platoon %d)", n), Default: "0", CharLimit: 9},
		)
	}
	return specs
}

func (m *CompanyPageModel) resync() {
	m.form.Sync(m.specs(m.form.Count(keyNumPlatoons, m.maxPlatoons)))
}

// SetSize updates the page dimensions.
func (m *CompanyPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form.SetSize(max(w-44, 16), FormHeight(h)-len(m.errors))
}

// Load fills the form from a stored record.
func (m *CompanyPageModel) Load(c forms.Company) {
	m.form.SetValue(keyCompanyID, strconv.Itoa(c.CompanyID))
	m.form.SetValue(keyNumPlatoons, strconv.Itoa(len(c.Platoons)))
	m.resync()
	for i, p := range c.Platoons {
		m.form.SetValue(platoonKey("pid", i), p.ID)
		m.form.SetValue(platoonKey("size", i), strconv.Itoa(p.Size))
		m.form.SetValue(platoonKey("days", i), strconv.Itoa(p.DaysAway))
	}
	m.errors = nil
}

// Update handles messages. Enter validates and submits the record.
func (m CompanyPageModel) Update(msg tea.Msg) (CompanyPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		company, err := m.record()
		if err != nil {
			m.errors = errorLines(err)
			return m, nil
		}
		m.errors = nil
		return m, emit(CompanySubmitted{Company: company})
	}

	before := m.form.Value(keyNumPlatoons)
	cmd := m.form.Update(msg)
	if m.form.Value(keyNumPlatoons) != before {
		m.resync()
	}
	return m, cmd
}

// record parses and validates the form.
func (m CompanyPageModel) record() (forms.Company, error) {
	var errs []error
	c := forms.Company{CompanyID: collect(&errs)(m.form.Int(keyCompanyID))}

	count, err := m.form.Int(keyNumPlatoons)
	switch {
	case err != nil:
		errs = append(errs, err)
	case count < 0:
		errs = append(errs, errors.New("number of platoons must not be negative"))
	case count > m.maxPlatoons:
		errs = append(errs, fmt.Errorf("at most %d platoons allowed", m.maxPlatoons))
	}

	n := m.form.Count(keyNumPlatoons, m.maxPlatoons)
	c.Platoons = make([]forms.Platoon, 0, n)
	for i := 0; i < n; i++ {
		c.Platoons = append(c.Platoons, forms.Platoon{
			ID:       m.form.Value(platoonKey("pid", i)),
			Size:     collect(&errs)(m.form.Int(platoonKey("size", i))),
			DaysAway: collect(&errs)(m.form.Int(platoonKey("days", i))),
		})
	}

	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}
	return c, errors.Join(errs...)
}

// View renders the page.
func (m CompanyPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Medical Logistics Company Page"))
	sb.WriteString("\n")
	sb.WriteString(m.form.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: Save Medical Logistics Company Info"))
	sb.WriteString("\n")
	sb.WriteString(renderErrors(m.styles, m.errors))
	return sb.String()
}
