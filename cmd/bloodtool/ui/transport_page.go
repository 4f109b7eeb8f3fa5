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
	keyTransportCompanyID = "transport_company_id"
	keyNumTransports      = "num_transports"
)

func transportKey(field string, i int) string { return fmt.Sprintf("%s_%d", field, i) }

func deliveryKey(field string, i, j int) string { return fmt.Sprintf("%s_%d_%d", field, i, j) }

var methodHint = func() string {
	names := make([]string, len(forms.Methods))
	for i, m := range forms.Methods {
		names[i] = string(m)
	}
	return "(" + strings.Join(names, ", ") + ")"
}()

// TransportPageModel edits the transport options and their delivery schedules.
type TransportPageModel struct {
	form          Form
	maxTransports int
	maxDeliveries int
	errors        []string
	styles        Styles
	width         int
	height        int
}

// NewTransportPageModel creates the transport page. maxTransports caps the
// options and maxDeliveries caps each schedule.
func NewTransportPageModel(styles Styles, maxTransports, maxDeliveries int) TransportPageModel {
	if maxDeliveries <= 0 {
		maxDeliveries = forms.DefaultMaxDeliveries
	}
	m := TransportPageModel{maxTransports: maxTransports, maxDeliveries: maxDeliveries, styles: styles}
	m.form = NewForm(styles, m.specs())
	return m
}

// specs lays out the form from the count fields currently entered.
func (m TransportPageModel) specs() []FieldSpec {
	specs := []FieldSpec{
		{Key: keyTransportCompanyID, Label: "Medical Company ID", Default: "0", CharLimit: 9},
		{Key: keyNumTransports, Label: "Number of Transportation Options", Default: "0", CharLimit: 4,
			Hint: fmt.Sprintf("(max %d)", m.maxTransports)},
	}
	options := m.form.Count(keyNumTransports, m.maxTransports)
	for i := 0; i < options; i++ {
		n := i + 1
		specs = append(specs,
			FieldSpec{Key: transportKey("method", i), Label: fmt.Sprintf("Transportation Method %d", n),
				Default: string(forms.DefaultMethod), CharLimit: 16, Hint: methodHint},
			FieldSpec{Key: transportKey("lon", i), Label: fmt.Sprintf("Longitude for Blood Resource Location %d", n), CharLimit: 24},
			FieldSpec{Key: transportKey("lat", i), Label: fmt.Sprintf("Latitude for Blood Resource Location %d", n), CharLimit: 24},
			FieldSpec{Key: transportKey("platoon_id", i), Label: fmt.Sprintf("Medical Platoon ID %d", n), Default: "0", CharLimit: 9},
			FieldSpec{Key: transportKey("days_away", i), Label: fmt.Sprintf("Days Away from Platoon Location %d", n), Default: "0", CharLimit: 9},
			FieldSpec{Key: transportKey("num_dates", i), Label: fmt.Sprintf("Number of Delivery Dates for Transport %d", n),
				Default: "0", CharLimit: 4, Hint: fmt.Sprintf("(max %d)", m.maxDeliveries)},
		)
		dates := m.form.Count(transportKey("num_dates", i), m.maxDeliveries)
		for j := 0; j < dates; j++ {
			d := fmt.Sprintf("Delivery %d for Transport %d", j+1, n)
			specs = append(specs,
				FieldSpec{Key: deliveryKey("date", i, j), Label: d + " Date", Default: forms.Today(), CharLimit: 10, Placeholder: "YYYY-MM-DD"},
				FieldSpec{Key: deliveryKey("pickup", i, j), Label: d + " Pickup Time", Default: forms.DefaultPickup, CharLimit: 5, Placeholder: "HH:MM"},
				FieldSpec{Key: deliveryKey("dropoff", i, j), Label: d + " Drop-off Time", Default: forms.DefaultDropoff, CharLimit: 5, Placeholder: "HH:MM"},
				FieldSpec{Key: deliveryKey("capacity", i, j), Label: d + " Capacity (pints)", Default: "0", CharLimit: 9},
			)
		}
	}
	return specs
}

func (m *TransportPageModel) resync() {
	m.form.Sync(m.specs())
}

// countKeys returns the values of every count field, used to detect layout changes.
func (m TransportPageModel) countKeys() string {
	var sb strings.Builder
	sb.WriteString(m.form.Value(keyNumTransports))
	for i := 0; i < m.form.Count(keyNumTransports, m.maxTransports); i++ {
		sb.WriteString("|")
		sb.WriteString(m.form.Value(transportKey("num_dates", i)))
	}
	return sb.String()
}

// SetSize updates the page dimensions.
func (m *TransportPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form.SetSize(max(w-50, 16), FormHeight(h)-len(m.errors)-1)
}

// Load fills the form from a stored record.
func (m *TransportPageModel) Load(t forms.TransportInfo) {
	m.form.SetValue(keyTransportCompanyID, strconv.Itoa(t.CompanyID))
	m.form.SetValue(keyNumTransports, strconv.Itoa(len(t.Options)))
	m.resync()
	for i, opt := range t.Options {
		m.form.SetValue(transportKey("num_dates", i), strconv.Itoa(len(opt.Schedule)))
	}
	m.resync()
	for i, opt := range t.Options {
		m.form.SetValue(transportKey("method", i), string(opt.Method))
		m.form.SetValue(transportKey("lon", i), opt.Coordinates.Longitude)
		m.form.SetValue(transportKey("lat", i), opt.Coordinates.Latitude)
		m.form.SetValue(transportKey("platoon_id", i), strconv.Itoa(opt.PlatoonID))
		m.form.SetValue(transportKey("days_away", i), strconv.Itoa(opt.DaysAway))
		for j, d := range opt.Schedule {
			m.form.SetValue(deliveryKey("date", i, j), d.Date)
			m.form.SetValue(deliveryKey("pickup", i, j), d.Pickup)
			m.form.SetValue(deliveryKey("dropoff", i, j), d.Dropoff)
			m.form.SetValue(deliveryKey("capacity", i, j), strconv.Itoa(d.CapacityPints))
		}
	}
	m.errors = nil
}

// Update handles messages. Enter validates and submits the record.
func (m TransportPageModel) Update(msg tea.Msg) (TransportPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		info, err := m.record()
		if err != nil {
			m.errors = errorLines(err)
			return m, nil
		}
		m.errors = nil
		return m, emit(TransportSubmitted{Transport: info})
	}

	before := m.countKeys()
	cmd := m.form.Update(msg)
	if m.countKeys() != before {
		m.resync()
	}
	return m, cmd
}

// resolveMethod maps free text onto a known method. Unknown text is kept
// verbatim so validation reports it.
func resolveMethod(text string) forms.Method {
	if method, ok := forms.ResolveMethod(text); ok {
		return method
	}
	return forms.Method(strings.TrimSpace(text))
}

// record parses and validates the form.
func (m TransportPageModel) record() (forms.TransportInfo, error) {
	var errs []error
	info := forms.TransportInfo{CompanyID: collect(&errs)(m.form.Int(keyTransportCompanyID))}

	count, err := m.form.Int(keyNumTransports)
	switch {
	case err != nil:
		errs = append(errs, err)
	case count < 0:
		errs = append(errs, errors.New("number of transportation options must not be negative"))
	case count > m.maxTransports:
		errs = append(errs, fmt.Errorf("at most %d transportation options allowed", m.maxTransports))
	}

	options := m.form.Count(keyNumTransports, m.maxTransports)
	info.Options = make([]forms.Transport, 0, options)
	for i := 0; i < options; i++ {
		opt := forms.Transport{
			Method: resolveMethod(m.form.Value(transportKey("method", i))),
			Coordinates: forms.Coordinates{
				Longitude: m.form.Value(transportKey("lon", i)),
				Latitude:  m.form.Value(transportKey("lat", i)),
			},
			PlatoonID: collect(&errs)(m.form.Int(transportKey("platoon_id", i))),
			DaysAway:  collect(&errs)(m.form.Int(transportKey("days_away", i))),
		}
		if n, err := m.form.Int(transportKey("num_dates", i)); err != nil {
			errs = append(errs, err)
		} else if n < 0 {
			errs = append(errs, fmt.Errorf("transport %d: number of delivery dates must not be negative", i+1))
		} else if n > m.maxDeliveries {
			errs = append(errs, fmt.Errorf("transport %d: at most %d delivery dates allowed (got %d)", i+1, m.maxDeliveries, n))
		}
		dates := m.form.Count(transportKey("num_dates", i), m.maxDeliveries)
		opt.Schedule = make([]forms.Delivery, 0, dates)
		for j := 0; j < dates; j++ {
			opt.Schedule = append(opt.Schedule, forms.Delivery{
				Date:          m.form.Value(deliveryKey("date", i, j)),
				Pickup:        m.form.Value(deliveryKey("pickup", i, j)),
				Dropoff:       m.form.Value(deliveryKey("dropoff", i, j)),
				CapacityPints: collect(&errs)(m.form.Int(deliveryKey("capacity", i, j))),
			})
		}
		info.Options = append(info.Options, opt)
	}

	if err := info.Validate(m.maxDeliveries); err != nil {
		errs = append(errs, err)
	}
	return info, errors.Join(errs...)
}

// suggestions lists "did you mean" hints for method fields that are not an
// exact match.
func (m TransportPageModel) suggestions() []string {
	var out []string
	for i := 0; i < m.form.Count(keyNumTransports, m.maxTransports); i++ {
		text := m.form.Value(transportKey("method", i))
		if text == "" {
			continue
		}
		if method, ok := forms.ResolveMethod(text); !ok && method != "" {
			out = append(out, fmt.Sprintf("Transport %d: did you mean %s?", i+1, method))
		}
	}
	return out
}

// View renders the page.
func (m TransportPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Transport Information Page"))
	sb.WriteString("\n")
	sb.WriteString(m.form.View())
	for _, s := range m.suggestions() {
		sb.WriteString(m.styles.Warning.Render(s))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: Submit Transport Info"))
	sb.WriteString("\n")
	sb.WriteString(renderErrors(m.styles, m.errors))
	return sb.String()
}
