// Package forms holds the typed records behind each page of the planning tool
// and the validation each page applies before its data is accepted.
package forms

import (
	"bloodtool/internal/conflict"
)

// Document is everything the tool persists: one record per page plus the
// log of accepted conflict assessments.
type Document struct {
	Home      Home            `json:"home"`
	Company   Company         `json:"medical_logistics_company"`
	Transport TransportInfo   `json:"transport_info"`
	Entries   []conflict.Plan `json:"user_data"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Company:   Company{Platoons: []Platoon{}},
		Transport: TransportInfo{Options: []Transport{}},
		Entries:   []conflict.Plan{},
	}
}

// Home is the welcome page record.
type Home struct {
	UserName string `json:"user_name"`
}

// Clone returns a deep copy so callers can stage edits and commit them only
// after a successful save.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}
	out := &Document{
		Home:    d.Home,
		Company: Company{CompanyID: d.Company.CompanyID, Platoons: append([]Platoon{}, d.Company.Platoons...)},
		Transport: TransportInfo{
			CompanyID: d.Transport.CompanyID,
			Options:   make([]Transport, len(d.Transport.Options)),
		},
		Entries: make([]conflict.Plan, len(d.Entries)),
	}
	for i, opt := range d.Transport.Options {
		opt.Schedule = append([]Delivery{}, opt.Schedule...)
		out.Transport.Options[i] = opt
	}
	for i, p := range d.Entries {
		out.Entries[i] = clonePlan(p)
	}
	return out
}

func clonePlan(p conflict.Plan) conflict.Plan {
	ranges := make([]conflict.RangeAssessment, len(p.Ranges))
	for i, r := range p.Ranges {
		r.Levels.Labels = append([]string{}, r.Levels.Labels...)
		ranges[i] = r
	}
	p.Ranges = ranges
	return p
}

// AppendEntry adds an accepted plan to the log.
func (d *Document) AppendEntry(p conflict.Plan) {
	d.Entries = append(d.Entries, p)
}

// Normalize replaces nil slices with empty ones so the JSON form is stable.
func (d *Document) Normalize() {
	if d.Company.Platoons == nil {
		d.Company.Platoons = []Platoon{}
	}
	if d.Transport.Options == nil {
		d.Transport.Options = []Transport{}
	}
	for i := range d.Transport.Options {
		if d.Transport.Options[i].Schedule == nil {
			d.Transport.Options[i].Schedule = []Delivery{}
		}
	}
	if d.Entries == nil {
		d.Entries = []conflict.Plan{}
	}
}
