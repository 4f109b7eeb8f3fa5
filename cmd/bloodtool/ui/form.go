package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FieldSpec describes one labelled input of a Form.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
	CharLimit   int
	Hint        string // rendered after the input, e.g. allowed values
}

type formField struct {
	spec  FieldSpec
	input textinput.Model
}

// Form is an ordered list of text inputs with one focused field. Only the
// rows around the focused field are rendered when the form is taller than
// its height.
type Form struct {
	fields []formField
	focus  int
	offset int
	height int
	width  int
	styles Styles
}

// NewForm builds a form with the first field focused.
func NewForm(styles Styles, specs []FieldSpec) Form {
	f := Form{styles: styles, width: 40}
	f.Sync(specs)
	return f
}

func (f *Form) newInput(spec FieldSpec) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = spec.Placeholder
	ti.CharLimit = spec.CharLimit
	if ti.CharLimit == 0 {
		ti.CharLimit = 64
	}
	ti.Width = f.width
	ti.PromptStyle = f.styles.Muted
	ti.TextStyle = f.styles.Input
	ti.SetValue(spec.Default)
	return ti
}

// Sync replaces the field list with specs. Inputs whose key survives keep
// their current value; new keys start at their default. Focus stays on the
// same key when it still exists.
func (f *Form) Sync(specs []FieldSpec) {
	focusedKey := f.FocusedKey()
	old := make(map[string]textinput.Model, len(f.fields))
	for _, fld := range f.fields {
		old[fld.spec.Key] = fld.input
	}

	fields := make([]formField, 0, len(specs))
	focus := -1
	for i, spec := range specs {
		input, ok := old[spec.Key]
		if !ok {
			input = f.newInput(spec)
		}
		input.Placeholder = spec.Placeholder
		input.Blur()
		if spec.Key == focusedKey {
			focus = i
		}
		fields = append(fields, formField{spec: spec, input: input})
	}
	f.fields = fields

	if focus < 0 {
		focus = min(f.focus, len(fields)-1)
	}
	f.setFocus(max(focus, 0))
}

func (f *Form) setFocus(i int) {
	if len(f.fields) == 0 {
		f.focus = 0
		return
	}
	if f.focus < len(f.fields) {
		f.fields[f.focus].input.Blur()
	}
	f.focus = i
	f.fields[i].input.Focus()
	f.scrollToFocus()
}

func (f *Form) scrollToFocus() {
	if f.height <= 0 {
		f.offset = 0
		return
	}
	if f.focus < f.offset {
		f.offset = f.focus
	}
	if f.focus >= f.offset+f.height {
		f.offset = f.focus - f.height + 1
	}
}

// SetSize sets the input width and the number of visible rows.
func (f *Form) SetSize(width, height int) {
	f.width = max(width, 10)
	f.height = height
	for i := range f.fields {
		f.fields[i].input.Width = f.width
	}
	f.scrollToFocus()
}

// Len returns the number of fields.
func (f Form) Len() int { return len(f.fields) }

// FocusedKey returns the key of the focused field, or "" for an empty form.
func (f Form) FocusedKey() string {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return ""
	}
	return f.fields[f.focus].spec.Key
}

// Focus moves focus to key. Unknown keys are ignored.
func (f *Form) Focus(key string) {
	for i, fld := range f.fields {
		if fld.spec.Key == key {
			f.setFocus(i)
			return
		}
	}
}

// FocusNext moves focus down, wrapping at the end.
func (f *Form) FocusNext() {
	if len(f.fields) > 0 {
		f.setFocus((f.focus + 1) % len(f.fields))
	}
}

// FocusPrev moves focus up, wrapping at the start.
func (f *Form) FocusPrev() {
	if len(f.fields) > 0 {
		f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
	}
}

// Has reports whether key is a field.
func (f Form) Has(key string) bool {
	return f.lookup(key) >= 0
}

func (f Form) lookup(key string) int {
	for i, fld := range f.fields {
		if fld.spec.Key == key {
			return i
		}
	}
	return -1
}

// Value returns the trimmed value of key.
func (f Form) Value(key string) string {
	if i := f.lookup(key); i >= 0 {
		return strings.TrimSpace(f.fields[i].input.Value())
	}
	return ""
}

// SetValue sets the value of key. Unknown keys are ignored.
func (f *Form) SetValue(key, value string) {
	if i := f.lookup(key); i >= 0 {
		f.fields[i].input.SetValue(value)
	}
}

// Int parses key as a whole number. A blank field is zero.
func (f Form) Int(key string) (int, error) {
	i := f.lookup(key)
	if i < 0 {
		return 0, fmt.Errorf("unknown field %q", key)
	}
	v := f.Value(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", f.fields[i].spec.Label)
	}
	return n, nil
}

// Count parses key as a repetition count clamped to [0, limit]. Used for
// layout, so unparsable input is zero.
func (f Form) Count(key string, limit int) int {
	n, err := f.Int(key)
	if err != nil || n < 0 {
		return 0
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// Update handles focus keys and forwards everything else to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.FocusNext()
			return nil
		case "shift+tab", "up":
			f.FocusPrev()
			return nil
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// View renders the visible rows as "Label: input".
func (f Form) View() string {
	if len(f.fields) == 0 {
		return ""
	}
	end := len(f.fields)
	start := 0
	if f.height > 0 {
		start = f.offset
		end = min(f.offset+f.height, len(f.fields))
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(f.styles.Muted.Render(fmt.Sprintf("  ↑ %d more", start)))
		sb.WriteString("\n")
	}
	for i := start; i < end; i++ {
		fld := f.fields[i]
		label := f.styles.Label
		if i == f.focus {
			label = f.styles.LabelFocused
		}
		sb.WriteString(label.Render(fld.spec.Label + ":"))
		sb.WriteString(" ")
		sb.WriteString(fld.input.View())
		if fld.spec.Hint != "" {
			sb.WriteString(" ")
			sb.WriteString(f.styles.Hint.Render(fld.spec.Hint))
		}
		sb.WriteString("\n")
	}
	if end < len(f.fields) {
		sb.WriteString(f.styles.Muted.Render(fmt.Sprintf("  ↓ %d more", len(f.fields)-end)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// errorLines flattens joined errors into one display line each.
func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, errorLines(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

// renderErrors renders one styled line per error.
func renderErrors(styles Styles, errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(styles.Error.Render("✗ " + e))
		sb.WriteString("\n")
	}
	return sb.String()
}

// collect appends err to errs when non-nil and returns the parsed value.
func collect(errs *[]error) func(n int, err error) int {
	return func(n int, err error) int {
		if err != nil {
			*errs = append(*errs, err)
		}
		return n
	}
}
