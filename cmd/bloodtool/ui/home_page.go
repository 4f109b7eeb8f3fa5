package ui

import (
	"fmt"
	"strings"

	"bloodtool/internal/forms"

	tea "github.com/charmbracelet/bubbletea"
)

const keyUserName = "user_name"

// HomePageModel greets the planner and records their name.
type HomePageModel struct {
	form   Form
	styles Styles
	width  int
	height int
}

// NewHomePageModel creates the welcome page.
func NewHomePageModel(styles Styles) HomePageModel {
	return HomePageModel{
		form: NewForm(styles, []FieldSpec{
			{Key: keyUserName, Label: "Enter your name", Placeholder: "Name", CharLimit: 80},
		}),
		styles: styles,
	}
}

// SetSize updates the page dimensions.
func (m *HomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form.SetSize(max(w-24, 20), FormHeight(h))
}

// Load fills the form from a stored record.
func (m *HomePageModel) Load(h forms.Home) {
	m.form.SetValue(keyUserName, h.UserName)
}

// Update handles messages. Enter submits the name.
func (m HomePageModel) Update(msg tea.Msg) (HomePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		return m, emit(HomeSubmitted{Home: forms.Home{UserName: m.form.Value(keyUserName)}})
	}
	cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the page.
func (m HomePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Welcome to the Blood Logistics Tool"))
	sb.WriteString("\n")
	sb.WriteString(m.form.View())
	if name := m.form.Value(keyUserName); name != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Success.Render(fmt.Sprintf("Welcome, %s! Please navigate to the pages on the left to proceed.", name)))
		sb.WriteString("\n")
	}
	return sb.String()
}
