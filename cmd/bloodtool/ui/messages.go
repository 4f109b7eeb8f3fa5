package ui

import (
	"bloodtool/internal/conflict"
	"bloodtool/internal/forms"

	tea "github.com/charmbracelet/bubbletea"
)

// Page submit messages. A page emits one only after its input validated.
type (
	HomeSubmitted      struct{ Home forms.Home }
	CompanySubmitted   struct{ Company forms.Company }
	TransportSubmitted struct{ Transport forms.TransportInfo }
	ConflictSubmitted  struct{ Plan conflict.Plan }
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
