package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestForm_FocusCycles(t *testing.T) {
	f := NewForm(DefaultStyles(), []FieldSpec{
		{Key: "a", Label: "A"},
		{Key: "b", Label: "B"},
	})
	assert.Equal(t, "a", f.FocusedKey())

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "b", f.FocusedKey())

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "a", f.FocusedKey(), "focus wraps")

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "b", f.FocusedKey())
}

func TestForm_TypingGoesToFocusedField(t *testing.T) {
	f := NewForm(DefaultStyles(), []FieldSpec{
		{Key: "a", Label: "A"},
		{Key: "b", Label: "B", Default: "x"},
	})
	typeText(&f, "42")
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(&f, "y")

	assert.Equal(t, "42", f.Value("a"))
	assert.Equal(t, "xy", f.Value("b"))
}

func TestForm_SyncKeepsValuesByKey(t *testing.T) {
	f := NewForm(DefaultStyles(), []FieldSpec{
		{Key: "count", Label: "Count"},
		{Key: "item_0", Label: "Item 1"},
	})
	f.SetValue("item_0", "kept")
	f.Focus("item_0")

	f.Sync([]FieldSpec{
		{Key: "count", Label: "Count"},
		{Key: "item_0", Label: "Item 1"},
		{Key: "item_1", Label: "Item 2", Default: "fresh"},
	})
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, "kept", f.Value("item_0"))
	assert.Equal(t, "fresh", f.Value("item_1"))
	assert.Equal(t, "item_0", f.FocusedKey())

	f.Sync([]FieldSpec{{Key: "count", Label: "Count"}})
	assert.False(t, f.Has("item_0"))
	assert.Equal(t, "count", f.FocusedKey())
}

func TestForm_Int(t *testing.T) {
	f := NewForm(DefaultStyles(), []FieldSpec{
		{Key: "n", Label: "Number of Platoons"},
	})
	n, err := f.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "blank is zero")

	f.SetValue("n", " 12 ")
	n, err = f.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	f.SetValue("n", "twelve")
	_, err = f.Int("n")
	require.EqualError(t, err, "Number of Platoons must be a whole number")
	assert.Equal(t, 0, f.Count("n", 10))

	f.SetValue("n", "99")
	assert.Equal(t, 10, f.Count("n", 10))
}

func TestForm_ViewScrollsToFocus(t *testing.T) {
	var specs []FieldSpec
	for _, k := range []string{"one", "two", "three", "four", "five"} {
		specs = append(specs, FieldSpec{Key: k, Label: strings.ToUpper(k)})
	}
	f := NewForm(DefaultStyles(), specs)
	f.SetSize(20, 2)

	view := f.View()
	assert.Contains(t, view, "ONE")
	assert.NotContains(t, view, "THREE")
	assert.Contains(t, view, "3 more")

	f.Focus("five")
	view = f.View()
	assert.Contains(t, view, "FIVE")
	assert.NotContains(t, view, "ONE")
}
