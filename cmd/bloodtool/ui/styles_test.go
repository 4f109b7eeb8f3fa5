package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("BLOODTOOL_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when BLOODTOOL_DARK_MODE=1")
	}

	t.Setenv("BLOODTOOL_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when BLOODTOOL_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black COLORFGBG background")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("BLOODTOOL_DARK_MODE", "")

	if !ThemeFor("dark").IsDark {
		t.Error("expected dark theme for \"dark\"")
	}
	if ThemeFor(" Light ").IsDark {
		t.Error("expected light theme for \"Light\"")
	}
	if ThemeFor("auto").IsDark {
		t.Error("expected auto to fall back to light theme")
	}
}
