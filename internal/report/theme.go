package report

import (
	"fmt"
	"log/slog"
	"strings"

	darkmode "github.com/thiagokokada/dark-mode-go"
)

// ColorMode selects whether and how output is highlighted.
type ColorMode int

const (
	ColorNever ColorMode = iota
	ColorAuto
	ColorLight
	ColorDark
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorLight:
		return "light"
	case ColorDark:
		return "dark"
	default:
		return "never"
	}
}

func ParseColorMode(raw string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ColorNever.String():
		return ColorNever, nil
	case ColorAuto.String():
		return ColorAuto, nil
	case ColorLight.String():
		return ColorLight, nil
	case ColorDark.String():
		return ColorDark, nil
	default:
		return ColorNever, fmt.Errorf("unknown color mode %q (want never, auto, light or dark)", raw)
	}
}

type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

var detectDarkMode = darkmode.IsDarkMode

// theme resolves the highlight theme; ok is false when output stays plain.
func (m ColorMode) theme(isTerminal bool) (t Theme, ok bool) {
	switch m {
	case ColorLight:
		return ThemeLight, true
	case ColorDark:
		return ThemeDark, true
	case ColorAuto:
		if !isTerminal {
			return ThemeLight, false
		}
		if detectDarkMode != nil {
			dark, err := detectDarkMode()
			if err != nil {
				slog.Debug("detect dark-mode", slog.Any("error", err))
			} else if dark {
				return ThemeDark, true
			}
		}
		return ThemeLight, true
	default:
		return ThemeLight, false
	}
}
