package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Color is the tag color used when rendering a component's output.
type Color string

// Supported colors.
const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorWhite  Color = "white"
	ColorRed    Color = "red"
	ColorCyan   Color = "cyan"
)

// DefaultColor is applied to components that do not declare one.
const DefaultColor = ColorYellow

var colors = []Color{ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorWhite, ColorRed, ColorCyan}

// ParseColor parses a color name case-insensitively. An empty name yields DefaultColor.
func ParseColor(name string) (Color, error) {
	if name == "" {
		return DefaultColor, nil
	}
	for _, c := range colors {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrInvalidColor, "unsupported component color"), "color", name)
}
