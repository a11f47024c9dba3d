package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// viewerTheme wraps an existing theme, trimming padding and setting the
// text size from the configured font size.
type viewerTheme struct {
	fyne.Theme
	textSize float32
}

var _ fyne.Theme = (*viewerTheme)(nil)

func (t *viewerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 1.0
	case theme.SizeNameText:
		if t.textSize > 0 {
			return t.textSize
		}
	}
	return t.Theme.Size(name)
}

// The image area is black regardless of the base variant.
func (t *viewerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.Black
	}
	return t.Theme.Color(name, variant)
}

// NewViewerTheme creates a theme wrapper over base. A textSize of zero
// keeps the base text size.
func NewViewerTheme(base fyne.Theme, textSize float32) fyne.Theme {
	return &viewerTheme{Theme: base, textSize: textSize}
}
