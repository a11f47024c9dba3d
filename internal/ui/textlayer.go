package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"imgmanage/internal/overlay"
)

// outline offsets, drawn behind the text in the outline color
var outlineOffsets = []fyne.Position{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

// TextLayer draws the overlay registry's text objects over the image.
type TextLayer struct {
	reg   *overlay.Registry
	layer *fyne.Container
}

// NewTextLayer creates a layer that redraws whenever reg changes.
func NewTextLayer(reg *overlay.Registry) *TextLayer {
	tl := &TextLayer{reg: reg, layer: container.NewWithoutLayout()}
	reg.OnChange(tl.Refresh)
	tl.Refresh()
	return tl
}

// Container returns the canvas object holding the text.
func (tl *TextLayer) Container() fyne.CanvasObject { return tl.layer }

// Refresh rebuilds the canvas objects from the registry.
func (tl *TextLayer) Refresh() {
	var objs []fyne.CanvasObject
	for _, t := range tl.reg.Objects() {
		objs = append(objs, textObjects(t)...)
	}
	tl.layer.Objects = objs
	tl.layer.Refresh()
}

func textObjects(t overlay.Text) []fyne.CanvasObject {
	st := t.Style
	style := fyne.TextStyle{Bold: st.Font.Bold, Italic: st.Font.Italic, Monospace: st.Font.Monospace}
	size := fyne.MeasureText(t.Text, st.Font.Size, style)
	pos := fyne.NewPos(t.Pos.X, t.Pos.Y)
	switch st.Align {
	case overlay.AlignCenter:
		pos.X -= size.Width / 2
	case overlay.AlignRight:
		pos.X -= size.Width
	}

	mk := func(c fyne.Position, col color.Color) *canvas.Text {
		txt := canvas.NewText(t.Text, col)
		txt.TextSize = st.Font.Size
		txt.TextStyle = style
		txt.Move(c)
		txt.Resize(size)
		return txt
	}
	var objs []fyne.CanvasObject
	if st.Outline {
		for _, off := range outlineOffsets {
			objs = append(objs, mk(pos.Add(off), st.OutlineColor))
		}
	}
	return append(objs, mk(pos, st.Color))
}
