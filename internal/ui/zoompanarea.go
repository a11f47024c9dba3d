package ui

import (
	"fmt"
	"image"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	defaultMinZoom        float32 = 0.1
	defaultMaxZoom        float32 = 10.0
	defaultZoomScrollStep float32 = 0.1
)

// ScaleMode decides how a new image is fitted to the view.
type ScaleMode int

const (
	ScaleNone   ScaleMode = iota // actual size
	ScaleShrink                  // shrink to fit, never enlarge
	ScaleExact                   // fit to the view
)

var scaleNames = [...]string{"none", "shrink", "exact"}

func (s ScaleMode) String() string {
	if s < 0 || int(s) >= len(scaleNames) {
		return fmt.Sprintf("scale(%d)", int(s))
	}
	return scaleNames[s]
}

// Next returns the mode after s, wrapping around.
func (s ScaleMode) Next() ScaleMode {
	return (s + 1) % ScaleMode(len(scaleNames))
}

// ParseScale parses a scale mode name.
func ParseScale(s string) (ScaleMode, error) {
	for i, name := range scaleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return ScaleMode(i), nil
		}
	}
	return ScaleNone, fmt.Errorf("unknown scale mode %q (want one of %s)", s, strings.Join(scaleNames[:], ", "))
}

// ZoomPanArea displays an image with a scale mode, keyboard zoom, mouse
// wheel zoom and drag panning.
type ZoomPanArea struct {
	widget.BaseWidget

	originalImg image.Image
	raster      *canvas.Raster
	scaled      image.Image
	scaledZoom  float64

	scale      ScaleMode
	zoomFactor float32
	panOffset  fyne.Position
	// userZoomed stops a resize from refitting the image.
	userZoomed bool

	minZoom float32
	maxZoom float32

	isPanning    bool
	lastMousePos fyne.Position

	OnInteraction func()
}

// NewZoomPanArea creates an empty view using scale.
func NewZoomPanArea(scale ScaleMode, onInteraction func()) *ZoomPanArea {
	zpa := &ZoomPanArea{
		scale:         scale,
		zoomFactor:    1.0,
		minZoom:       defaultMinZoom,
		maxZoom:       defaultMaxZoom,
		OnInteraction: onInteraction,
	}
	zpa.raster = canvas.NewRaster(zpa.draw)
	zpa.ExtendBaseWidget(zpa)
	return zpa
}

// Image returns the displayed image, or nil.
func (zpa *ZoomPanArea) Image() image.Image { return zpa.originalImg }

// SetImage replaces the displayed image and refits it.
func (zpa *ZoomPanArea) SetImage(img image.Image) {
	zpa.originalImg = img
	zpa.scaled = nil
	zpa.Reset()
}

// Scale returns the current scale mode.
func (zpa *ZoomPanArea) Scale() ScaleMode { return zpa.scale }

// SetScale switches the scale mode and refits the image.
func (zpa *ZoomPanArea) SetScale(s ScaleMode) {
	zpa.scale = s
	zpa.Reset()
}

// ZoomFactor returns the current magnification.
func (zpa *ZoomPanArea) ZoomFactor() float32 { return zpa.zoomFactor }

// Resize refits the image unless the user has zoomed or panned it.
func (zpa *ZoomPanArea) Resize(size fyne.Size) {
	zpa.BaseWidget.Resize(size)
	if !zpa.userZoomed {
		zpa.Reset()
	}
}

// fit returns the zoom factor the scale mode asks for.
func (zpa *ZoomPanArea) fit() float32 {
	if zpa.originalImg == nil || zpa.Size().Width <= 0 || zpa.Size().Height <= 0 {
		return 1.0
	}
	b := zpa.originalImg.Bounds()
	zoomW := zpa.Size().Width / float32(b.Dx())
	zoomH := zpa.Size().Height / float32(b.Dy())
	z := min(zoomW, zoomH)
	switch zpa.scale {
	case ScaleNone:
		return 1.0
	case ScaleShrink:
		return min(z, 1.0)
	}
	return z
}

// Reset applies the scale mode and centers the image.
func (zpa *ZoomPanArea) Reset() {
	zpa.userZoomed = false
	zpa.zoomFactor = zpa.fit()
	zpa.center()
	zpa.Refresh()
}

func (zpa *ZoomPanArea) center() {
	zpa.panOffset = fyne.Position{}
	if zpa.originalImg == nil {
		return
	}
	b := zpa.originalImg.Bounds()
	zpa.panOffset.X = (zpa.Size().Width - float32(b.Dx())*zpa.zoomFactor) / 2
	zpa.panOffset.Y = (zpa.Size().Height - float32(b.Dy())*zpa.zoomFactor) / 2
}

// zoomTo sets the zoom factor, keeping the view center fixed.
func (zpa *ZoomPanArea) zoomTo(factor float32) {
	factor = max(zpa.minZoom, min(zpa.maxZoom, factor))
	cx, cy := zpa.Size().Width/2, zpa.Size().Height/2
	imgX := (cx - zpa.panOffset.X) / zpa.zoomFactor
	imgY := (cy - zpa.panOffset.Y) / zpa.zoomFactor
	zpa.zoomFactor = factor
	zpa.panOffset.X = cx - imgX*factor
	zpa.panOffset.Y = cy - imgY*factor
	zpa.userZoomed = true
	zpa.Refresh()
}

// Zoom scales the current magnification by percent; negative values
// shrink.
func (zpa *ZoomPanArea) Zoom(percent int) {
	zpa.zoomTo(zpa.zoomFactor * (1 + float32(percent)/100))
}

// Adjust adds percent percentage points to the magnification.
func (zpa *ZoomPanArea) Adjust(percent int) {
	zpa.zoomTo(zpa.zoomFactor + float32(percent)/100)
}

// draw renders the image through the zoom/pan transform.
func (zpa *ZoomPanArea) draw(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if zpa.originalImg == nil || w <= 0 || h <= 0 {
		return dst
	}
	// Raster pixels may differ from canvas units on HiDPI screens.
	sx := float64(1)
	if sw := zpa.Size().Width; sw > 0 {
		sx = float64(w) / float64(sw)
	}
	src, k := zpa.source(float64(zpa.zoomFactor) * sx)
	b := src.Bounds()
	s2d := f64.Aff3{
		k, 0, float64(zpa.panOffset.X)*sx - float64(b.Min.X)*k,
		0, k, float64(zpa.panOffset.Y)*sx - float64(b.Min.Y)*k,
	}
	draw.ApproxBiLinear.Transform(dst, s2d, src, b, draw.Over, nil)
	return dst
}

// source returns the image to sample for magnification z and the
// destination pixels per source pixel. Below actual size it resamples
// once with Lanczos and reuses the copy until the zoom changes.
func (zpa *ZoomPanArea) source(z float64) (image.Image, float64) {
	if z >= 1 {
		return zpa.originalImg, z
	}
	ob := zpa.originalImg.Bounds()
	if zpa.scaled == nil || zpa.scaledZoom != z {
		width := uint(max(1, math.Round(float64(ob.Dx())*z)))
		zpa.scaled = resize.Resize(width, 0, zpa.originalImg, resize.Lanczos3)
		zpa.scaledZoom = z
	}
	return zpa.scaled, z * float64(ob.Dx()) / float64(zpa.scaled.Bounds().Dx())
}

// CreateRenderer is a Fyne lifecycle method.
func (zpa *ZoomPanArea) CreateRenderer() fyne.WidgetRenderer {
	return &zoomPanAreaRenderer{zpa: zpa}
}

// Scrolled zooms towards the view center.
func (zpa *ZoomPanArea) Scrolled(ev *fyne.ScrollEvent) {
	if zpa.OnInteraction != nil {
		zpa.OnInteraction()
	}
	switch {
	case ev.Scrolled.DY < 0:
		zpa.zoomTo(zpa.zoomFactor / (1.0 + defaultZoomScrollStep))
	case ev.Scrolled.DY > 0:
		zpa.zoomTo(zpa.zoomFactor * (1.0 + defaultZoomScrollStep))
	}
}

// MouseDown starts panning.
func (zpa *ZoomPanArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if zpa.OnInteraction != nil {
		zpa.OnInteraction()
	}
	zpa.isPanning = true
	zpa.lastMousePos = ev.Position
}

// MouseUp stops panning.
func (zpa *ZoomPanArea) MouseUp(_ *desktop.MouseEvent) {
	zpa.isPanning = false
}

// Dragged pans the image.
func (zpa *ZoomPanArea) Dragged(ev *fyne.DragEvent) {
	if !zpa.isPanning {
		return
	}
	delta := ev.Position.Subtract(zpa.lastMousePos)
	zpa.panOffset = zpa.panOffset.Add(delta)
	zpa.lastMousePos = ev.Position
	zpa.userZoomed = true
	zpa.Refresh()
}

// DragEnd finalizes panning.
func (zpa *ZoomPanArea) DragEnd() {
	zpa.isPanning = false
}

type zoomPanAreaRenderer struct{ zpa *ZoomPanArea }

func (r *zoomPanAreaRenderer) Layout(size fyne.Size)        { r.zpa.raster.Resize(size) }
func (r *zoomPanAreaRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *zoomPanAreaRenderer) Refresh()                     { canvas.Refresh(r.zpa.raster) }
func (r *zoomPanAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.zpa.raster} }
func (r *zoomPanAreaRenderer) Destroy()                     {}

var _ fyne.Widget = (*ZoomPanArea)(nil)
var _ fyne.Scrollable = (*ZoomPanArea)(nil)
var _ fyne.Draggable = (*ZoomPanArea)(nil)
var _ desktop.Mouseable = (*ZoomPanArea)(nil)
