package ui

import (
	"fmt"
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"imgmanage/internal/overlay"
)

func TestKeyFromRune(t *testing.T) {
	tests := map[rune]string{
		'h': "h",
		'R': "Shift+r",
		':': ":",
		'+': "+",
		'7': "7",
		' ': "",
	}
	for r, want := range tests {
		assert.Equal(t, want, KeyFromRune(r), string(r))
	}
}

func TestKeyFromEvent(t *testing.T) {
	assert.Equal(t, "Left", KeyFromEvent(&fyne.KeyEvent{Name: fyne.KeyLeft}))
	assert.Equal(t, "Escape", KeyFromEvent(&fyne.KeyEvent{Name: fyne.KeyEscape}))
	assert.Equal(t, "PageUp", KeyFromEvent(&fyne.KeyEvent{Name: fyne.KeyPageUp}))
	assert.Equal(t, "", KeyFromEvent(&fyne.KeyEvent{Name: fyne.KeyH}))
}

func TestShortcutFor(t *testing.T) {
	sc, ok := ShortcutFor("Ctrl+q")
	require.True(t, ok)
	assert.Equal(t, fyne.KeyQ, sc.KeyName)
	assert.Equal(t, fyne.KeyModifierControl, sc.Modifier)

	sc, ok = ShortcutFor("Ctrl+Shift+PageDown")
	require.True(t, ok)
	assert.Equal(t, fyne.KeyPageDown, sc.KeyName)
	assert.Equal(t, fyne.KeyModifierControl|fyne.KeyModifierShift, sc.Modifier)

	_, ok = ShortcutFor("Shift+r")
	assert.False(t, ok, "shifted letters arrive as runes")
	_, ok = ShortcutFor("Left")
	assert.False(t, ok)
}

func TestParseScale(t *testing.T) {
	s, err := ParseScale("Exact")
	require.NoError(t, err)
	assert.Equal(t, ScaleExact, s)
	assert.Equal(t, ScaleNone, ScaleExact.Next())
	_, err = ParseScale("huge")
	assert.Error(t, err)
}

func TestZoomPanAreaScaleModes(t *testing.T) {
	test.NewTempApp(t)
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	zpa := NewZoomPanArea(ScaleNone, nil)
	zpa.Resize(fyne.NewSize(100, 100))
	zpa.SetImage(img)
	assert.Equal(t, float32(1), zpa.ZoomFactor())

	zpa.SetScale(ScaleShrink)
	assert.Equal(t, float32(0.5), zpa.ZoomFactor())

	small := image.NewGray(image.Rect(0, 0, 20, 10))
	zpa.SetImage(small)
	assert.Equal(t, float32(1), zpa.ZoomFactor(), "shrink never enlarges")

	zpa.SetScale(ScaleExact)
	assert.Equal(t, float32(5), zpa.ZoomFactor())
}

func TestZoomPanAreaZoomAndAdjust(t *testing.T) {
	test.NewTempApp(t)
	zpa := NewZoomPanArea(ScaleNone, nil)
	zpa.Resize(fyne.NewSize(100, 100))
	zpa.SetImage(image.NewGray(image.Rect(0, 0, 50, 50)))

	zpa.Zoom(10)
	assert.InDelta(t, 1.1, zpa.ZoomFactor(), 1e-5)
	zpa.Adjust(-1)
	assert.InDelta(t, 1.09, zpa.ZoomFactor(), 1e-5)
	zpa.Zoom(-100000)
	assert.Equal(t, defaultMinZoom, zpa.ZoomFactor())

	zpa.Resize(fyne.NewSize(120, 120))
	assert.Equal(t, defaultMinZoom, zpa.ZoomFactor(), "resize keeps a user zoom")
	zpa.Reset()
	assert.Equal(t, float32(1), zpa.ZoomFactor())
}

func TestZoomPanAreaDrawDownscales(t *testing.T) {
	test.NewTempApp(t)
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	zpa := NewZoomPanArea(ScaleShrink, nil)
	zpa.Resize(fyne.NewSize(100, 100))
	zpa.SetImage(img)

	out := zpa.draw(100, 100)
	require.NotNil(t, zpa.scaled)
	assert.Equal(t, 100, zpa.scaled.Bounds().Dx())
	_, _, _, a := out.At(50, 50).RGBA()
	assert.NotZero(t, a, "image is centered")
	_, _, _, a = out.At(50, 5).RGBA()
	assert.Zero(t, a, "letterbox stays empty")
}

func TestStatusLogPaging(t *testing.T) {
	test.NewTempApp(t)
	s := NewStatusLog(3, nil)
	assert.Equal(t, "", s.Text())
	for i := 1; i <= 4; i++ {
		s.Add(fmt.Sprintf("msg %d", i))
	}
	assert.Equal(t, []string{"msg 2", "msg 3", "msg 4"}, s.Messages())
	assert.Equal(t, "[3/3] msg 4", s.Text())
	assert.True(t, s.downBtn.Disabled())

	s.Previous()
	s.Previous()
	s.Previous()
	assert.Equal(t, "[1/3] msg 2", s.Text())
	assert.True(t, s.upBtn.Disabled())
	s.Next()
	assert.Equal(t, "[2/3] msg 3", s.Text())
}

func TestTextLayerFollowsRegistry(t *testing.T) {
	test.NewTempApp(t)
	reg := overlay.NewRegistry(nil)
	tl := NewTextLayer(reg)
	assert.Empty(t, tl.layer.Objects)

	h := reg.Add(overlay.Point{X: 5, Y: 5}, "outlined")
	assert.Len(t, tl.layer.Objects, len(outlineOffsets)+1)

	st := reg.Style()
	st.Outline = false
	reg.SetStyle(st)
	reg.Add(overlay.Point{X: 5, Y: 20}, "plain")
	assert.Len(t, tl.layer.Objects, len(outlineOffsets)+2)

	reg.Clear(h)
	assert.Len(t, tl.layer.Objects, 1)
}
