package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// AboutText is shown in the Help→About dialog.
const AboutText = `imgmanage browses a list of images and records what you
would do with them (rename, delete, label, mark) as an action log.
No file is ever changed.`

type About struct {
	title     string
	parent    fyne.Window
	container *fyne.Container
	d         dialog.Dialog
}

func NewAbout(parent fyne.Window, title, text string) *About {
	a := &About{
		title:  title,
		parent: parent,
	}

	body := widget.NewLabel(text)
	body.Wrapping = fyne.TextWrapWord

	ok := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("OK", func() { a.Hide() }),
		layout.NewSpacer(),
	)

	a.container = container.NewBorder(nil, ok, nil, nil, body)
	return a
}

func (a *About) Hide() {
	if a.d != nil {
		a.d.Hide()
	}
}

func (a *About) Show() {
	a.d = dialog.NewCustomWithoutButtons(a.title, a.container, a.parent)
	a.d.Resize(fyne.NewSize(420, 200))
	a.d.Show()
}
