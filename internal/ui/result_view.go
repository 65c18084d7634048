package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/download"
	"github.com/ytget/qr-generator/internal/model"
	"github.com/ytget/qr-generator/internal/result"
)

// ResultView shows the generated image with its caption toggle and
// download button, and fades the image out while it is exiting.
type ResultView struct {
	localization *Localization
	logger       *zap.SugaredLogger

	image     *canvas.Image
	toggleBtn *widget.Button
	saveBtn   *widget.Button
	container *fyne.Container

	fade       *fyne.Animation
	shownID    string
	shownVar   bool
	lastPhase  model.Phase
	exitWindow func() time.Duration
}

// NewResultView creates a hidden result column
func NewResultView(localization *Localization, logger *zap.SugaredLogger, exitWindow func() time.Duration, onToggle, onDownload func()) *ResultView {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	rv := &ResultView{
		localization: localization,
		logger:       logger,
		exitWindow:   exitWindow,
		lastPhase:    model.PhaseHidden,
	}

	rv.image = &canvas.Image{FillMode: canvas.ImageFillContain}
	rv.image.SetMinSize(fyne.NewSize(ImageMinSize, ImageMinSize))

	rv.toggleBtn = widget.NewButton(localization.GetText(KeyHideText), onToggle)
	rv.saveBtn = widget.NewButton(localization.GetText(KeyDownload), onDownload)
	rv.saveBtn.Importance = widget.HighImportance

	buttons := container.NewGridWithColumns(2, rv.toggleBtn, rv.saveBtn)
	rv.container = container.NewBorder(nil, buttons, nil, nil, rv.image)
	rv.container.Hide()
	return rv
}

// Container returns the root object of the result column
func (rv *ResultView) Container() fyne.CanvasObject {
	return rv.container
}

// Phase returns the phase last rendered
func (rv *ResultView) Phase() model.Phase {
	return rv.lastPhase
}

// ToggleText returns the caption button label
func (rv *ResultView) ToggleText() string {
	return rv.toggleBtn.Text
}

// Render applies a store snapshot. It must run on the Fyne goroutine.
func (rv *ResultView) Render(snap result.Snapshot) {
	previous := rv.lastPhase
	rv.lastPhase = snap.Phase

	switch snap.Phase {
	case model.PhaseVisible:
		rv.stopFade()
		rv.showArtifact(snap)
		rv.image.Translucency = 0
		rv.image.Refresh()
		rv.setButtonsEnabled(snap.Phase.IsShown())
		rv.container.Show()

	case model.PhaseExiting:
		rv.setButtonsEnabled(snap.Phase.IsShown())
		// a repeated Exiting restarts the store timer, so restart the fade too
		rv.startFade()
		if previous != model.PhaseExiting {
			rv.logger.Debugf("Result exiting")
		}

	default:
		rv.stopFade()
		rv.image.Resource = nil
		rv.image.Refresh()
		rv.shownID = ""
		rv.container.Hide()
	}
}

func (rv *ResultView) showArtifact(snap result.Snapshot) {
	if snap.CaptionVisible {
		rv.toggleBtn.SetText(rv.localization.GetText(KeyHideText))
	} else {
		rv.toggleBtn.SetText(rv.localization.GetText(KeyShowText))
	}

	if snap.Artifact == nil {
		return
	}
	if snap.Artifact.ID == rv.shownID && snap.CaptionVisible == rv.shownVar && rv.image.Resource != nil {
		return
	}

	file, err := download.Build(*snap.Artifact, snap.CaptionVisible, snap.Artifact.Kind)
	if err != nil {
		rv.logger.Errorf("Cannot render artifact %s: %v", snap.Artifact.ID, err)
		rv.image.Resource = nil
		return
	}
	rv.image.Resource = fyne.NewStaticResource(snap.Artifact.ID+"-"+file.Name, file.Data)
	rv.shownID = snap.Artifact.ID
	rv.shownVar = snap.CaptionVisible
}

// setButtonsEnabled keeps toggle and download usable only at full opacity
func (rv *ResultView) setButtonsEnabled(enabled bool) {
	if enabled {
		rv.toggleBtn.Enable()
		rv.saveBtn.Enable()
		return
	}
	rv.toggleBtn.Disable()
	rv.saveBtn.Disable()
}

func (rv *ResultView) startFade() {
	rv.stopFade()
	rv.fade = fyne.NewAnimation(rv.exitWindow(), func(progress float32) {
		rv.image.Translucency = float64(progress)
		rv.image.Refresh()
	})
	rv.fade.Curve = fyne.AnimationEaseOut
	rv.fade.Start()
}

func (rv *ResultView) stopFade() {
	if rv.fade != nil {
		rv.fade.Stop()
		rv.fade = nil
	}
}
