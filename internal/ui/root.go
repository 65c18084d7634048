package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/app"
	"github.com/ytget/qr-generator/internal/config"
	"github.com/ytget/qr-generator/internal/form"
	"github.com/ytget/qr-generator/internal/generate"
	"github.com/ytget/qr-generator/internal/model"
	"github.com/ytget/qr-generator/internal/platform"
	"github.com/ytget/qr-generator/internal/result"
)

// GeneratorFactory builds a backend client for a base URL
type GeneratorFactory func(baseURL string) (generate.Generator, error)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	fyneApp      fyne.App
	controller   *app.Controller
	settings     *config.Settings
	localization *Localization
	appearance   *Appearance
	layout       *Layout
	newGenerator GeneratorFactory
	logger       *zap.SugaredLogger

	kindSelect  *widget.Select
	themeBtn    *widget.Button
	settingsBtn *widget.Button
	formView    *FormView
	resultView  *ResultView
	scroll      *container.Scroll
	noticeLabel *widget.Label
	noticeOpen  *widget.Button
	noticeRow   *fyne.Container
	noticeTimer *time.Timer
	savedPath   string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, fyneApp fyne.App, controller *app.Controller, settings *config.Settings, newGenerator GeneratorFactory, logger *zap.SugaredLogger) *RootUI {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		fyneApp:      fyneApp,
		controller:   controller,
		settings:     settings,
		localization: localization,
		appearance:   NewAppearance(fyneApp, settings),
		layout:       NewLayout(fyne.CurrentDevice()),
		newGenerator: newGenerator,
		logger:       logger,
	}

	logger.Infof("RootUI initialized: kind=%s theme=%s language=%s", controller.Kind(), ui.appearance.Theme(), localization.GetCurrentLanguage())

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// The theme button follows changes made from the menu too
	ui.appearance.SetChangeCallback(func(config.Theme) {
		if ui.themeBtn != nil {
			ui.themeBtn.SetText(ui.appearance.ToggleIcon())
		}
	})

	// Results and errors arrive on worker and timer goroutines
	controller.Store().SetUpdateCallback(func(snap result.Snapshot) {
		fyne.Do(func() { ui.onResultUpdate(snap) })
	})
	controller.SetStateCallback(func() {
		fyne.Do(ui.onStateUpdate)
	})
	controller.SetErrorCallback(func(message string) {
		fyne.Do(func() { ui.showError(message) })
	})

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Kind selector, marks the active kind
	kindNames := make([]string, 0, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		kindNames = append(kindNames, ui.localization.KindName(kind))
	}
	ui.kindSelect = widget.NewSelect(kindNames, nil)
	ui.kindSelect.SetSelectedIndex(int(ui.controller.Kind()))
	ui.kindSelect.OnChanged = func(string) {
		ui.onKindSelected(model.Kind(ui.kindSelect.SelectedIndex()))
	}

	ui.themeBtn = widget.NewButton(ui.appearance.ToggleIcon(), ui.onToggleTheme)
	ui.themeBtn.Importance = widget.LowImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	// Create logo
	left := container.NewHBox(ui.settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, ui.settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, ui.themeBtn, ui.kindSelect)

	ui.noticeLabel = widget.NewLabel("")
	ui.noticeLabel.Wrapping = fyne.TextWrapBreak
	ui.noticeOpen = widget.NewButton(ui.localization.GetText(KeyOpenFile), ui.onOpenSaved)
	ui.noticeOpen.Importance = widget.LowImportance
	ui.noticeRow = container.NewBorder(nil, nil, nil, ui.noticeOpen, ui.noticeLabel)
	ui.noticeRow.Hide()

	ui.formView = NewFormView(ui.controller, ui.localization, ui.onSubmit)
	ui.resultView = NewResultView(ui.localization, ui.logger, ui.controller.Store().ExitWindow, ui.onToggleCaption, ui.onDownload)

	body := ui.layout.Split(ui.formView.Container(), ui.resultView.Container())
	ui.scroll = container.NewVScroll(container.NewPadded(body))

	content := container.NewBorder(container.NewVBox(topPanel, ui.noticeRow), nil, nil, nil, ui.scroll)
	ui.window.SetContent(content)

	ui.resultView.Render(ui.controller.Store().Snapshot())
}

// createMenu builds the main menu: file, QR type and language
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	themeItem := fyne.NewMenuItem(ui.localization.GetText(KeyToggleTheme), ui.onToggleTheme)

	typeMenu := fyne.NewMenu(ui.localization.GetText(KeyQRType))
	for _, kind := range model.Kinds() {
		k := kind // Capture for closure
		item := fyne.NewMenuItem(ui.localization.KindName(k), func() {
			ui.kindSelect.SetSelectedIndex(int(k))
		})
		item.Checked = ui.controller.Kind() == k
		typeMenu.Items = append(typeMenu.Items, item)
	}

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, themeItem),
		typeMenu,
		languageMenu,
	))
}

// onKindSelected switches the form when the selector changes
func (ui *RootUI) onKindSelected(kind model.Kind) {
	if !kind.Valid() || kind == ui.controller.Kind() {
		return
	}
	ui.controller.SelectKind(kind)
	ui.formView.Rebuild()
	ui.createMenu()
}

// onSubmit validates and, when valid, requests an image off the UI goroutine
func (ui *RootUI) onSubmit() {
	if ui.controller.Pending() {
		return
	}

	timeout := ui.settings.GetRequestTimeout()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := ui.controller.Submit(ctx)

		var verr *form.ValidationError
		switch {
		case err == nil:
			fyne.Do(ui.revealResult)
		case errors.As(err, &verr):
			fyne.Do(func() {
				if target := ui.formView.FirstInvalid(verr.Report); target != nil {
					ui.window.Canvas().Focus(target)
				}
			})
		case errors.Is(err, app.ErrRequestPending), errors.Is(err, app.ErrStaleResponse):
			ui.logger.Debugf("Submit ignored: %v", err)
		}
	}()
}

// revealResult scrolls the stacked layout so the image is on screen
func (ui *RootUI) revealResult() {
	if ui.layout.Stacked() {
		ui.scroll.ScrollToBottom()
	}
}

// onResultUpdate renders a store transition
func (ui *RootUI) onResultUpdate(snap result.Snapshot) {
	ui.resultView.Render(snap)
}

// onStateUpdate syncs validation errors and the submit row
func (ui *RootUI) onStateUpdate() {
	ui.formView.Refresh()
}

func (ui *RootUI) onToggleCaption() {
	ui.controller.ToggleCaption()
}

// onDownload saves the visible image and optionally reveals it
func (ui *RootUI) onDownload() {
	path, err := ui.controller.SaveDownload(ui.settings.GetDownloadDirectory())
	if err != nil {
		ui.logger.Errorf("Saving image failed: %v", err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorSavingFile), err), ui.window)
		return
	}

	ui.savedPath = path
	ui.showNotice(ui.localization.GetText(KeySavedTo) + ": " + path)

	if ui.settings.GetRevealAfterSave() {
		if err := platform.OpenFileInManager(path); err != nil {
			ui.logger.Warnf("Error revealing file %s: %v", path, err)
		}
	}
}

// onOpenSaved opens the last saved image with the default viewer
func (ui *RootUI) onOpenSaved() {
	if ui.savedPath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(ui.savedPath); err != nil {
		ui.logger.Errorf("Error opening file %s: %v", ui.savedPath, err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// showError shows a backend or transport failure as a blocking dialog
func (ui *RootUI) showError(message string) {
	dialog.ShowInformation(ui.localization.GetText(KeyError), message, ui.window)
}

// showNotice displays a transient message under the kind selector
func (ui *RootUI) showNotice(message string) {
	ui.noticeLabel.SetText(message)
	ui.noticeRow.Show()

	if ui.noticeTimer != nil {
		ui.noticeTimer.Stop()
	}
	ui.noticeTimer = time.AfterFunc(SaveNoticeAutoHide, func() {
		fyne.Do(ui.noticeRow.Hide)
	})
}

func (ui *RootUI) onToggleTheme() {
	ui.appearance.Toggle()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies settings that take effect without a restart
func (ui *RootUI) onSettingsSaved() {
	ui.controller.Store().SetExitWindow(ui.settings.GetExitWindow())

	if ui.newGenerator != nil {
		gen, err := ui.newGenerator(ui.settings.GetBackendURL())
		if err != nil {
			ui.logger.Errorf("Keeping previous generator: %v", err)
		} else {
			ui.controller.SetGenerator(gen)
		}
	}

	before := ui.localization.GetCurrentLanguage()
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	if ui.localization.GetCurrentLanguage() != before {
		ui.refreshUITexts()
	}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.setupUI()
}

// FormView exposes the form for tests
func (ui *RootUI) FormView() *FormView {
	return ui.formView
}

// ResultView exposes the result column for tests
func (ui *RootUI) ResultView() *ResultView {
	return ui.resultView
}
