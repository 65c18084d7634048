package ui

import (
	"errors"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/qr-generator/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	backendEntry     *widget.Entry
	downloadDirEntry *widget.Entry
	timeoutEntry     *widget.Entry
	exitWindowEntry  *widget.Entry
	revealCheck      *widget.Check
	languageSelect   *widget.Select
	languageCodes    []string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.backendEntry = widget.NewEntry()
	sd.backendEntry.SetPlaceHolder(config.DefaultBackendURL)
	sd.backendEntry.Validator = func(text string) error {
		if text == "" || config.IsValidBackendURL(text) {
			return nil
		}
		return errors.New(l.GetText(KeyInvalidBackendURL))
	}

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.MinRequestTimeout) + "-" + strconv.Itoa(config.MaxRequestTimeout))

	sd.exitWindowEntry = widget.NewEntry()
	sd.exitWindowEntry.SetPlaceHolder(strconv.Itoa(config.MinExitWindowMS) + "-" + strconv.Itoa(config.MaxExitWindowMS))

	sd.revealCheck = widget.NewCheck(l.GetText(KeyRevealAfterSave), nil)

	// Language selection, "system" first then sorted codes
	labels := sd.settings.GetLanguageOptions()
	sd.languageCodes = sd.languageCodes[:0]
	for code := range labels {
		if code != LangSystem {
			sd.languageCodes = append(sd.languageCodes, code)
		}
	}
	sort.Strings(sd.languageCodes)
	sd.languageCodes = append([]string{LangSystem}, sd.languageCodes...)
	options := make([]string, len(sd.languageCodes))
	for i, code := range sd.languageCodes {
		options[i] = labels[code]
	}
	sd.languageSelect = widget.NewSelect(options, nil)

	formBox := container.NewVBox(
		widget.NewLabel(l.GetText(KeyBackendURL)+":"),
		sd.backendEntry,

		widget.NewLabel(l.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,
		sd.revealCheck,

		widget.NewLabel(l.GetText(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewLabel(l.GetText(KeyExitWindow)+":"),
		sd.exitWindowEntry,

		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		formBox,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.backendEntry.SetText(sd.settings.GetBackendURL())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout().Seconds())))
	sd.exitWindowEntry.SetText(strconv.Itoa(int(sd.settings.GetExitWindow().Milliseconds())))
	sd.revealCheck.SetChecked(sd.settings.GetRevealAfterSave())

	current := sd.settings.GetLanguage()
	for i, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelectedIndex(i)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if text := sd.backendEntry.Text; text != "" {
		if err := sd.backendEntry.Validate(); err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
		sd.settings.SetBackendURL(text)
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if seconds, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetRequestTimeoutSeconds(seconds)
	}

	if ms, err := strconv.Atoi(sd.exitWindowEntry.Text); err == nil {
		sd.settings.SetExitWindowMS(ms)
	}

	sd.settings.SetRevealAfterSave(sd.revealCheck.Checked)

	if i := sd.languageSelect.SelectedIndex(); i >= 0 && i < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[i])
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
