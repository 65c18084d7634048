package ui

import (
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/qr-generator/internal/app"
	"github.com/ytget/qr-generator/internal/form"
	"github.com/ytget/qr-generator/internal/model"
)

// FormView renders the inputs of the active kind and its submit row
type FormView struct {
	controller   *app.Controller
	localization *Localization
	onSubmit     func()

	schema      model.FieldSchema
	entries     map[string]*widget.Entry
	focusables  map[string]fyne.Focusable
	errorLabels map[string]*widget.Label

	submitBtn *widget.Button
	progress  *widget.ProgressBarInfinite
	container *fyne.Container
}

// NewFormView builds the form for the controller's current kind
func NewFormView(controller *app.Controller, localization *Localization, onSubmit func()) *FormView {
	fv := &FormView{
		controller:   controller,
		localization: localization,
		onSubmit:     onSubmit,
	}
	fv.submitBtn = widget.NewButton(localization.GetText(KeyGenerate), fv.submit)
	fv.submitBtn.Importance = widget.HighImportance
	fv.progress = widget.NewProgressBarInfinite()
	fv.progress.Hide()
	fv.container = container.NewVBox()
	fv.Rebuild()
	return fv
}

// Container returns the root object of the form
func (fv *FormView) Container() fyne.CanvasObject {
	return fv.container
}

// Rebuild recreates the inputs from the controller's schema and values
func (fv *FormView) Rebuild() {
	fv.schema = fv.controller.Schema()
	values := fv.controller.Values()

	fv.entries = make(map[string]*widget.Entry, len(fv.schema.Fields))
	fv.focusables = make(map[string]fyne.Focusable, len(fv.schema.Fields))
	fv.errorLabels = make(map[string]*widget.Label, len(fv.schema.Fields))

	objects := make([]fyne.CanvasObject, 0, len(fv.schema.Fields)*3+2)
	for _, field := range fv.schema.Fields {
		input, entry := fv.newInput(field)
		entry.SetText(values[field.Name])
		fv.attachHandlers(field, entry)

		errLabel := widget.NewLabel("")
		errLabel.Importance = widget.DangerImportance
		errLabel.Hide()

		fv.entries[field.Name] = entry
		if focusable, ok := input.(fyne.Focusable); ok {
			fv.focusables[field.Name] = focusable
		}
		fv.errorLabels[field.Name] = errLabel

		caption := widget.NewLabel(fv.localization.FieldLabel(field))
		caption.TextStyle = fyne.TextStyle{Bold: true}
		objects = append(objects, caption, input, errLabel)
	}
	objects = append(objects, fv.submitBtn, fv.progress)

	fv.container.Objects = objects
	fv.Refresh()
}

func (fv *FormView) newInput(field model.FieldDescriptor) (fyne.CanvasObject, *widget.Entry) {
	var (
		input fyne.CanvasObject
		entry *widget.Entry
	)
	switch field.Input {
	case model.InputPassword:
		entry = widget.NewPasswordEntry()
		input = entry
	case model.InputEmail:
		name := field.Name
		filtered := newFilteredEntry(func(r rune) bool {
			return fv.controller.AllowRune(name, r)
		})
		entry = &filtered.Entry
		input = filtered
	default:
		entry = widget.NewEntry()
		input = entry
	}
	entry.SetPlaceHolder(fv.localization.FieldPlaceholder(field))
	return input, entry
}

func (fv *FormView) attachHandlers(field model.FieldDescriptor, entry *widget.Entry) {
	name := field.Name
	entry.OnChanged = func(text string) {
		display := fv.controller.SetField(name, text)
		if display != text {
			entry.SetText(display)
			entry.CursorColumn = utf8.RuneCountInString(display)
			entry.Refresh()
		}
		if fv.controller.Validated() {
			fv.refreshErrors()
		}
	}
	entry.OnSubmitted = func(string) {
		fv.submit()
	}
}

func (fv *FormView) submit() {
	if fv.onSubmit != nil {
		fv.onSubmit()
	}
}

// Refresh syncs error labels and the submit row with the controller state
func (fv *FormView) Refresh() {
	fv.refreshErrors()

	if fv.controller.Pending() {
		fv.submitBtn.Disable()
		fv.progress.Show()
		fv.progress.Start()
	} else {
		fv.submitBtn.Enable()
		fv.progress.Stop()
		fv.progress.Hide()
	}
}

// refreshErrors shows per-field errors once a submission was attempted
func (fv *FormView) refreshErrors() {
	validated := fv.controller.Validated()
	report := fv.controller.Report()

	for name, label := range fv.errorLabels {
		fe, invalid := report.FieldError(name)
		if validated && invalid {
			label.SetText(fv.localization.ReasonText(fe.Reason))
			label.Show()
		} else {
			label.Hide()
		}
	}
}

// FirstInvalid returns the input of the first failing field in schema order
func (fv *FormView) FirstInvalid(report form.Report) fyne.Focusable {
	if len(report.Invalid) == 0 {
		return nil
	}
	return fv.focusables[report.Invalid[0].Field]
}

// Entry returns the input bound to the named field
func (fv *FormView) Entry(name string) *widget.Entry {
	return fv.entries[name]
}

// ErrorText returns the visible error of the named field, "" when hidden
func (fv *FormView) ErrorText(name string) string {
	label, ok := fv.errorLabels[name]
	if !ok || !label.Visible() {
		return ""
	}
	return label.Text
}

// SubmitEnabled reports whether the submit button accepts taps
func (fv *FormView) SubmitEnabled() bool {
	return !fv.submitBtn.Disabled()
}
