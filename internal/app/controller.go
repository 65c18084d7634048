package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/download"
	"github.com/ytget/qr-generator/internal/form"
	"github.com/ytget/qr-generator/internal/generate"
	"github.com/ytget/qr-generator/internal/model"
	"github.com/ytget/qr-generator/internal/result"
)

var (
	// ErrRequestPending is returned by Submit while another request is in flight
	ErrRequestPending = errors.New("app: a request is already in flight")

	// ErrStaleResponse is returned when the kind changed before the reply arrived
	ErrStaleResponse = errors.New("app: response discarded after kind change")

	// ErrNothingToDownload is returned when no artifact is visible
	ErrNothingToDownload = errors.New("app: no image to download")
)

// Controller orchestrates one QR form session.
type Controller struct {
	mu        sync.Mutex
	kind      model.Kind
	schema    model.FieldSchema
	values    model.FormValues
	validated bool
	pending   bool
	epoch     uint64

	store   *result.Store
	gen     generate.Generator
	logger  *zap.SugaredLogger
	onError func(string)
	onState func()
}

// NewController creates a controller showing model.DefaultKind
func NewController(gen generate.Generator, store *result.Store, logger *zap.SugaredLogger) *Controller {
	if store == nil {
		store = result.NewStore()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Controller{
		store:  store,
		gen:    gen,
		logger: logger,
	}
	c.resetLocked(model.DefaultKind)
	return c
}

// SetErrorCallback sets the function receiving user-facing error text
func (c *Controller) SetErrorCallback(callback func(string)) {
	c.mu.Lock()
	c.onError = callback
	c.mu.Unlock()
}

// SetStateCallback sets the function called when kind, validation or the
// pending flag change. Result changes are reported by the store itself.
func (c *Controller) SetStateCallback(callback func()) {
	c.mu.Lock()
	c.onState = callback
	c.mu.Unlock()
}

// SetGenerator replaces the backend client, e.g. after the URL changed in settings.
// A request already in flight finishes on the old client.
func (c *Controller) SetGenerator(gen generate.Generator) {
	c.mu.Lock()
	c.gen = gen
	c.mu.Unlock()
}

// Store returns the result store driven by this controller
func (c *Controller) Store() *result.Store {
	return c.store
}

// Kind returns the active kind
func (c *Controller) Kind() model.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// Schema returns the field schema of the active kind
func (c *Controller) Schema() model.FieldSchema {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema
}

// Values returns a copy of the current form values
func (c *Controller) Values() model.FormValues {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// Validated reports whether a submission has been attempted for this kind
func (c *Controller) Validated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validated
}

// Pending reports whether a request is in flight
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Report validates the current values. Views show it only once Validated is true.
func (c *Controller) Report() form.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return form.Validate(c.schema, c.values)
}

// SelectKind switches the form. Values are rebuilt from the schema, the
// validation flag is cleared and any shown image starts hiding. A reply to
// a request made for the previous kind is dropped when it arrives.
func (c *Controller) SelectKind(kind model.Kind) {
	if !kind.Valid() {
		c.logger.Warnf("Ignoring unknown kind %d", int(kind))
		return
	}

	c.mu.Lock()
	c.resetLocked(kind)
	c.epoch++
	c.pending = false
	callback := c.onState
	c.mu.Unlock()

	c.logger.Debugf("Selected kind %s", kind)
	c.store.Hide()
	if callback != nil {
		callback()
	}
}

func (c *Controller) resetLocked(kind model.Kind) {
	c.kind = kind
	c.schema = form.SchemaFor(kind)
	c.values = model.NewFormValues(c.schema)
	c.validated = false
}

// SetField stores value for the named field and returns what the input
// should display. Phone fields are reformatted on every edit.
func (c *Controller) SetField(name, value string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.schema.Field(name)
	if !ok {
		c.logger.Warnf("Ignoring value for unknown field %q of %s form", name, c.kind)
		return value
	}
	if field.Input == model.InputTel {
		value = form.FormatPhone(value)
	}
	c.values[name] = value
	return value
}

// AllowRune is the keystroke filter for the named field
func (c *Controller) AllowRune(name string, r rune) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.schema.Field(name)
	if ok && field.Input == model.InputEmail {
		return form.AllowEmailRune(r)
	}
	return true
}

// Submit validates the form and, when it passes, requests a new image.
// It blocks until the reply arrives, so views call it off the UI goroutine.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrRequestPending
	}

	c.validated = true
	report := form.Validate(c.schema, c.values)
	if !report.OK() {
		callback := c.onState
		c.mu.Unlock()
		c.logger.Debugf("Submission blocked: %d invalid field(s)", len(report.Invalid))
		if callback != nil {
			callback()
		}
		return &form.ValidationError{Report: report}
	}

	c.pending = true
	kind := c.kind
	values := c.values.Clone()
	epoch := c.epoch
	gen := c.gen
	callback := c.onState
	// A kind change after this point must find the store Pending so its Hide
	// clears it. Store update callbacks must not call back into the Controller.
	c.store.BeginRequest()
	c.mu.Unlock()

	if callback != nil {
		callback()
	}

	c.logger.Infof("Requesting %s QR code", kind)
	artifact, err := gen.Generate(ctx, kind, values)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		c.logger.Infof("Dropping %s response after kind change", kind)
		return ErrStaleResponse
	}
	c.pending = false
	onError := c.onError
	callback = c.onState
	c.mu.Unlock()

	if err != nil {
		c.logger.Debugf("Generate %s failed: %v", kind, err)
		c.store.Fail()
		if onError != nil {
			onError(generate.UserMessage(err))
		}
	} else {
		c.store.Show(artifact)
	}

	if callback != nil {
		callback()
	}
	if err != nil {
		return fmt.Errorf("app: generate %s: %w", kind, err)
	}
	return nil
}

// ToggleCaption swaps the displayed variant
func (c *Controller) ToggleCaption() bool {
	return c.store.ToggleCaption()
}

// ImageSource returns the data URI of the visible variant, or "" when nothing is shown
func (c *Controller) ImageSource() string {
	snap := c.store.Snapshot()
	if snap.Phase != model.PhaseVisible || snap.Artifact == nil {
		return ""
	}
	return snap.Artifact.DataURI(snap.CaptionVisible)
}

// Download decodes the visible variant into a file named after the active kind
func (c *Controller) Download() (download.File, error) {
	snap := c.store.Snapshot()
	if snap.Phase != model.PhaseVisible || snap.Artifact == nil {
		return download.File{}, ErrNothingToDownload
	}
	return download.Build(*snap.Artifact, snap.CaptionVisible, c.Kind())
}

// SaveDownload writes the visible variant into dir and returns the file path
func (c *Controller) SaveDownload(dir string) (string, error) {
	file, err := c.Download()
	if err != nil {
		return "", err
	}
	path, err := download.Save(dir, file)
	if err != nil {
		return "", err
	}
	c.logger.Infof("Saved %s to %s", file.Name, path)
	return path, nil
}
