package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/qr-generator/internal/app"
	"github.com/ytget/qr-generator/internal/download"
	"github.com/ytget/qr-generator/internal/form"
	"github.com/ytget/qr-generator/internal/model"
)

// Options controls one terminal run
type Options struct {
	Kind      string // empty asks
	OutputDir string
	NoCaption bool
	Preset    Preset
}

// Runner walks the user through one form and saves the result
type Runner struct {
	driver     PromptDriver
	controller *app.Controller
	logger     *zap.SugaredLogger
}

// NewRunner creates a runner around controller
func NewRunner(driver PromptDriver, controller *app.Controller, logger *zap.SugaredLogger) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{driver: driver, controller: controller, logger: logger}
}

// Run selects the kind, fills every field, submits and writes the PNG.
// It returns the written path.
func (r *Runner) Run(ctx context.Context, opts Options) (string, error) {
	kind, err := r.chooseKind(ctx, opts)
	if err != nil {
		return "", err
	}
	r.controller.SelectKind(kind)

	schema := r.controller.Schema()
	preset := opts.Preset.Values
	for name := range preset {
		if !slices.Contains(schema.Names(), name) {
			return "", fmt.Errorf("cli: preset field %q is not a %s field", name, kind)
		}
	}
	for _, field := range schema.Fields {
		if value, ok := preset[field.Name]; ok {
			r.controller.SetField(field.Name, value)
			continue
		}
		value, err := r.ask(ctx, field)
		if err != nil {
			return "", err
		}
		r.controller.SetField(field.Name, value)
	}

	if err := r.controller.Submit(ctx); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return "", fmt.Errorf("cli: %s", describeReport(verr.Report))
		}
		return "", err
	}

	caption := !opts.NoCaption
	if opts.Preset.Caption != nil && !*opts.Preset.Caption {
		caption = false
	}
	if !caption {
		if snap := r.controller.Store().Snapshot(); snap.Artifact != nil && !snap.Artifact.HasDistinctVariants() {
			if err := r.driver.Info(ctx, "The server returned a single image; the caption cannot be removed"); err != nil {
				return "", err
			}
		}
		r.controller.ToggleCaption()
	}

	file, err := r.controller.Download()
	if err != nil {
		return "", err
	}
	path := filepath.Join(opts.OutputDir, file.Name)
	if err := download.Write(path, file); err != nil {
		return "", err
	}
	r.logger.Infof("Wrote %d bytes to %s", len(file.Data), path)

	if err := r.driver.Info(ctx, "Saved "+path); err != nil {
		return path, err
	}
	return path, nil
}

func (r *Runner) chooseKind(ctx context.Context, opts Options) (model.Kind, error) {
	name := opts.Kind
	if name == "" {
		name = opts.Preset.Kind
	}
	if name != "" {
		return model.ParseKind(name)
	}

	kinds := model.Kinds()
	options := make([]string, len(kinds))
	for i, kind := range kinds {
		options[i] = kind.String()
	}
	index, err := r.driver.Select(ctx, SelectConfig{
		Message:      "QR type:",
		Options:      options,
		DefaultIndex: int(model.DefaultKind),
	})
	if err != nil {
		return model.DefaultKind, err
	}
	if index < 0 || index >= len(kinds) {
		return model.DefaultKind, fmt.Errorf("cli: invalid selection %d", index)
	}
	return kinds[index], nil
}

func (r *Runner) ask(ctx context.Context, field model.FieldDescriptor) (string, error) {
	cfg := InputConfig{
		Message:   field.Label + ":",
		Default:   r.controller.Values()[field.Name],
		Validator: fieldValidator(field),
	}
	if !field.Required {
		cfg.Help = "optional"
	}
	if field.Input == model.InputTel {
		cfg.Help = "10 digits, e.g. (555) 123-4567"
	}

	if field.Input == model.InputPassword {
		return r.driver.Password(ctx, cfg)
	}
	return r.driver.Input(ctx, cfg)
}

// fieldValidator checks an answer with the same rules as the desktop form.
// Phone answers are validated after formatting; email answers may not contain spaces.
func fieldValidator(field model.FieldDescriptor) func(string) error {
	return func(answer string) error {
		switch field.Input {
		case model.InputTel:
			answer = form.FormatPhone(answer)
		case model.InputEmail:
			for _, r := range answer {
				if !form.AllowEmailRune(r) {
					return fmt.Errorf("%s may not contain spaces", field.Label)
				}
			}
		}
		if fe := form.ValidateField(field, answer); fe != nil {
			return fe
		}
		return nil
	}
}

func describeReport(report form.Report) string {
	parts := make([]string, 0, len(report.Invalid))
	for i := range report.Invalid {
		parts = append(parts, report.Invalid[i].Error())
	}
	return strings.Join(parts, "; ")
}
