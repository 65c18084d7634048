package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ytget/qr-generator/internal/app"
	"github.com/ytget/qr-generator/internal/cli"
	"github.com/ytget/qr-generator/internal/config"
	"github.com/ytget/qr-generator/internal/generate"
	"github.com/ytget/qr-generator/internal/platform"
)

func main() {
	defaultBackend := os.Getenv(config.EnvBackendURL)
	if defaultBackend == "" {
		defaultBackend = config.DefaultBackendURL
	}

	var (
		backendFlag   = flag.String("backend", defaultBackend, "Generator base URL")
		kindFlag      = flag.String("kind", "", "QR type: contact, wifi or link (asked when empty)")
		valuesFlag    = flag.String("values", "", "Optional YAML preset with kind, caption and field values")
		outFlag       = flag.String("out", ".", "Directory the PNG is written to")
		noCaptionFlag = flag.Bool("no-caption", false, "Save the QR code without the caption text")
		timeoutFlag   = flag.Duration("timeout", config.DefaultRequestTimeout*time.Second, "Request timeout")
	)
	flag.Parse()

	zapLogger, err := platform.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := platform.Sugar(zapLogger)

	var preset cli.Preset
	if *valuesFlag != "" {
		preset, err = cli.LoadPreset(*valuesFlag)
		if err != nil {
			logger.Fatalf("load preset: %v", err)
		}
	}

	gen, err := generate.NewHTTPService(*backendFlag, &http.Client{Timeout: *timeoutFlag}, logger.Named("generate"))
	if err != nil {
		logger.Fatalf("create generator: %v", err)
	}
	controller := app.NewController(gen, nil, logger.Named("app"))
	controller.SetErrorCallback(func(message string) {
		fmt.Fprintln(os.Stderr, message)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := cli.NewRunner(cli.NewSurveyDriver(), controller, logger.Named("cli"))
	_, err = runner.Run(ctx, cli.Options{
		Kind:      *kindFlag,
		OutputDir: *outFlag,
		NoCaption: *noCaptionFlag,
		Preset:    preset,
	})
	code, reported := cli.ExitStatus(err)
	if err != nil && !reported {
		logger.Errorf("%v", err)
	}
	if code != 0 {
		_ = zapLogger.Sync()
		os.Exit(code)
	}
}
