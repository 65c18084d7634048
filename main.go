package main

import (
	"fmt"
	"net/http"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/qr-generator/internal/app"
	"github.com/ytget/qr-generator/internal/config"
	"github.com/ytget/qr-generator/internal/generate"
	"github.com/ytget/qr-generator/internal/platform"
	"github.com/ytget/qr-generator/internal/result"
	"github.com/ytget/qr-generator/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.qr-generator"
	AppName = "QR Generator"

	WindowWidth  = 760
	WindowHeight = 560
)

func main() {
	zapLogger, err := platform.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := platform.Sugar(zapLogger)

	// Log version information
	logger.Infof("%s v%s starting...", AppName, version)

	// Create new Fyne app
	myApp := fyneapp.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warnf("failed to ensure downloads dir: %v", err)
	}

	newGenerator := func(baseURL string) (generate.Generator, error) {
		client := &http.Client{Timeout: settings.GetRequestTimeout()}
		return generate.NewHTTPService(baseURL, client, logger.Named("generate"))
	}

	gen, err := newGenerator(settings.GetBackendURL())
	if err != nil {
		logger.Warnf("invalid backend URL %q, using %s: %v", settings.GetBackendURL(), config.DefaultBackendURL, err)
		gen, err = newGenerator(config.DefaultBackendURL)
		if err != nil {
			logger.Fatalf("failed to create generator: %v", err)
		}
	}

	store := result.NewStore(
		result.WithExitWindow(settings.GetExitWindow()),
		result.WithLogger(logger.Named("result")),
	)
	controller := app.NewController(gen, store, logger.Named("app"))

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, controller, settings, newGenerator, logger.Named("ui"))

	// Show and run
	myWindow.ShowAndRun()
}
