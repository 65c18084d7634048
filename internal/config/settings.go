package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/qr-generator/internal/platform"
)

// Theme is the persisted appearance choice
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyBackendURL      = "backend_url"
	KeyDownloadDir     = "download_directory"
	KeyTheme           = "theme"
	KeyLanguage        = "app_language"
	KeyRevealAfterSave = "reveal_after_save"
	KeyRequestTimeout  = "request_timeout_seconds"
	KeyExitWindow      = "exit_window_ms"
)

// EnvBackendURL overrides the stored backend URL without persisting it
const EnvBackendURL = "QRGEN_BACKEND_URL"

// Default values
const (
	DefaultBackendURL      = "http://localhost:5000"
	DefaultTheme           = ThemeLight
	DefaultLanguage        = "system"
	DefaultRevealAfterSave = true
	DefaultRequestTimeout  = 15
	DefaultExitWindowMS    = 300
)

// Limits
const (
	MinRequestTimeout = 1
	MaxRequestTimeout = 120
	MinExitWindowMS   = 50
	MaxExitWindowMS   = 2000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBackendURL returns the generator base URL. QRGEN_BACKEND_URL wins over
// the stored value.
func (s *Settings) GetBackendURL() string {
	if env := strings.TrimSpace(os.Getenv(EnvBackendURL)); env != "" {
		return env
	}
	value := s.app.Preferences().String(KeyBackendURL)
	if value == "" {
		s.SetBackendURL(DefaultBackendURL)
		return DefaultBackendURL
	}
	return value
}

// SetBackendURL stores the generator base URL. Relative or unparsable
// values reset it to the default.
func (s *Settings) SetBackendURL(raw string) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if !IsValidBackendURL(raw) {
		raw = DefaultBackendURL
	}
	s.app.Preferences().SetString(KeyBackendURL, raw)
}

// IsValidBackendURL reports whether raw is an absolute http(s) URL
func IsValidBackendURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = os.TempDir()
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetTheme returns the stored theme, light when unset or unknown
func (s *Settings) GetTheme() Theme {
	switch theme := Theme(s.app.Preferences().String(KeyTheme)); theme {
	case ThemeLight, ThemeDark:
		return theme
	default:
		s.SetTheme(DefaultTheme)
		return DefaultTheme
	}
}

// SetTheme stores the theme
func (s *Settings) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetRevealAfterSave returns whether a saved image is shown in the file manager
func (s *Settings) GetRevealAfterSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealAfterSave, DefaultRevealAfterSave)
}

// SetRevealAfterSave sets whether a saved image is shown in the file manager
func (s *Settings) SetRevealAfterSave(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealAfterSave, reveal)
}

// GetRequestTimeout returns the generate request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	value := s.app.Preferences().Int(KeyRequestTimeout)
	if value <= 0 {
		s.SetRequestTimeoutSeconds(DefaultRequestTimeout)
		value = DefaultRequestTimeout
	}
	return time.Duration(value) * time.Second
}

// SetRequestTimeoutSeconds stores the timeout, clamped to 1..120 seconds
func (s *Settings) SetRequestTimeoutSeconds(seconds int) {
	s.app.Preferences().SetInt(KeyRequestTimeout, clamp(seconds, MinRequestTimeout, MaxRequestTimeout))
}

// GetExitWindow returns how long a hidden image is kept for its exit animation
func (s *Settings) GetExitWindow() time.Duration {
	value := s.app.Preferences().Int(KeyExitWindow)
	if value <= 0 {
		s.SetExitWindowMS(DefaultExitWindowMS)
		value = DefaultExitWindowMS
	}
	return time.Duration(value) * time.Millisecond
}

// SetExitWindowMS stores the exit window, clamped to 50..2000 ms
func (s *Settings) SetExitWindowMS(ms int) {
	s.app.Preferences().SetInt(KeyExitWindow, clamp(ms, MinExitWindowMS, MaxExitWindowMS))
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
