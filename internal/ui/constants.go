package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconSun      = "☀"
	IconMoon     = "☾"
)

// Layout sizing
const (
	ImageMinSize    float32 = 280
	LogoSize        float32 = 32
	SettingsDialogW float32 = 520
	SettingsDialogH float32 = 420

	// Form and result share a row on desktop and stack on phones in portrait
	ResultColumns = 2
	MobileColumns = 1
)

// Notification behavior
const (
	SaveNoticeAutoHide = 3 * time.Second
)
