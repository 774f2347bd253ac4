package theme

// Centralized theming and styling for the studio UI.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#121214" // app background
	ColorSurface   = "#1c1c20" // panels, canvas backdrop
	ColorBorder    = "#2e2e34"
	ColorGold      = "#C6A15B" // accent, selection stroke
	ColorGoldHi    = "#d8b672"
	ColorDanger    = "#e05d5d"
	ColorOnline    = "#4caf7a"
	ColorText      = "#ece8e1"
	ColorTextMuted = "#9a958c"

	// light variant
	colorBgLight      = "#f5f2ec"
	colorSurfaceLight = "#ffffff"
	colorBorderLight  = "#d9d2c5"
	colorTextLight    = "#2a2620"
	colorMutedLight   = "#6f685c"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     ColorBg,
			Surface:   ColorSurface,
			Border:    ColorBorder,
			Primary:   ColorGold,
			Danger:    ColorDanger,
			Accent:    ColorOnline,
			Text:      ColorText,
			TextMuted: ColorTextMuted,
		}
	}
	return PaletteSnapshot{
		AppBg:     colorBgLight,
		Surface:   colorSurfaceLight,
		Border:    colorBorderLight,
		Primary:   ColorGold,
		Danger:    ColorDanger,
		Accent:    ColorOnline,
		Text:      colorTextLight,
		TextMuted: colorMutedLight,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleGhostButton   = "ghost.TButton"
	StyleTitleLabel    = "title.TLabel"
	StyleMutedLabel    = "muted.TLabel"
	StyleOnlineLabel   = "online.TLabel"
	StyleOfflineLabel  = "offline.TLabel"
)

// the studio opens dark
var darkMode = true

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := CurrentPalette()
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("#1a1408"),
		Padding("6p 3p"),
		Borderwidth(1),
		Relief("flat"),
	)
	StyleConfigure(StyleGhostButton,
		Background(p.Surface),
		Foreground(p.Text),
		Padding("6p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleTitleLabel,
		Foreground(p.Primary),
		Background(p.AppBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Background(p.AppBg),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleOnlineLabel,
		Foreground(p.Accent),
		Background(p.AppBg),
		Padding("4p 2p"),
	)
	StyleConfigure(StyleOfflineLabel,
		Foreground(p.Danger),
		Background(p.AppBg),
		Padding("4p 2p"),
	)
}
