package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeyFile          = "file"
	KeyView          = "view"
	KeyLanguage      = "language"
	KeyRefresh       = "refresh"
	KeyQuit          = "quit"
	KeyShow          = "show"
	KeyStyle         = "style"
	KeyStyleBoard    = "style_board"
	KeyStyleCompact  = "style_compact"
	KeyFilter        = "filter_terminals"
	KeyStatusLive    = "status_live"
	KeyStatusError   = "status_error"
	KeyDepartures    = "departures"
	KeyUpdatedAt     = "updated_at"
	KeyShowingSince  = "showing_since"
	KeyNoDepartures  = "no_departures"
	KeyWaitingFirst  = "waiting_first"
	KeyWindowHidden  = "window_hidden"
	KeyCloseDisabled = "close_disabled"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; "system" follows the OS locale
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = systemLanguage()
	}

	if _, exists := l.GetAvailableLanguages()[code]; exists {
		l.currentLanguage = code
	} else {
		l.currentLanguage = "en"
	}
}

// systemLanguage returns the base language of the OS locale, e.g. "de" for "de-CH"
func systemLanguage() string {
	tag := lang.SystemLocale().LanguageString()
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"de": "Deutsch",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:      "Departures",
		KeyFile:          "File",
		KeyView:          "View",
		KeyLanguage:      "Language",
		KeyRefresh:       "Refresh now",
		KeyQuit:          "Quit",
		KeyShow:          "Show board",
		KeyStyle:         "Style",
		KeyStyleBoard:    "Board",
		KeyStyleCompact:  "Compact",
		KeyFilter:        "Only my terminals",
		KeyStatusLive:    "Live",
		KeyStatusError:   "Connection problem",
		KeyDepartures:    "departures",
		KeyUpdatedAt:     "updated",
		KeyShowingSince:  "showing data from",
		KeyNoDepartures:  "No departures",
		KeyWaitingFirst:  "waiting for first update",
		KeyWindowHidden:  "Board hidden. Use the tray icon to show it again.",
		KeyCloseDisabled: "Use File > Quit to exit.",
	}

	// German texts
	l.texts["de"] = map[string]string{
		KeyAppTitle:      "Abfahrten",
		KeyFile:          "Datei",
		KeyView:          "Ansicht",
		KeyLanguage:      "Sprache",
		KeyRefresh:       "Jetzt aktualisieren",
		KeyQuit:          "Beenden",
		KeyShow:          "Anzeige öffnen",
		KeyStyle:         "Stil",
		KeyStyleBoard:    "Tafel",
		KeyStyleCompact:  "Kompakt",
		KeyFilter:        "Nur meine Endstationen",
		KeyStatusLive:    "Live",
		KeyStatusError:   "Verbindungsproblem",
		KeyDepartures:    "Abfahrten",
		KeyUpdatedAt:     "aktualisiert",
		KeyShowingSince:  "Daten von",
		KeyNoDepartures:  "Keine Abfahrten",
		KeyWaitingFirst:  "warte auf erste Aktualisierung",
		KeyWindowHidden:  "Anzeige ausgeblendet. Über das Tray-Symbol wieder öffnen.",
		KeyCloseDisabled: "Zum Beenden Datei > Beenden wählen.",
	}
}
