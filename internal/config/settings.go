package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyStyle           = "board_style"
	KeyLanguage        = "app_language"
	KeyFilterTerminals = "filter_terminals"
)

// Settings remembers user choices between runs
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetStyle returns the remembered style profile, or fallback if none was
// chosen or the stored name is unknown
func (s *Settings) GetStyle(fallback StyleName) StyleName {
	name := StyleName(s.app.Preferences().String(KeyStyle))
	if _, ok := LookupStyle(name); !ok {
		return fallback
	}
	return name
}

// SetStyle remembers the style profile; unknown names are ignored
func (s *Settings) SetStyle(name StyleName) {
	if _, ok := LookupStyle(name); !ok {
		return
	}
	s.app.Preferences().SetString(KeyStyle, string(name))
}

// GetLanguage returns the remembered language, or fallback if none was chosen
func (s *Settings) GetLanguage(fallback string) string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, fallback)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFilterTerminals returns whether departures are limited to the terminals,
// or fallback if that was never chosen
func (s *Settings) GetFilterTerminals(fallback bool) bool {
	return s.app.Preferences().BoolWithFallback(KeyFilterTerminals, fallback)
}

// SetFilterTerminals sets whether departures are limited to the terminals
func (s *Settings) SetFilterTerminals(filter bool) {
	s.app.Preferences().SetBool(KeyFilterTerminals, filter)
}

// Apply fills the remembered preferences into cfg. Fields listed in
// overridden were set explicitly (flags) and are stored instead of read.
// Preferences never chosen leave cfg as it is.
func (s *Settings) Apply(cfg Config, overridden map[string]bool) Config {
	if overridden[KeyStyle] {
		s.SetStyle(cfg.Style)
	} else {
		cfg.Style = s.GetStyle(cfg.Style)
	}

	if overridden[KeyLanguage] {
		s.SetLanguage(cfg.Language)
	} else {
		cfg.Language = s.GetLanguage(cfg.Language)
	}

	if overridden[KeyFilterTerminals] {
		s.SetFilterTerminals(cfg.FilterTerminals)
	} else {
		cfg.FilterTerminals = s.GetFilterTerminals(cfg.FilterTerminals)
	}
	return cfg
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"de":     "Deutsch",
	}
}
