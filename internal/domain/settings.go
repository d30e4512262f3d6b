package domain

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Theme selects the colour scheme preferred by the owner.
type Theme string

// Possible theme values
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultLanguage is used when no language has been chosen.
const DefaultLanguage = "en"

// Validation errors for Settings
var (
	ErrInvalidTheme    = errors.New("theme must be light, dark or system")
	ErrInvalidLanguage = errors.New("language must be a BCP 47 tag")
)

// Settings holds the owner's preferences. It is persisted independently of
// the moment collection.
type Settings struct {
	Theme    Theme  `json:"theme"    yaml:"theme"`
	Language string `json:"language" yaml:"language"`
}

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeSystem, Language: DefaultLanguage}
}

// Validate checks the theme and the language tag.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return NewValidationError("theme", "must be light, dark or system", ErrInvalidTheme)
	}
	if _, err := ParseLanguage(s.Language); err != nil {
		return err
	}
	return nil
}

// Normalize returns s with the language tag in canonical form.
// Settings that fail validation are returned unchanged.
func (s Settings) Normalize() Settings {
	if tag, err := ParseLanguage(s.Language); err == nil {
		s.Language = tag.String()
	}
	return s
}

// ParseLanguage parses a BCP 47 language tag such as "en" or "pt-BR".
func ParseLanguage(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.Und, NewValidationError("language", "cannot be empty", ErrInvalidLanguage)
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, NewValidationError("language", "is not a valid BCP 47 tag", ErrInvalidLanguage)
	}
	return tag, nil
}

// LanguageName returns the English display name of a language tag, falling
// back to the tag itself.
func LanguageName(tag language.Tag) string {
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return tag.String()
}
