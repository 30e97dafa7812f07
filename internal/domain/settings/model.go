package settings

import (
	"errors"

	"khatamflow/internal/domain/pacing"
)

// Setting keys.
const (
	KeyMaghribTime          = "maghrib_time"
	KeyTheme                = "theme"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyNotifyEmail          = "notify_email"
)

// Defaults applied when a key has never been written.
const (
	DefaultTheme = "dark"
)

// Theme constants.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Domain errors
var (
	ErrUnknownKey   = errors.New("unknown setting key")
	ErrInvalidTheme = errors.New("theme must be light or dark")
	ErrInvalidBool  = errors.New("value must be true or false")
)

// Validate checks a value for a given key before it is stored.
// PRE: none
// POST: Returns nil if the value is storable under the key
func Validate(key, value string) error {
	switch key {
	case KeyMaghribTime:
		_, _, err := pacing.ParseCutoff(value)
		return err
	case KeyTheme:
		if value != ThemeLight && value != ThemeDark {
			return ErrInvalidTheme
		}
		return nil
	case KeyNotificationsEnabled:
		if value != "true" && value != "false" {
			return ErrInvalidBool
		}
		return nil
	case KeyNotifyEmail:
		// Deliverability is the email provider's concern; an empty
		// value disables delivery.
		return nil
	default:
		return ErrUnknownKey
	}
}

// Default returns the fallback value for a key.
func Default(key string) string {
	switch key {
	case KeyMaghribTime:
		return pacing.DefaultMaghribTime
	case KeyTheme:
		return DefaultTheme
	case KeyNotificationsEnabled:
		return "false"
	default:
		return ""
	}
}
