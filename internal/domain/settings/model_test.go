package settings_test

import (
	"testing"

	"khatamflow/internal/domain/settings"
)

// TestValidate tests per-key value validation.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "valid maghrib", key: settings.KeyMaghribTime, value: "19:15"},
		{name: "bad maghrib", key: settings.KeyMaghribTime, value: "sunset", wantErr: true},
		{name: "maghrib out of range", key: settings.KeyMaghribTime, value: "25:00", wantErr: true},
		{name: "light theme", key: settings.KeyTheme, value: "light"},
		{name: "dark theme", key: settings.KeyTheme, value: "dark"},
		{name: "bad theme", key: settings.KeyTheme, value: "sepia", wantErr: true},
		{name: "notifications on", key: settings.KeyNotificationsEnabled, value: "true"},
		{name: "notifications bad", key: settings.KeyNotificationsEnabled, value: "yes", wantErr: true},
		{name: "notify email", key: settings.KeyNotifyEmail, value: "reader@example.com"},
		{name: "empty notify email", key: settings.KeyNotifyEmail, value: ""},
		{name: "unknown key", key: "font_size", value: "12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := settings.Validate(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

// TestDefault tests fallback values.
func TestDefault(t *testing.T) {
	if got := settings.Default(settings.KeyMaghribTime); got != "18:00" {
		t.Errorf("maghrib default = %q, want 18:00", got)
	}
	if got := settings.Default(settings.KeyTheme); got != "dark" {
		t.Errorf("theme default = %q, want dark", got)
	}
	if got := settings.Default(settings.KeyNotificationsEnabled); got != "false" {
		t.Errorf("notifications default = %q, want false", got)
	}
	if got := settings.Default(settings.KeyNotifyEmail); got != "" {
		t.Errorf("notify email default = %q, want empty", got)
	}
}
