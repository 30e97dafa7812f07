package orchestrators

import (
	"context"
	"log/slog"

	"khatamflow/internal/domain/settings"
)

// UpdateSettingInput carries input for the update setting orchestrator.
type UpdateSettingInput struct {
	Key   string
	Value string
}

// UpdateSettingDeps holds dependencies for UpdateSetting.
type UpdateSettingDeps struct {
	SettingsStore SettingsStoreForOrchestrator
}

// ExecuteUpdateSetting validates and stores a single setting.
// A changed maghrib cutoff takes effect on the next target
// recalculation; nothing is rebuilt eagerly here.
// PRE: Key is a known setting; Value is storable under it
// POST: setting persisted
func ExecuteUpdateSetting(ctx context.Context, input UpdateSettingInput, deps UpdateSettingDeps) error {
	if err := settings.Validate(input.Key, input.Value); err != nil {
		return err
	}
	if err := deps.SettingsStore.Put(ctx, input.Key, input.Value); err != nil {
		return err
	}
	slog.Info("settings_event", "event", "setting_updated", "key", input.Key)
	return nil
}
