package actions

import (
	"context"

	"go.uber.org/zap"

	"pc1console/internal/model"
)

// SaveSettings оптимистично накладывает патч и записывает полный объект
// настроек. Ошибка записи показывает статус без отката: следующий
// периодический рефетч исправит состояние.
func (a *Actions) SaveSettings(ctx context.Context, patch model.SettingsPatch) error {
	a.prepareSettingsPatch(ctx, patch)
	return a.sendSettings(ctx)
}

// SaveSettingsDebounced накладывает патч немедленно, а запись откладывает
// на окно тишины настроек. Пустой патч записи не планирует.
func (a *Actions) SaveSettingsDebounced(ctx context.Context, patch model.SettingsPatch) {
	if patch.IsZero() {
		return
	}
	a.prepareSettingsPatch(ctx, patch)
	a.settingsWrites.Trigger(settingsWriteKey, func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), backgroundRequestTimeout)
		defer cancel()
		_ = a.sendSettings(sendCtx)
	})
}

func (a *Actions) prepareSettingsPatch(ctx context.Context, patch model.SettingsPatch) {
	// переключение на ручное время отключает NTP; ответ не важен
	if patch.TimeSyncMode != nil && *patch.TimeSyncMode == model.TimeSyncManual {
		go func() {
			disableCtx, cancel := context.WithTimeout(context.Background(), backgroundRequestTimeout)
			defer cancel()
			if err := a.api.DisableTimeSync(disableCtx); err != nil {
				a.logger.Warn("Best-effort NTP disable failed", zap.Error(err))
			}
		}()
	}

	a.store.ApplySettingsPatch(patch)
}

// sendSettings записывает текущий объект настроек store на сервер
func (a *Actions) sendSettings(ctx context.Context) error {
	return a.run(ctx, mutation{
		name: "save_settings",
		request: func(ctx context.Context) (func(), error) {
			settings, ok := a.store.Settings()
			if !ok {
				return nil, nil
			}
			authoritative, err := a.api.SaveSettings(ctx, &settings)
			if err != nil {
				return nil, err
			}
			return func() {
				// доверяем ответу сервера, если он прислал объект
				if authoritative != nil {
					a.store.SetSettings(*authoritative)
				}
			}, nil
		},
		success: "Settings saved",
		failure: "Failed to save settings",
	})
}

// ResetSettings восстанавливает настройки по умолчанию и очищает модули
func (a *Actions) ResetSettings(ctx context.Context) error {
	return a.run(ctx, mutation{
		name: "reset_settings",
		request: func(ctx context.Context) (func(), error) {
			defaults, err := a.api.ResetSettings(ctx)
			if err != nil {
				return nil, err
			}
			return func() {
				if defaults != nil {
					a.store.SetSettings(*defaults)
				}
				a.store.SetModules(map[string]model.Module{})
			}, nil
		},
		success: "Settings reset to defaults",
		failure: "Failed to reset settings",
	})
}

// SwapChannels меняет местами два канала и записывает настройки целиком
func (a *Actions) SwapChannels(ctx context.Context, pos1, pos2 int) error {
	if err := model.ValidateChannelPosition(pos1); err != nil {
		return err
	}
	if err := model.ValidateChannelPosition(pos2); err != nil {
		return err
	}
	if pos1 == pos2 {
		return nil
	}

	a.store.SwapChannels(pos1, pos2)
	return a.sendSettings(ctx)
}
