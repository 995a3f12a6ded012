package actions

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pc1console/internal/api"
	"pc1console/internal/model"
	"pc1console/internal/timefmt"
	"pc1console/internal/transport"
)

// SetSystemTime устанавливает дату и время устройства вручную
func (a *Actions) SetSystemTime(ctx context.Context, date, timeOfDay string) error {
	if !timefmt.ValidDate(date) {
		return model.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	if !timefmt.ValidHHMMSS(timeOfDay) {
		return model.ValidationError{Field: "time", Message: "must be HH:MM:SS"}
	}

	return a.run(ctx, mutation{
		name: "set_system_time",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.SetSystemTime(ctx, date, timeOfDay)
		},
		success: "Time updated",
		failure: "Failed to set time",
	})
}

// SyncTimeNow запускает NTP-синхронизацию
func (a *Actions) SyncTimeNow(ctx context.Context) error {
	return a.run(ctx, mutation{
		name: "sync_time",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.SyncTime(ctx)
		},
		success: "Time synchronized",
		failure: "Failed to synchronize time",
	})
}

// SetSSHEnabled включает или выключает SSH-доступ
func (a *Actions) SetSSHEnabled(ctx context.Context, enabled bool) error {
	success := "SSH disabled"
	if enabled {
		success = "SSH enabled"
	}
	return a.run(ctx, mutation{
		name: "set_ssh_enabled",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.SetSSHEnabled(ctx, enabled)
		},
		success: success,
		failure: "Failed to change SSH state",
	})
}

// SetSSHPassword меняет пароль SSH
func (a *Actions) SetSSHPassword(ctx context.Context, password string) error {
	if err := model.ValidateRequired("password", password); err != nil {
		return err
	}
	return a.run(ctx, mutation{
		name: "set_ssh_password",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.SetSSHPassword(ctx, password)
		},
		success: "SSH password updated",
		failure: "Failed to set SSH password",
	})
}

// InstallUpdate запускает установку обновления. Сетевая ошибка —
// ожидаемый путь перезапуска, не ошибка.
func (a *Actions) InstallUpdate(ctx context.Context) error {
	if err := a.api.InstallUpdate(ctx); err != nil {
		// не-HTTP ошибка означает оборванное соединение: устройство
		// уже перезапускается
		var reqErr *api.RequestError
		if !errors.As(err, &reqErr) {
			a.logger.Info("Device dropped connection during update install", zap.Error(err))
			return nil
		}
		a.store.SetStatus(model.StatusError, "Failed to install update")
		return err
	}
	return nil
}

// WaitForDevice опрашивает /api/health, пока устройство перезапускается
// после установки обновления.
func (a *Actions) WaitForDevice(ctx context.Context) error {
	err := transport.WithRetry(ctx, a.logger, a.retryCfg, func() error {
		return a.api.Health(ctx)
	})
	if err != nil {
		return fmt.Errorf("device did not come back: %w", err)
	}
	a.logger.Info("Device is back after update install")
	return nil
}
