package api

import (
	"context"
	"net/http"

	"pc1console/internal/model"
)

// SystemTime запрашивает текущее время устройства
func (c *Client) SystemTime(ctx context.Context) (*model.SystemTime, error) {
	var resp model.SystemTime
	if err := c.do(ctx, http.MethodGet, "/api/system/time", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetSystemTime устанавливает дату "YYYY-MM-DD" и время "HH:MM:SS"
func (c *Client) SetSystemTime(ctx context.Context, date, timeOfDay string) error {
	body := map[string]string{"date": date, "time": timeOfDay}
	return c.do(ctx, http.MethodPost, "/api/system/time", nil, body, nil)
}

// SyncTime запускает NTP-синхронизацию
func (c *Client) SyncTime(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/time/sync", nil, nil, nil)
}

// DisableTimeSync отключает NTP-синхронизацию
func (c *Client) DisableTimeSync(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/time/sync/disable", nil, nil, nil)
}

// Version запрашивает версию прошивки
func (c *Client) Version(ctx context.Context) (*model.VersionInfo, error) {
	var resp model.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/api/system/version", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckUpdates проверяет наличие обновления
func (c *Client) CheckUpdates(ctx context.Context) (*model.UpdateInfo, error) {
	var resp model.UpdateInfo
	if err := c.do(ctx, http.MethodGet, "/api/system/updates/check", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InstallUpdate запускает установку обновления. Сетевая ошибка здесь
// ожидаема: устройство перезапускается.
func (c *Client) InstallUpdate(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/updates/install", nil, nil, nil)
}

// SSHStatus запрашивает состояние SSH-доступа
func (c *Client) SSHStatus(ctx context.Context) (*model.SSHStatus, error) {
	var resp model.SSHStatus
	if err := c.do(ctx, http.MethodGet, "/api/system/ssh/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetSSHEnabled включает или выключает SSH
func (c *Client) SetSSHEnabled(ctx context.Context, enabled bool) error {
	path := "/api/system/ssh/disable"
	if enabled {
		path = "/api/system/ssh/enable"
	}
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// SetSSHPassword меняет пароль SSH
func (c *Client) SetSSHPassword(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, "/api/system/ssh/password", nil, body, nil)
}

// Health опрашивает /api/health; используется во время перезапуска
// устройства после установки обновления.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}
