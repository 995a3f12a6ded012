package api

import (
	"context"
	"net/http"

	"pc1console/internal/model"
)

// GetSettings запрашивает полные настройки устройства
func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// saveSettingsResponse — ответ POST /api/settings; сервер может вернуть
// обновленный объект, а может не вернуть ничего.
type saveSettingsResponse struct {
	Settings *model.Settings `json:"settings"`
	Config   *model.Settings `json:"config"`
}

// SaveSettings записывает полный объект настроек. Возвращает
// авторитетную копию сервера, если тот ее прислал, иначе nil.
func (c *Client) SaveSettings(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	var resp saveSettingsResponse
	if err := c.do(ctx, http.MethodPost, "/api/settings", nil, settings, &resp); err != nil {
		return nil, err
	}
	if resp.Settings != nil {
		return resp.Settings, nil
	}
	return resp.Config, nil
}

// resetResponse — ответ POST /api/settings/reset
type resetResponse struct {
	Config *model.Settings `json:"config"`
}

// ResetSettings восстанавливает настройки по умолчанию
func (c *Client) ResetSettings(ctx context.Context) (*model.Settings, error) {
	var resp resetResponse
	if err := c.do(ctx, http.MethodPost, "/api/settings/reset", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Config, nil
}
