package api

import (
	"context"
	"net/http"

	"pc1console/internal/model"
)

// WiFiStatus запрашивает режим и состояние сети устройства
func (c *Client) WiFiStatus(ctx context.Context) (*model.WiFiStatus, error) {
	var resp model.WiFiStatus
	if err := c.do(ctx, http.MethodGet, "/api/wifi/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type wifiNetworksResponse struct {
	Networks []model.WiFiNetwork `json:"networks"`
}

// WiFiNetworks сканирует доступные сети
func (c *Client) WiFiNetworks(ctx context.Context) ([]model.WiFiNetwork, error) {
	var resp wifiNetworksResponse
	if err := c.do(ctx, http.MethodGet, "/api/wifi/networks", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Networks, nil
}

// WiFiConnect подключает устройство к сети. Открытая сеть передается
// с password = null.
func (c *Client) WiFiConnect(ctx context.Context, ssid string, password *string) error {
	body := map[string]any{"ssid": ssid, "password": password}
	return c.do(ctx, http.MethodPost, "/api/wifi/connect", nil, body, nil)
}

// StartAPMode переводит устройство в режим точки доступа
func (c *Client) StartAPMode(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/wifi/ap-mode", nil, nil, nil)
}
