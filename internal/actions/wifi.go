package actions

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pc1console/internal/api"
	"pc1console/internal/model"
)

// RefreshWiFiStatus опрашивает состояние сети; обновляет только сетевые
// ячейки store, настройки и модули не трогаются.
func (a *Actions) RefreshWiFiStatus(ctx context.Context) error {
	status, err := a.api.WiFiStatus(ctx)
	if err != nil {
		a.logger.Debug("WiFi status poll failed", zap.Error(err))
		return err
	}
	a.store.SetWiFi(*status)
	return nil
}

// ScanWiFiNetworks сканирует сети для мастера настройки
func (a *Actions) ScanWiFiNetworks(ctx context.Context) ([]model.WiFiNetwork, error) {
	networks, err := a.api.WiFiNetworks(ctx)
	if err != nil {
		a.store.SetStatus(model.StatusError, "Failed to scan networks")
		return nil, err
	}
	return networks, nil
}

// ConnectWiFi подключает устройство к сети. Сетевая ошибка после отправки
// считается успехом: устройство гасит точку доступа и соединение
// ожидаемо рвется.
func (a *Actions) ConnectWiFi(ctx context.Context, ssid string, password *string) error {
	if err := model.ValidateRequired("ssid", ssid); err != nil {
		return err
	}

	if err := a.api.WiFiConnect(ctx, ssid, password); err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) {
			a.store.SetStatus(model.StatusError, "Failed to start connection")
			return err
		}
		a.logger.Info("Connection started, device dropped the AP", zap.String("ssid", ssid))
	}

	a.store.SetStatus(model.StatusInfo, "Connecting to "+ssid)
	return nil
}

// StartAPMode переводит устройство в режим точки доступа
func (a *Actions) StartAPMode(ctx context.Context) error {
	return a.run(ctx, mutation{
		name: "start_ap_mode",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.StartAPMode(ctx)
		},
		failure: "Failed to start AP mode",
	})
}
