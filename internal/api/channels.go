package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pc1console/internal/model"
)

type channelResponse struct {
	Channel *model.Channel `json:"channel"`
}

func channelPath(pos int) string {
	return "/api/channels/" + strconv.Itoa(pos)
}

// AssignModule привязывает модуль к каналу. Порядок передается только
// если задан; иначе его выбирает сервер.
func (c *Client) AssignModule(ctx context.Context, pos int, moduleID string, order *int) (*model.Channel, error) {
	query := url.Values{"module_id": {moduleID}}
	if order != nil {
		query.Set("order", strconv.Itoa(*order))
	}
	var resp channelResponse
	if err := c.do(ctx, http.MethodPost, channelPath(pos)+"/modules", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Channel, nil
}

// RemoveModule снимает привязку модуля к каналу
func (c *Client) RemoveModule(ctx context.Context, pos int, moduleID string) error {
	return c.do(ctx, http.MethodDelete, channelPath(pos)+"/modules/"+url.PathEscape(moduleID), nil, nil, nil)
}

// ReorderChannel отправляет полную карту module_id → order
func (c *Client) ReorderChannel(ctx context.Context, pos int, orders map[string]int) (*model.Channel, error) {
	var resp channelResponse
	if err := c.do(ctx, http.MethodPost, channelPath(pos)+"/modules/reorder", nil, orders, &resp); err != nil {
		return nil, err
	}
	return resp.Channel, nil
}

// SetSchedule записывает отсортированный список времен HH:MM
func (c *Client) SetSchedule(ctx context.Context, pos int, times []string) (*model.Channel, error) {
	if times == nil {
		times = []string{}
	}
	var resp channelResponse
	if err := c.do(ctx, http.MethodPost, channelPath(pos)+"/schedule", nil, times, &resp); err != nil {
		return nil, err
	}
	return resp.Channel, nil
}

// PrintChannel запускает ручную печать канала
func (c *Client) PrintChannel(ctx context.Context, pos int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/action/print-channel/%d", pos), nil, nil, nil)
}

// DebugPrintModule печатает один модуль в обход каналов
func (c *Client) DebugPrintModule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/debug/print-module/"+url.PathEscape(id), nil, nil, nil)
}

// DebugTestWebhook запускает тестовый вебхук на устройстве
func (c *Client) DebugTestWebhook(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/debug/test-webhook", nil, nil, nil)
}
