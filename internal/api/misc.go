package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"pc1console/internal/model"
)

type locationResponse struct {
	Results []model.LocationResult `json:"results"`
}

// SearchLocation ищет местоположение по свободному тексту
func (c *Client) SearchLocation(ctx context.Context, term string, limit int, useAPI bool) ([]model.LocationResult, error) {
	query := url.Values{
		"q":       {term},
		"limit":   {strconv.Itoa(limit)},
		"use_api": {strconv.FormatBool(useAPI)},
	}
	var resp locationResponse
	if err := c.do(ctx, http.MethodGet, "/api/location/search", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// TestWebhook выполняет предпросмотр вебхука с текущими данными формы.
// Возвращает тело ответа как текст.
func (c *Client) TestWebhook(ctx context.Context, form map[string]any) (string, error) {
	return c.doText(ctx, http.MethodPost, "/api/webhook/test", form)
}

// AssistantReply — ответ ассистента
type AssistantReply struct {
	Reply   string         `json:"reply,omitempty"`
	Actions []string       `json:"actions,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// AssistantChat отправляет сообщение ассистенту
func (c *Client) AssistantChat(ctx context.Context, message string) (*AssistantReply, error) {
	body := map[string]string{"message": message}
	var resp AssistantReply
	if err := c.do(ctx, http.MethodPost, "/api/assistant/chat", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssistantExecute выполняет действие, предложенное ассистентом
func (c *Client) AssistantExecute(ctx context.Context, action string) (*AssistantReply, error) {
	body := map[string]string{"action": action}
	var resp AssistantReply
	if err := c.do(ctx, http.MethodPost, "/api/assistant/execute", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssistantApplyConfig применяет конфигурацию, предложенную ассистентом
func (c *Client) AssistantApplyConfig(ctx context.Context, config map[string]any) error {
	return c.do(ctx, http.MethodPost, "/api/assistant/apply-config", nil, config, nil)
}
