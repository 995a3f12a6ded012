package api

import (
	"context"
	"net/http"
	"net/url"

	"pc1console/internal/model"
)

type modulesResponse struct {
	Modules map[string]model.Module `json:"modules"`
}

type moduleResponse struct {
	Module *model.Module `json:"module"`
}

// ListModules запрашивает все модули устройства
func (c *Client) ListModules(ctx context.Context) (map[string]model.Module, error) {
	var resp modulesResponse
	if err := c.do(ctx, http.MethodGet, "/api/modules", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Modules == nil {
		return map[string]model.Module{}, nil
	}
	return resp.Modules, nil
}

// CreateModule создает модуль; id назначает сервер
func (c *Client) CreateModule(ctx context.Context, moduleType, name string, config map[string]any) (*model.Module, error) {
	body := map[string]any{
		"type":   moduleType,
		"name":   name,
		"config": config,
	}
	var resp moduleResponse
	if err := c.do(ctx, http.MethodPost, "/api/modules", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Module, nil
}

// UpdateModule заменяет модуль целиком
func (c *Client) UpdateModule(ctx context.Context, module model.Module) (*model.Module, error) {
	var resp moduleResponse
	if err := c.do(ctx, http.MethodPut, "/api/modules/"+url.PathEscape(module.ID), nil, module, &resp); err != nil {
		return nil, err
	}
	return resp.Module, nil
}

// DeleteModule удаляет модуль
func (c *Client) DeleteModule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/modules/"+url.PathEscape(id), nil, nil, nil)
}

// ModuleActionResult — ответ действия модуля
type ModuleActionResult struct {
	Reload  bool   `json:"reload"`
	Message string `json:"message,omitempty"`
}

// InvokeModuleAction вызывает действие, специфичное для вида модуля
func (c *Client) InvokeModuleAction(ctx context.Context, id, action string) (*ModuleActionResult, error) {
	var resp ModuleActionResult
	path := "/api/modules/" + url.PathEscape(id) + "/actions/" + url.PathEscape(action)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type moduleTypesResponse struct {
	ModuleTypes []model.ModuleType `json:"moduleTypes"`
}

// ModuleTypes запрашивает реестр видов модулей
func (c *Client) ModuleTypes(ctx context.Context) ([]model.ModuleType, error) {
	var resp moduleTypesResponse
	if err := c.do(ctx, http.MethodGet, "/api/module-types", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ModuleTypes, nil
}
