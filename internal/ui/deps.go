// Package ui реализует терминальный интерфейс консоли PC-1.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pc1console/internal/actions"
	"pc1console/internal/api"
	"pc1console/internal/config"
	"pc1console/internal/registry"
	"pc1console/internal/store"
)

// Deps — зависимости интерфейса
type Deps struct {
	Store    *store.Store
	Actions  *actions.Actions
	API      *api.Client
	Registry *registry.Registry
	Config   *config.Config
	Logger   *zap.Logger

	// Send доставляет сообщение в работающую программу из фоновых
	// колбэков; устанавливается в Run.
	Send func(tea.Msg)
}
