// Package registry содержит общепроцессный кэш реестра видов модулей.
//
// Реестр загружается один раз; одновременные подписчики делят один
// запрос. При недоступном сервере используется встроенная таблица видов,
// чтобы интерфейс остался работоспособным.
package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"pc1console/internal/model"
	"pc1console/internal/modkind"
)

// Fetcher загружает реестр с устройства; реализуется api.Client
type Fetcher interface {
	ModuleTypes(ctx context.Context) ([]model.ModuleType, error)
}

// Registry — кэш реестра видов модулей
type Registry struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu       sync.Mutex
	cached   []model.ModuleType
	loaded   bool
	inflight chan struct{}
}

// New создает кэш реестра
func New(fetcher Fetcher, logger *zap.Logger) *Registry {
	return &Registry{fetcher: fetcher, logger: logger}
}

// Get возвращает реестр видов, загружая его при первом обращении.
// Конкурентные вызовы делят один запрос к устройству.
func (r *Registry) Get(ctx context.Context) []model.ModuleType {
	r.mu.Lock()
	if r.loaded {
		defer r.mu.Unlock()
		return append([]model.ModuleType(nil), r.cached...)
	}

	if r.inflight != nil {
		done := r.inflight
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return modkind.Fallback()
		}
		return r.Get(ctx)
	}

	done := make(chan struct{})
	r.inflight = done
	r.mu.Unlock()

	types, err := r.fetcher.ModuleTypes(ctx)

	r.mu.Lock()
	if err != nil || len(types) == 0 {
		if err != nil {
			r.logger.Warn("Module type registry fetch failed, using built-in fallback", zap.Error(err))
		}
		r.cached = modkind.Fallback()
	} else {
		r.cached = types
	}
	r.loaded = true
	r.inflight = nil
	close(done)
	defer r.mu.Unlock()

	return append([]model.ModuleType(nil), r.cached...)
}

// Lookup возвращает запись реестра для вида
func (r *Registry) Lookup(ctx context.Context, id string) (model.ModuleType, bool) {
	for _, t := range r.Get(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return model.ModuleType{}, false
}

// Offline сообщает, офлайновый ли вид. Неизвестный вид считается
// онлайновым: индикатору списка каналов безопаснее предположить сеть.
func (r *Registry) Offline(ctx context.Context, id string) bool {
	if t, ok := r.Lookup(ctx, id); ok {
		return t.Offline
	}
	return false
}
