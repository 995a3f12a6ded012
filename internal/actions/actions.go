// Package actions содержит именованные операции консоли.
//
// Каждое действие следует одному контуру: локальная проверка входа,
// оптимистичная мутация store, один HTTP-запрос, замещение локального
// состояния авторитетной копией сервера, на ошибке — откат повторной
// загрузкой затронутой сущности и статус для пользователя.
package actions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pc1console/internal/api"
	"pc1console/internal/config"
	"pc1console/internal/debounce"
	"pc1console/internal/model"
	"pc1console/internal/store"
)

// фоновые запросы, запущенные таймером дебаунса, живут не дольше минуты
const backgroundRequestTimeout = time.Minute

// Ключ дебаунса записи настроек: объект настроек один.
const settingsWriteKey = "settings"

// Actions — слой действий консоли
type Actions struct {
	api    *api.Client
	store  *store.Store
	logger *zap.Logger

	// отложенные записи модулей, ключ — id модуля
	moduleWrites *debounce.Writer
	// отложенная запись настроек
	settingsWrites *debounce.Writer

	retryCfg config.RetryConfig
}

// New создает слой действий
func New(client *api.Client, st *store.Store, cfg *config.Config, logger *zap.Logger) *Actions {
	return &Actions{
		api:            client,
		store:          st,
		logger:         logger,
		moduleWrites:   debounce.NewWriter(cfg.ModuleWriteDebounce),
		settingsWrites: debounce.NewWriter(cfg.SettingsWriteDebounce),
		retryCfg:       cfg.RetryConfig,
	}
}

// mutation — один проход контура «оптимистично → запрос → сверка»
type mutation struct {
	name string
	// apply — оптимистичная локальная мутация; может отсутствовать
	apply func()
	// request выполняет HTTP-запрос и возвращает сверку с ответом
	request func(ctx context.Context) (reconcile func(), err error)
	// rollback восстанавливает авторитетное состояние после ошибки
	rollback func(ctx context.Context)
	// success — статус при удаче; пустая строка не показывается
	success string
	// failure — статус при ошибке
	failure string
}

// run прогоняет мутацию по контуру
func (a *Actions) run(ctx context.Context, m mutation) error {
	if m.apply != nil {
		m.apply()
	}

	reconcile, err := m.request(ctx)
	if err != nil {
		a.logger.Error("Action failed", zap.String("action", m.name), zap.Error(err))
		if m.rollback != nil {
			m.rollback(ctx)
		}
		if m.failure != "" {
			a.store.SetStatus(model.StatusError, m.failure)
		}
		return err
	}

	if reconcile != nil {
		reconcile()
	}
	if m.success != "" {
		a.store.SetStatus(model.StatusSuccess, m.success)
	}
	return nil
}

// refetchSettings восстанавливает настройки авторитетной копией сервера
func (a *Actions) refetchSettings(ctx context.Context) {
	settings, err := a.api.GetSettings(ctx)
	if err != nil {
		a.logger.Error("Settings refetch after rollback failed", zap.Error(err))
		return
	}
	a.store.SetSettings(*settings)
}

// refetchModule восстанавливает один модуль; исчезнувший на сервере
// модуль вычищается и локально.
func (a *Actions) refetchModule(ctx context.Context, id string) {
	modules, err := a.api.ListModules(ctx)
	if err != nil {
		a.logger.Error("Module refetch after rollback failed", zap.String("module_id", id), zap.Error(err))
		return
	}
	if m, ok := modules[id]; ok {
		a.store.ReplaceModule(m)
		return
	}
	a.store.RemoveModule(id)
}

// Load выполняет начальную загрузку: настройки и модули параллельно
func (a *Actions) Load(ctx context.Context) error {
	type result struct{ err error }
	settingsCh := make(chan result, 1)
	modulesCh := make(chan result, 1)

	go func() {
		settings, err := a.api.GetSettings(ctx)
		if err == nil {
			a.store.SetSettings(*settings)
		}
		settingsCh <- result{err}
	}()
	go func() {
		modules, err := a.api.ListModules(ctx)
		if err == nil {
			a.store.SetModules(modules)
		}
		modulesCh <- result{err}
	}()

	sErr := (<-settingsCh).err
	mErr := (<-modulesCh).err
	a.store.SetLoading(false)

	if sErr != nil {
		a.store.SetStatus(model.StatusError, "Failed to load settings")
		return sErr
	}
	if mErr != nil {
		a.store.SetStatus(model.StatusError, "Failed to load modules")
		return mErr
	}
	return nil
}

// FlushPendingWrites немедленно отправляет все отложенные записи;
// вызывается перед печатью и при выходе.
func (a *Actions) FlushPendingWrites() {
	a.moduleWrites.FlushAll()
	a.settingsWrites.FlushAll()
}
