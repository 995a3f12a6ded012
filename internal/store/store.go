// Package store содержит клиентский кэш состояния устройства.
//
// Ячейки: settings, modules, status, loading, wifiMode, wifiStatus.
// Каждая мутация синхронна и затрагивает только свои ячейки; сетевой
// работой занимается слой действий, который после ответа сервера
// замещает локальные данные авторитетной копией.
package store

import (
	"sync"
	"time"

	"pc1console/internal/model"
)

// Store — кэш состояния устройства
type Store struct {
	mu sync.RWMutex

	settings    model.Settings
	hasSettings bool
	modules     map[string]model.Module
	status      *model.Status
	statusGen   uint64
	loading     bool
	wifiMode    string
	wifiStatus  model.WiFiStatus

	statusClearAfter time.Duration
	onChange         func()
}

// New создает пустой store. Статусы success/info гаснут через
// statusClearAfter; ошибки живут до следующего статуса.
func New(statusClearAfter time.Duration) *Store {
	return &Store{
		modules:          make(map[string]model.Module),
		loading:          true,
		statusClearAfter: statusClearAfter,
	}
}

// SetOnChange регистрирует уведомление о любой мутации; используется
// интерфейсом для перерисовки.
func (s *Store) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	if s.onChange != nil {
		go s.onChange()
	}
}

// Loading сообщает, идет ли начальная загрузка
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading меняет флаг начальной загрузки
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.notify()
	s.mu.Unlock()
}

// Settings возвращает копию настроек и признак их наличия
func (s *Store) Settings() (model.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone(), s.hasSettings
}

// SetSettings замещает настройки авторитетной копией сервера
func (s *Store) SetSettings(settings model.Settings) {
	s.mu.Lock()
	s.settings = settings.Clone()
	s.hasSettings = true
	s.notify()
	s.mu.Unlock()
}

// ApplySettingsPatch накладывает оптимистичный патч на настройки
func (s *Store) ApplySettingsPatch(patch model.SettingsPatch) {
	s.mu.Lock()
	s.settings.Apply(patch)
	s.hasSettings = true
	s.notify()
	s.mu.Unlock()
}

// Channel возвращает канал; отсутствующий канал эквивалентен пустому
func (s *Store) Channel(pos int) model.Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Channel(pos).Clone()
}

// ReplaceChannel замещает канал авторитетной копией сервера
func (s *Store) ReplaceChannel(pos int, ch model.Channel) {
	s.mu.Lock()
	if s.settings.Channels == nil {
		s.settings.Channels = make(map[int]model.Channel)
	}
	s.settings.Channels[pos] = ch.Clone()
	s.notify()
	s.mu.Unlock()
}

// SwapChannels меняет местами содержимое двух позиций
func (s *Store) SwapChannels(pos1, pos2 int) {
	s.mu.Lock()
	if s.settings.Channels == nil {
		s.settings.Channels = make(map[int]model.Channel)
	}
	ch1 := s.settings.Channel(pos1)
	ch2 := s.settings.Channel(pos2)
	s.settings.Channels[pos1] = ch2
	s.settings.Channels[pos2] = ch1
	s.notify()
	s.mu.Unlock()
}

// Modules возвращает копию карты модулей
func (s *Store) Modules() map[string]model.Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.Module, len(s.modules))
	for id, m := range s.modules {
		out[id] = m.Clone()
	}
	return out
}

// Module возвращает модуль по id
func (s *Store) Module(id string) (model.Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.modules[id]
	if !ok {
		return model.Module{}, false
	}
	return m.Clone(), true
}

// SetModules замещает весь набор модулей
func (s *Store) SetModules(modules map[string]model.Module) {
	s.mu.Lock()
	s.modules = make(map[string]model.Module, len(modules))
	for id, m := range modules {
		s.modules[id] = m.Clone()
	}
	s.notify()
	s.mu.Unlock()
}

// ReplaceModule замещает один модуль авторитетной копией сервера
func (s *Store) ReplaceModule(m model.Module) {
	s.mu.Lock()
	s.modules[m.ID] = m.Clone()
	s.notify()
	s.mu.Unlock()
}

// MergeModuleConfig оптимистично накладывает изменения на config модуля
func (s *Store) MergeModuleConfig(id string, updates map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.modules[id]
	if !ok {
		return
	}
	m = m.Clone()
	if m.Config == nil {
		m.Config = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		m.Config[k] = v
	}
	s.modules[id] = m
	s.notify()
}

// RenameModule оптимистично меняет имя модуля
func (s *Store) RenameModule(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.modules[id]
	if !ok {
		return
	}
	m.Name = name
	s.modules[id] = m
	s.notify()
}

// RemoveModule удаляет модуль и вычищает его привязки из всех каналов
func (s *Store) RemoveModule(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modules, id)
	for pos, ch := range s.settings.Channels {
		filtered := ch.Modules[:0:0]
		for _, ref := range ch.Modules {
			if ref.ModuleID != id {
				filtered = append(filtered, ref)
			}
		}
		ch.Modules = filtered
		s.settings.Channels[pos] = ch
	}
	s.notify()
}

// ChannelsWith возвращает позиции каналов, содержащих модуль
func (s *Store) ChannelsWith(moduleID string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int
	for pos := 1; pos <= model.ChannelCount; pos++ {
		if s.settings.Channel(pos).Contains(moduleID) {
			out = append(out, pos)
		}
	}
	return out
}

// Status возвращает текущий статус, либо nil
func (s *Store) Status() *model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil
	}
	st := *s.status
	return &st
}

// SetStatus показывает статус. Success и info гаснут сами; error
// остается до следующего статуса.
func (s *Store) SetStatus(kind model.StatusKind, message string) {
	s.mu.Lock()
	s.status = &model.Status{Kind: kind, Message: message}
	s.statusGen++
	gen := s.statusGen
	clearAfter := s.statusClearAfter
	s.notify()
	s.mu.Unlock()

	if kind == model.StatusError || clearAfter <= 0 {
		return
	}
	time.AfterFunc(clearAfter, func() {
		s.mu.Lock()
		// гасим только тот статус, который ставили
		if s.statusGen == gen {
			s.status = nil
			s.notify()
		}
		s.mu.Unlock()
	})
}

// ClearStatus убирает статус немедленно
func (s *Store) ClearStatus() {
	s.mu.Lock()
	s.status = nil
	s.statusGen++
	s.notify()
	s.mu.Unlock()
}

// WiFi возвращает режим и состояние сети
func (s *Store) WiFi() (string, model.WiFiStatus) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wifiMode, s.wifiStatus
}

// SetWiFi обновляет только сетевые ячейки; настройки и модули не трогает
func (s *Store) SetWiFi(status model.WiFiStatus) {
	s.mu.Lock()
	s.wifiMode = status.Mode
	s.wifiStatus = status
	s.notify()
	s.mu.Unlock()
}
