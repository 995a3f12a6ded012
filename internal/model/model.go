// Package model содержит модели данных устройства PC-1.
package model

import (
	"sort"
)

// Количество каналов на устройстве. Позиции 1..ChannelCount существуют
// логически всегда, даже если сервер их не прислал.
const ChannelCount = 8

// TimeFormat12 и TimeFormat24 — допустимые значения time_format.
const (
	TimeFormat12 = "12h"
	TimeFormat24 = "24h"
)

// Режимы синхронизации времени.
const (
	TimeSyncManual    = "manual"
	TimeSyncAutomatic = "automatic"
)

// Settings представляет глобальные настройки устройства
type Settings struct {
	Timezone             string             `json:"timezone,omitempty"`
	Latitude             float64            `json:"latitude,omitempty"`
	Longitude            float64            `json:"longitude,omitempty"`
	CityName             string             `json:"city_name,omitempty"`
	State                string             `json:"state,omitempty"`
	Zipcode              string             `json:"zipcode,omitempty"`
	TimeFormat           string             `json:"time_format,omitempty"`
	TimeSyncMode         string             `json:"time_sync_mode,omitempty"`
	MaxPrintLines        int                `json:"max_print_lines"`
	CutterFeedLines      int                `json:"cutter_feed_lines"`
	UseAPILocationSearch bool               `json:"use_api_location_search"`
	InvertPrint          bool               `json:"invert_print"`
	Channels             map[int]Channel    `json:"channels,omitempty"`
	Modules              map[string]Module  `json:"modules,omitempty"`
	TelegramBot          *TelegramBot       `json:"telegram_bot,omitempty"`
}

// TelegramBot — вложенный блок настроек, по которому консоль решает,
// показывать ли Ассистента.
type TelegramBot struct {
	AIProvider string `json:"ai_provider,omitempty"`
	AIAPIKey   string `json:"ai_api_key,omitempty"`
	AIModel    string `json:"ai_model,omitempty"`
}

// AssistantEnabled сообщает, настроен ли AI-провайдер
func (s *Settings) AssistantEnabled() bool {
	return s.TelegramBot != nil && s.TelegramBot.AIProvider != ""
}

// Channel возвращает канал по позиции; отсутствующий канал эквивалентен пустому
func (s *Settings) Channel(pos int) Channel {
	if s.Channels != nil {
		if ch, ok := s.Channels[pos]; ok {
			return ch
		}
	}
	return Channel{}
}

// Clone возвращает глубокую копию настроек
func (s Settings) Clone() Settings {
	out := s
	if s.Channels != nil {
		out.Channels = make(map[int]Channel, len(s.Channels))
		for pos, ch := range s.Channels {
			out.Channels[pos] = ch.Clone()
		}
	}
	if s.Modules != nil {
		out.Modules = make(map[string]Module, len(s.Modules))
		for id, m := range s.Modules {
			out.Modules[id] = m.Clone()
		}
	}
	if s.TelegramBot != nil {
		tb := *s.TelegramBot
		out.TelegramBot = &tb
	}
	return out
}

// ModuleRef — привязка модуля к каналу
type ModuleRef struct {
	ModuleID string `json:"module_id"`
	Order    int    `json:"order"`
}

// Channel представляет один из восьми каналов печати
type Channel struct {
	Modules  []ModuleRef `json:"modules"`
	Schedule []string    `json:"schedule,omitempty"`
}

// Clone возвращает глубокую копию канала
func (c Channel) Clone() Channel {
	out := Channel{}
	if c.Modules != nil {
		out.Modules = append([]ModuleRef(nil), c.Modules...)
	}
	if c.Schedule != nil {
		out.Schedule = append([]string(nil), c.Schedule...)
	}
	return out
}

// SortedModules возвращает привязки в порядке возрастания order
func (c Channel) SortedModules() []ModuleRef {
	refs := append([]ModuleRef(nil), c.Modules...)
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Order < refs[j].Order })
	return refs
}

// Contains сообщает, привязан ли модуль к каналу
func (c Channel) Contains(moduleID string) bool {
	for _, ref := range c.Modules {
		if ref.ModuleID == moduleID {
			return true
		}
	}
	return false
}

// NextOrder возвращает порядковый номер для новой привязки:
// 1 + максимальный из существующих, либо 0 для пустого канала.
func (c Channel) NextOrder() int {
	if len(c.Modules) == 0 {
		return 0
	}
	max := c.Modules[0].Order
	for _, ref := range c.Modules[1:] {
		if ref.Order > max {
			max = ref.Order
		}
	}
	return max + 1
}

// Module представляет настроенный экземпляр производителя контента
type Module struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Config map[string]any `json:"config"`
}

// Clone возвращает копию модуля с отдельной картой config
func (m Module) Clone() Module {
	out := m
	out.Config = cloneValue(m.Config).(map[string]any)
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	case nil:
		return map[string]any{}
	default:
		return v
	}
}

// ModuleType — запись реестра видов модулей
type ModuleType struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Offline bool   `json:"offline"`
	Icon    string `json:"icon,omitempty"`
}

// StatusKind — вид статусного сообщения
type StatusKind string

// Виды статусов.
const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
	StatusInfo    StatusKind = "info"
)

// Status — транзиентное сообщение для пользователя
type Status struct {
	Kind    StatusKind
	Message string
}

// LocationResult — результат поиска местоположения
type LocationResult struct {
	Name      string  `json:"name,omitempty"`
	City      string  `json:"city,omitempty"`
	CityName  string  `json:"city_name,omitempty"`
	State     string  `json:"state,omitempty"`
	Zipcode   string  `json:"zipcode,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DisplayCity возвращает имя города для подстановки в настройки.
// Предпочитает чистое поле city, чтобы не получить "Город, Штат, Штат".
func (r LocationResult) DisplayCity() string {
	if r.City != "" {
		return r.City
	}
	if r.CityName != "" {
		return r.CityName
	}
	return r.Name
}

// SystemTime — ответ /api/system/time
type SystemTime struct {
	Datetime  string `json:"datetime"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Formatted string `json:"formatted,omitempty"`
}

// WiFiStatus — ответ /api/wifi/status
type WiFiStatus struct {
	Mode      string `json:"mode"`
	Connected bool   `json:"connected"`
	SSID      string `json:"ssid,omitempty"`
	IP        string `json:"ip,omitempty"`
	Signal    int    `json:"signal,omitempty"`
}

// WiFiNetwork — одна сеть из результатов сканирования
type WiFiNetwork struct {
	SSID     string `json:"ssid"`
	Signal   int    `json:"signal,omitempty"`
	Security string `json:"security,omitempty"`
}

// SSHStatus — ответ /api/system/ssh/status
type SSHStatus struct {
	Enabled bool `json:"enabled"`
}

// VersionInfo — ответ /api/system/version
type VersionInfo struct {
	Version string `json:"version"`
	Channel string `json:"channel,omitempty"`
}

// UpdateInfo — ответ /api/system/updates/check
type UpdateInfo struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
