// Package modkind содержит таблицу дескрипторов видов модулей.
//
// Все знание о виде модуля собрано в одной записи: конфигурация по
// умолчанию, предикат настроенности, чистка перед записью, схема формы.
// Новый вид — одна запись таблицы.
package modkind

import (
	"sort"
	"strings"

	"pc1console/internal/model"
	"pc1console/internal/schema"
)

// Kind — дескриптор вида модуля
type Kind struct {
	ID      string
	Label   string
	Offline bool
	Icon    string

	// DefaultConfig — config нового модуля этого вида
	DefaultConfig func() map[string]any
	// IsConfigured — полностью ли настроен модуль; глобальные настройки
	// нужны видам, наследующим местоположение устройства
	IsConfigured func(config map[string]any, settings *model.Settings) bool
	// Cleanse убирает из config поля чужих видов перед записью
	Cleanse func(config map[string]any) map[string]any
	// Schema — описание формы редактора и UI-подсказки
	Schema func() (*schema.Schema, schema.Hints)
	// Validate — проверки вида поверх общей схемы
	Validate func(config map[string]any) model.ValidationErrors
}

// Get возвращает дескриптор вида; неизвестный вид получает дескриптор
// по умолчанию, который ничего не требует и ничего не вычищает.
func Get(id string) Kind {
	if k, ok := kinds[id]; ok {
		return k
	}
	return Kind{
		ID:            id,
		Label:         id,
		DefaultConfig: func() map[string]any { return map[string]any{} },
		IsConfigured:  func(map[string]any, *model.Settings) bool { return true },
		Cleanse:       copyConfig,
		Schema:        func() (*schema.Schema, schema.Hints) { return emptySchema(), schema.Hints{} },
		Validate:      func(map[string]any) model.ValidationErrors { return nil },
	}
}

// Known сообщает, есть ли вид в таблице
func Known(id string) bool {
	_, ok := kinds[id]
	return ok
}

// IDs возвращает отсортированный список видов
func IDs() []string {
	out := make([]string, 0, len(kinds))
	for id := range kinds {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Fallback возвращает реестр видов, используемый когда сервер
// недоступен; интерфейс остается работоспособным.
func Fallback() []model.ModuleType {
	out := make([]model.ModuleType, 0, len(kinds))
	for _, id := range IDs() {
		k := kinds[id]
		out = append(out, model.ModuleType{ID: k.ID, Label: k.Label, Offline: k.Offline, Icon: k.Icon})
	}
	return out
}

func getString(config map[string]any, key string) string {
	if config == nil {
		return ""
	}
	s, _ := config[key].(string)
	return strings.TrimSpace(s)
}

func getList(config map[string]any, key string) []any {
	if config == nil {
		return nil
	}
	list, _ := config[key].([]any)
	return list
}

func copyConfig(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for k, v := range config {
		out[k] = v
	}
	return out
}

// cleanseDropping копирует config без перечисленных ключей
func cleanseDropping(keys ...string) func(map[string]any) map[string]any {
	return func(config map[string]any) map[string]any {
		out := copyConfig(config)
		for _, key := range keys {
			delete(out, key)
		}
		return out
	}
}

func emptySchema() *schema.Schema {
	return &schema.Schema{Type: schema.TypeObject, Properties: map[string]*schema.Schema{}}
}

// defaultFromSchema строит config по умолчанию из схемы вида
func defaultFromSchema(build func() (*schema.Schema, schema.Hints)) func() map[string]any {
	return func() map[string]any {
		s, _ := build()
		value := schema.CreateEmptyValue(s)
		if m, ok := value.(map[string]any); ok {
			return m
		}
		return map[string]any{}
	}
}

// ModuleIsConfigured — предикат настроенности модуля для списка каналов
func ModuleIsConfigured(m model.Module, settings *model.Settings) bool {
	return Get(m.Type).IsConfigured(m.Config, settings)
}

// ValidateConfig прогоняет config через общую схему вида и его
// дополнительные проверки; ошибки адресуются стабильными путями.
func ValidateConfig(kindID string, config map[string]any) model.ValidationErrors {
	k := Get(kindID)
	s, hints := k.Schema()
	errs := schema.Validate(config, s, hints)
	return append(errs, k.Validate(config)...)
}

func alwaysConfigured(map[string]any, *model.Settings) bool { return true }

func noExtraValidation(map[string]any) model.ValidationErrors { return nil }
