// Package schema содержит описание форм конфигурации модулей.
//
// Схема — упрощенный JSON Schema, параллельно которому идут UI-подсказки
// (виджет, плейсхолдер, условная видимость). Редактор форм рендерит
// config модуля рекурсивно по этим описаниям.
package schema

import "sort"

// Типы значений схемы.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
)

// Виджеты редактора.
const (
	WidgetTextarea       = "textarea"
	WidgetPassword       = "password"
	WidgetRichText       = "richtext"
	WidgetLocationSearch = "location-search"
	WidgetKeyValueList   = "key-value-list"
	WidgetPresetSelect   = "preset-select"
	WidgetWebhookTest    = "webhook-test"
	WidgetActionButton   = "action-button"
)

// Schema описывает одно значение формы
type Schema struct {
	Type        string
	Title       string
	Description string

	// Для object
	Properties map[string]*Schema
	// Порядок показа свойств; свойства вне списка идут следом
	PropertyOrder []string
	Required      []string

	// Для array
	Items    *Schema
	MaxItems int

	// Для строк и чисел
	Enum    []any
	Default any
}

// ShowWhen — условие видимости свойства: соседнее поле равно значению
type ShowWhen struct {
	Field string
	Value any
}

// Preset — именованный пресет для preset-select
type Preset struct {
	Label string
	// Values сливается в корень формы; при отсутствии сливаются все
	// поля пресета кроме Label.
	Values map[string]any
}

// Hint — UI-подсказка для одного свойства
type Hint struct {
	Widget        string
	Placeholder   string
	Options       []string
	ShowWhen      *ShowWhen
	AddLabel      string
	RandomExample bool
	Presets       []Preset
	// Action — имя действия для action-button
	Action string
	// ActionLabel — подпись кнопки действия
	ActionLabel string
}

// Hints — подсказки по стабильному пути свойства ("url",
// "headers", "items.url")
type Hints map[string]Hint

// IsRequired сообщает, обязательно ли свойство
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// OrderedProperties возвращает имена свойств в порядке показа
func (s *Schema) OrderedProperties() []string {
	if s.Properties == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Properties))
	out := make([]string, 0, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	// остальные — в алфавитном порядке для стабильности
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Visible сообщает, видно ли свойство при текущих данных формы
func Visible(hint Hint, formData map[string]any) bool {
	if hint.ShowWhen == nil {
		return true
	}
	return formData[hint.ShowWhen.Field] == hint.ShowWhen.Value
}

// CreateEmptyValue создает пустое значение по схеме; используется при
// добавлении элементов массивов и создании форм.
func CreateEmptyValue(s *Schema) any {
	if s == nil {
		return nil
	}
	if s.Default != nil {
		return s.Default
	}
	switch s.Type {
	case TypeObject:
		out := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			out[name] = CreateEmptyValue(prop)
		}
		return out
	case TypeArray:
		return []any{}
	case TypeBoolean:
		return false
	case TypeInteger, TypeNumber:
		return float64(0)
	default:
		return ""
	}
}

