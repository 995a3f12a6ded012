package schema

import (
	"fmt"
	"strconv"
	"strings"

	"pc1console/internal/model"
)

// Validate проверяет данные формы по схеме. Ошибки адресуются
// стабильными путями: "email_user", "headers.Authorization",
// "ical_sources.0.url". Скрытые условием ui:showWhen поля не проверяются.
func Validate(data map[string]any, s *Schema, hints Hints) model.ValidationErrors {
	if s == nil || s.Type != TypeObject {
		return nil
	}
	var errs model.ValidationErrors
	validateObject("", data, s, hints, &errs)
	return errs
}

func validateObject(prefix string, data map[string]any, s *Schema, hints Hints, errs *model.ValidationErrors) {
	for _, name := range s.OrderedProperties() {
		prop := s.Properties[name]
		path := joinPath(prefix, name)
		hint := hints[hintPath(prefix, name)]
		if !Visible(hint, data) {
			continue
		}
		value, present := data[name]

		if s.IsRequired(name) && isEmptyValue(value, prop) {
			*errs = append(*errs, model.ValidationError{Field: path, Message: "is required"})
			continue
		}
		if !present {
			continue
		}
		validateValue(path, hintPath(prefix, name), value, prop, hints, errs)
	}
}

func validateValue(path, hintKey string, value any, s *Schema, hints Hints, errs *model.ValidationErrors) {
	if s == nil || value == nil {
		return
	}
	switch s.Type {
	case TypeObject:
		if m, ok := value.(map[string]any); ok {
			validateObject(path, m, s, hints, errs)
		}
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return
		}
		if s.MaxItems > 0 && len(items) > s.MaxItems {
			*errs = append(*errs, model.ValidationError{
				Field:   path,
				Message: fmt.Sprintf("must have at most %d items", s.MaxItems),
			})
		}
		for i, item := range items {
			validateValue(path+"."+strconv.Itoa(i), hintKey, item, s.Items, hints, errs)
		}
	case TypeInteger:
		switch value.(type) {
		case float64, int:
		default:
			*errs = append(*errs, model.ValidationError{Field: path, Message: "must be a number"})
		}
	case TypeString:
		if str, ok := value.(string); ok && len(s.Enum) > 0 && str != "" {
			if !enumContains(s.Enum, str) {
				*errs = append(*errs, model.ValidationError{Field: path, Message: "is not an allowed value"})
			}
		}
	}
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
	}
	return false
}

// isEmptyValue определяет пустоту значения для required-проверки
func isEmptyValue(value any, s *Schema) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		if s != nil && s.Type == TypeObject {
			return len(t) == 0
		}
		return false
	default:
		return false
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// hintPath строит ключ подсказки: индексы массивов в подсказках не
// участвуют, поэтому путь состоит только из имен свойств.
func hintPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	// отрезаем числовые сегменты от пути ошибок
	parts := strings.Split(prefix, ".")
	clean := parts[:0]
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return name
	}
	return strings.Join(clean, ".") + "." + name
}
