// Package model содержит валидаторы для моделей.
package model

import (
	"fmt"
	"strings"
)

// ValidationError представляет ошибку валидации одного поля.
// Field — стабильный путь до поля ("email_user", "headers.Authorization",
// "items.0.url").
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors представляет множество ошибок валидации
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors проверяет, есть ли ошибки валидации
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ByField возвращает сообщение для пути поля, либо пустую строку
func (ve ValidationErrors) ByField(field string) string {
	for _, err := range ve {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// ValidateRequired проверяет, что поле не пустое
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateEnum проверяет, что значение входит в список допустимых
func ValidateEnum(field, value string, allowedValues []string) error {
	for _, allowed := range allowedValues {
		if value == allowed {
			return nil
		}
	}
	return ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", "))}
}

// ValidateChannelPosition проверяет, что позиция канала адресуема
func ValidateChannelPosition(pos int) error {
	if pos < 1 || pos > ChannelCount {
		return ValidationError{Field: "position", Message: fmt.Sprintf("must be between 1 and %d", ChannelCount)}
	}
	return nil
}

// ValidateRange проверяет, что число попадает в диапазон
func ValidateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return nil
}
