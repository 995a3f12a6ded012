// Package timefmt содержит разбор и отображение времени устройства.
//
// Входные строки времени — "HH:MM" или "HH:MM:SS", даты — "YYYY-MM-DD".
// Отображение зависит от time_format настроек: "12h" дает "h:MM AM/PM",
// "24h" — "HH:MM". Повторное форматирование уже отформатированной строки
// дает тот же результат.
package timefmt

import (
	"fmt"
	"sort"
	"time"

	"pc1console/internal/model"
)

var parseLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04:05 PM",
}

// Parse разбирает строку времени в часы/минуты/секунды
func Parse(value string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}

// ForDisplay форматирует время для показа согласно time_format.
// Неразбираемое значение возвращается как есть.
func ForDisplay(value, timeFormat string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	if timeFormat == model.TimeFormat24 {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// ToHHMM нормализует строку времени к "HH:MM" для записи на сервер
func ToHHMM(value string) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// ValidHHMM проверяет строку расписания
func ValidHHMM(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

// ValidDate проверяет строку даты "YYYY-MM-DD"
func ValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidHHMMSS проверяет строку времени "HH:MM:SS"
func ValidHHMMSS(value string) bool {
	_, err := time.Parse("15:04:05", value)
	return err == nil
}

// SortSchedule возвращает отсортированную копию расписания без дубликатов
func SortSchedule(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, v := range times {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// HH:MM сортируется лексикографически
	sort.Strings(out)
	return out
}
