// Package model содержит частичные обновления настроек.
package model

// SettingsPatch — частичное обновление настроек. Нулевой указатель
// означает «поле не трогать»; применение — локальный merge перед
// полной записью объекта на сервер.
type SettingsPatch struct {
	Timezone             *string
	Latitude             *float64
	Longitude            *float64
	CityName             *string
	State                *string
	Zipcode              *string
	TimeFormat           *string
	TimeSyncMode         *string
	MaxPrintLines        *int
	CutterFeedLines      *int
	UseAPILocationSearch *bool
	InvertPrint          *bool
	Channels             map[int]Channel
	TelegramBot          *TelegramBot
}

// IsZero сообщает, пуст ли патч
func (p SettingsPatch) IsZero() bool {
	return p.Timezone == nil && p.Latitude == nil && p.Longitude == nil &&
		p.CityName == nil && p.State == nil && p.Zipcode == nil &&
		p.TimeFormat == nil && p.TimeSyncMode == nil &&
		p.MaxPrintLines == nil && p.CutterFeedLines == nil &&
		p.UseAPILocationSearch == nil && p.InvertPrint == nil &&
		p.Channels == nil && p.TelegramBot == nil
}

// Apply накладывает патч на настройки. max_print_lines = 0 — допустимое
// значение (без ограничения), поэтому указатели, а не нулевые значения.
func (s *Settings) Apply(p SettingsPatch) {
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.Latitude != nil {
		s.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		s.Longitude = *p.Longitude
	}
	if p.CityName != nil {
		s.CityName = *p.CityName
	}
	if p.State != nil {
		s.State = *p.State
	}
	if p.Zipcode != nil {
		s.Zipcode = *p.Zipcode
	}
	if p.TimeFormat != nil {
		s.TimeFormat = *p.TimeFormat
	}
	if p.TimeSyncMode != nil {
		s.TimeSyncMode = *p.TimeSyncMode
	}
	if p.MaxPrintLines != nil {
		s.MaxPrintLines = *p.MaxPrintLines
	}
	if p.CutterFeedLines != nil {
		s.CutterFeedLines = *p.CutterFeedLines
	}
	if p.UseAPILocationSearch != nil {
		s.UseAPILocationSearch = *p.UseAPILocationSearch
	}
	if p.InvertPrint != nil {
		s.InvertPrint = *p.InvertPrint
	}
	if p.Channels != nil {
		if s.Channels == nil {
			s.Channels = make(map[int]Channel, len(p.Channels))
		}
		for pos, ch := range p.Channels {
			s.Channels[pos] = ch.Clone()
		}
	}
	if p.TelegramBot != nil {
		tb := *p.TelegramBot
		s.TelegramBot = &tb
	}
}

// LocationPatch строит патч настроек из выбранного результата поиска.
// Часовой пояс без значения не трогает сохраненный на устройстве.
func LocationPatch(r LocationResult) SettingsPatch {
	city := r.DisplayCity()
	p := SettingsPatch{
		CityName:  &city,
		State:     &r.State,
		Latitude:  &r.Latitude,
		Longitude: &r.Longitude,
		Zipcode:   &r.Zipcode,
	}
	if r.Timezone != "" {
		p.Timezone = &r.Timezone
	}
	return p
}
