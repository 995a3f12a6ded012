package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_NextOrder(t *testing.T) {
	assert.Equal(t, 0, Channel{}.NextOrder())

	ch := Channel{Modules: []ModuleRef{
		{ModuleID: "a", Order: 2},
		{ModuleID: "b", Order: 7},
		{ModuleID: "c", Order: 4},
	}}
	assert.Equal(t, 8, ch.NextOrder())
}

func TestChannel_SortedModules(t *testing.T) {
	ch := Channel{Modules: []ModuleRef{
		{ModuleID: "c", Order: 3},
		{ModuleID: "a", Order: 1},
		{ModuleID: "b", Order: 2},
	}}

	sorted := ch.SortedModules()
	assert.Equal(t, []ModuleRef{
		{ModuleID: "a", Order: 1},
		{ModuleID: "b", Order: 2},
		{ModuleID: "c", Order: 3},
	}, sorted)

	// исходный порядок не меняется
	assert.Equal(t, "c", ch.Modules[0].ModuleID)
}

func TestChannel_Contains(t *testing.T) {
	ch := Channel{Modules: []ModuleRef{{ModuleID: "m1", Order: 0}}}
	assert.True(t, ch.Contains("m1"))
	assert.False(t, ch.Contains("m2"))
}

func TestSettings_Channel(t *testing.T) {
	s := Settings{Channels: map[int]Channel{
		3: {Schedule: []string{"08:00"}},
	}}

	assert.Equal(t, []string{"08:00"}, s.Channel(3).Schedule)
	// отсутствующий канал эквивалентен пустому
	assert.Empty(t, s.Channel(5).Modules)
	assert.Empty(t, (&Settings{}).Channel(1).Modules)
}

func TestSettings_Clone(t *testing.T) {
	s := Settings{
		CityName: "Portland",
		Channels: map[int]Channel{
			1: {Modules: []ModuleRef{{ModuleID: "m1", Order: 0}}},
		},
		Modules: map[string]Module{
			"m1": {ID: "m1", Type: "news", Config: map[string]any{"news_api_key": "k"}},
		},
		TelegramBot: &TelegramBot{AIProvider: "openai"},
	}

	clone := s.Clone()
	clone.Channels[1].Modules[0] = ModuleRef{ModuleID: "other", Order: 9}
	m := clone.Modules["m1"]
	m.Config["news_api_key"] = "changed"
	clone.TelegramBot.AIProvider = "changed"

	assert.Equal(t, "m1", s.Channels[1].Modules[0].ModuleID)
	assert.Equal(t, "k", s.Modules["m1"].Config["news_api_key"])
	assert.Equal(t, "openai", s.TelegramBot.AIProvider)
}

func TestModule_Clone(t *testing.T) {
	m := Module{ID: "m1", Type: "webhook", Config: map[string]any{
		"headers": map[string]any{"Authorization": "Bearer x"},
		"feeds":   []any{"a", "b"},
	}}

	clone := m.Clone()
	clone.Config["headers"].(map[string]any)["Authorization"] = "changed"
	clone.Config["feeds"].([]any)[0] = "changed"

	assert.Equal(t, "Bearer x", m.Config["headers"].(map[string]any)["Authorization"])
	assert.Equal(t, "a", m.Config["feeds"].([]any)[0])
}

func TestSettings_Apply(t *testing.T) {
	s := Settings{CityName: "Portland", MaxPrintLines: 40}

	city := "Seattle"
	zero := 0
	s.Apply(SettingsPatch{CityName: &city, MaxPrintLines: &zero})

	assert.Equal(t, "Seattle", s.CityName)
	// ноль — допустимое значение, указатель отличает его от «не трогать»
	assert.Equal(t, 0, s.MaxPrintLines)

	s.Apply(SettingsPatch{})
	assert.Equal(t, "Seattle", s.CityName)
}

func TestSettingsPatch_IsZero(t *testing.T) {
	assert.True(t, SettingsPatch{}.IsZero())

	v := true
	assert.False(t, SettingsPatch{InvertPrint: &v}.IsZero())
}

func TestLocationResult_DisplayCity(t *testing.T) {
	assert.Equal(t, "Portland", LocationResult{City: "Portland", CityName: "Portland, OR", Name: "Portland, OR, USA"}.DisplayCity())
	assert.Equal(t, "Portland, OR", LocationResult{CityName: "Portland, OR", Name: "x"}.DisplayCity())
	assert.Equal(t, "fallback", LocationResult{Name: "fallback"}.DisplayCity())
}

func TestLocationPatch(t *testing.T) {
	r := LocationResult{City: "Austin", State: "TX", Zipcode: "78701", Latitude: 30.27, Longitude: -97.74, Timezone: "America/Chicago"}
	s := Settings{}
	s.Apply(LocationPatch(r))

	assert.Equal(t, "Austin", s.CityName)
	assert.Equal(t, "TX", s.State)
	assert.Equal(t, "78701", s.Zipcode)
	assert.Equal(t, 30.27, s.Latitude)
	assert.Equal(t, "America/Chicago", s.Timezone)
}

func TestLocationPatch_EmptyTimezoneKeepsCurrent(t *testing.T) {
	r := LocationResult{City: "Austin", State: "TX"}
	s := Settings{Timezone: "America/New_York"}
	s.Apply(LocationPatch(r))

	assert.Equal(t, "Austin", s.CityName)
	assert.Equal(t, "America/New_York", s.Timezone)
}

func TestSettings_AssistantEnabled(t *testing.T) {
	assert.False(t, (&Settings{}).AssistantEnabled())
	assert.False(t, (&Settings{TelegramBot: &TelegramBot{}}).AssistantEnabled())
	assert.True(t, (&Settings{TelegramBot: &TelegramBot{AIProvider: "openai"}}).AssistantEnabled())
}
