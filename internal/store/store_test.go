package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pc1console/internal/model"
)

func TestStore_SettingsCopyIsolation(t *testing.T) {
	s := New(0)
	s.SetSettings(model.Settings{CityName: "Portland"})

	settings, ok := s.Settings()
	assert.True(t, ok)
	settings.CityName = "mutated"

	again, _ := s.Settings()
	assert.Equal(t, "Portland", again.CityName)
}

func TestStore_SettingsAbsentUntilSet(t *testing.T) {
	s := New(0)
	_, ok := s.Settings()
	assert.False(t, ok)
	assert.True(t, s.Loading())
}

func TestStore_ApplySettingsPatch(t *testing.T) {
	s := New(0)
	s.SetSettings(model.Settings{CityName: "Portland", MaxPrintLines: 40})

	zero := 0
	s.ApplySettingsPatch(model.SettingsPatch{MaxPrintLines: &zero})

	settings, _ := s.Settings()
	assert.Equal(t, 0, settings.MaxPrintLines)
	assert.Equal(t, "Portland", settings.CityName)
}

func TestStore_SwapChannels(t *testing.T) {
	s := New(0)
	s.SetSettings(model.Settings{Channels: map[int]model.Channel{
		1: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}, Schedule: []string{"08:00"}},
	}})

	s.SwapChannels(1, 2)

	assert.Empty(t, s.Channel(1).Modules)
	assert.Equal(t, "m1", s.Channel(2).Modules[0].ModuleID)
	assert.Equal(t, []string{"08:00"}, s.Channel(2).Schedule)
}

func TestStore_RemoveModuleStripsChannelRefs(t *testing.T) {
	s := New(0)
	s.SetSettings(model.Settings{Channels: map[int]model.Channel{
		1: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}, {ModuleID: "m2", Order: 1}}},
		4: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}},
	}})
	s.SetModules(map[string]model.Module{
		"m1": {ID: "m1", Type: "news"},
		"m2": {ID: "m2", Type: "rss"},
	})

	assert.Equal(t, []int{1, 4}, s.ChannelsWith("m1"))

	s.RemoveModule("m1")

	_, ok := s.Module("m1")
	assert.False(t, ok)
	assert.Empty(t, s.ChannelsWith("m1"))
	assert.Equal(t, []model.ModuleRef{{ModuleID: "m2", Order: 1}}, s.Channel(1).Modules)
	assert.Empty(t, s.Channel(4).Modules)
}

func TestStore_MergeModuleConfig(t *testing.T) {
	s := New(0)
	s.SetModules(map[string]model.Module{
		"m1": {ID: "m1", Type: "news", Config: map[string]any{"news_api_key": "old", "keep": "me"}},
	})

	s.MergeModuleConfig("m1", map[string]any{"news_api_key": "new"})

	m, _ := s.Module("m1")
	assert.Equal(t, "new", m.Config["news_api_key"])
	assert.Equal(t, "me", m.Config["keep"])

	// отсутствующий модуль — no-op
	s.MergeModuleConfig("ghost", map[string]any{"x": 1})
	_, ok := s.Module("ghost")
	assert.False(t, ok)
}

func TestStore_ReplaceChannel(t *testing.T) {
	s := New(0)
	s.ReplaceChannel(2, model.Channel{Schedule: []string{"09:00"}})
	assert.Equal(t, []string{"09:00"}, s.Channel(2).Schedule)
}

func TestStore_StatusAutoClear(t *testing.T) {
	s := New(30 * time.Millisecond)

	s.SetStatus(model.StatusSuccess, "saved")
	status := s.Status()
	assert.NotNil(t, status)
	assert.Equal(t, model.StatusSuccess, status.Kind)

	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, s.Status())
}

func TestStore_ErrorStatusPersists(t *testing.T) {
	s := New(30 * time.Millisecond)

	s.SetStatus(model.StatusError, "failed")
	time.Sleep(100 * time.Millisecond)

	status := s.Status()
	assert.NotNil(t, status)
	assert.Equal(t, "failed", status.Message)
}

// Свежий статус не гасится таймером предыдущего
func TestStore_StatusGeneration(t *testing.T) {
	s := New(40 * time.Millisecond)

	s.SetStatus(model.StatusSuccess, "first")
	time.Sleep(20 * time.Millisecond)
	s.SetStatus(model.StatusError, "second")

	time.Sleep(60 * time.Millisecond)
	status := s.Status()
	assert.NotNil(t, status)
	assert.Equal(t, "second", status.Message)
}

func TestStore_WiFi(t *testing.T) {
	s := New(0)
	s.SetWiFi(model.WiFiStatus{Mode: "wifi", Connected: true, SSID: "home"})

	mode, status := s.WiFi()
	assert.Equal(t, "wifi", mode)
	assert.True(t, status.Connected)
	assert.Equal(t, "home", status.SSID)
}
