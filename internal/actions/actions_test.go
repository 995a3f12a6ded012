package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pc1console/internal/api"
	"pc1console/internal/config"
	"pc1console/internal/model"
	"pc1console/internal/store"
)

// fixture поднимает httptest-сервер и слой действий поверх него.
// Окна дебаунса выставлены в час: отложенные записи уходят только
// через явный Flush.
type fixture struct {
	acts  *Actions
	store *store.Store

	mu       sync.Mutex
	requests []string // "METHOD path" в порядке прихода
	handlers map[string]http.HandlerFunc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{handlers: map[string]http.HandlerFunc{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.requests = append(f.requests, key)
		handler := f.handlers[key]
		f.mu.Unlock()

		if handler == nil {
			t.Errorf("unexpected request %s", key)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	f.store = store.New(0)
	client := api.New(srv.URL, srv.Client(), zap.NewNop())
	cfg := &config.Config{
		ModuleWriteDebounce:   time.Hour,
		SettingsWriteDebounce: time.Hour,
	}
	f.acts = New(client, f.store, cfg, zap.NewNop())
	return f
}

func (f *fixture) handle(key string, fn http.HandlerFunc) {
	f.mu.Lock()
	f.handlers[key] = fn
	f.mu.Unlock()
}

func (f *fixture) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newsModule(id, name string) model.Module {
	return model.Module{
		ID:   id,
		Type: "news",
		Name: name,
		Config: map[string]any{
			"news_api_key": "k",
		},
	}
}

func TestLoad(t *testing.T) {
	f := newFixture(t)
	f.handle("GET /api/settings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city_name":"Portland","channels":{"2":{"schedule":["08:00"]}}}`))
	})
	f.handle("GET /api/modules", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"modules":{"m1":{"id":"m1","type":"news","name":"News","config":{}}}}`))
	})

	require.NoError(t, f.acts.Load(context.Background()))

	settings, ok := f.store.Settings()
	require.True(t, ok)
	assert.Equal(t, "Portland", settings.CityName)
	assert.Equal(t, []string{"08:00"}, f.store.Channel(2).Schedule)

	_, ok = f.store.Module("m1")
	assert.True(t, ok)
	assert.False(t, f.store.Loading())
}

func TestLoad_SettingsError(t *testing.T) {
	f := newFixture(t)
	f.handle("GET /api/settings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f.handle("GET /api/modules", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"modules":{}}`))
	})

	require.Error(t, f.acts.Load(context.Background()))
	assert.False(t, f.store.Loading())

	status := f.store.Status()
	require.NotNil(t, status)
	assert.Equal(t, model.StatusError, status.Kind)
}

func TestCreateModule_NameDefaultsToKindLabel(t *testing.T) {
	f := newFixture(t)
	f.handle("POST /api/modules", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "news", body["type"])
		assert.Equal(t, "News API", body["name"])
		// конфигурация по умолчанию уходит вместе с созданием
		cfg, ok := body["config"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, cfg, "news_api_key")

		_, _ = w.Write([]byte(`{"module":{"id":"m-new","type":"news","name":"News API","config":{}}}`))
	})

	created, err := f.acts.CreateModule(context.Background(), "news", "")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "m-new", created.ID)

	_, ok := f.store.Module("m-new")
	assert.True(t, ok)
}

func TestUpdateModule_CleansesForeignFields(t *testing.T) {
	f := newFixture(t)
	m := newsModule("m1", "News")
	m.Config["rss_feeds"] = []any{"https://x/feed"} // чужое поле вида rss
	f.store.SetModules(map[string]model.Module{"m1": m})

	f.handle("PUT /api/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		var sent model.Module
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "Fresh", sent.Name)
		assert.Contains(t, sent.Config, "news_api_key")
		assert.NotContains(t, sent.Config, "rss_feeds")

		_ = json.NewEncoder(w).Encode(map[string]any{"module": sent})
	})

	name := "Fresh"
	err := f.acts.UpdateModule(context.Background(), "m1", ModuleUpdate{Name: &name})
	require.NoError(t, err)

	stored, ok := f.store.Module("m1")
	require.True(t, ok)
	assert.Equal(t, "Fresh", stored.Name)
}

func TestUpdateModule_TypeChangeRejected(t *testing.T) {
	f := newFixture(t)
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	err := f.acts.UpdateModule(context.Background(), "m1", ModuleUpdate{Type: "rss"})
	require.Error(t, err)
	assert.Empty(t, f.requestLog())
}

func TestUpdateModule_RollbackRefetches(t *testing.T) {
	f := newFixture(t)
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "Server Name")})

	f.handle("PUT /api/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	f.handle("GET /api/modules", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"modules":{"m1":{"id":"m1","type":"news","name":"Server Name","config":{}}}}`))
	})

	name := "Local Name"
	err := f.acts.UpdateModule(context.Background(), "m1", ModuleUpdate{Name: &name})
	require.Error(t, err)

	// откат вернул авторитетную копию сервера
	stored, ok := f.store.Module("m1")
	require.True(t, ok)
	assert.Equal(t, "Server Name", stored.Name)

	status := f.store.Status()
	require.NotNil(t, status)
	assert.Equal(t, model.StatusError, status.Kind)
}

func TestQueueModuleUpdate_CoalescesUntilFlush(t *testing.T) {
	f := newFixture(t)
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	f.handle("PUT /api/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		var sent model.Module
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		assert.Equal(t, "second", sent.Config["news_api_key"])
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	require.NoError(t, f.acts.QueueModuleUpdate(ctx, "m1", ModuleUpdate{Config: map[string]any{"news_api_key": "first"}}))
	require.NoError(t, f.acts.QueueModuleUpdate(ctx, "m1", ModuleUpdate{Config: map[string]any{"news_api_key": "second"}}))

	// локально применено сразу, на сервер еще ничего не уходило
	stored, _ := f.store.Module("m1")
	assert.Equal(t, "second", stored.Config["news_api_key"])
	assert.Empty(t, f.requestLog())

	f.acts.FlushModuleWrite("m1")
	assert.Equal(t, []string{"PUT /api/modules/m1"}, f.requestLog())
}

func TestDeleteModule_UnbindsChannelsFirst(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			1: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}},
			4: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}},
		},
	})
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	ok := func(w http.ResponseWriter, r *http.Request) {}
	f.handle("DELETE /api/channels/1/modules/m1", ok)
	f.handle("DELETE /api/channels/4/modules/m1", ok)
	f.handle("DELETE /api/modules/m1", ok)

	require.NoError(t, f.acts.DeleteModule(context.Background(), "m1"))

	assert.Equal(t, []string{
		"DELETE /api/channels/1/modules/m1",
		"DELETE /api/channels/4/modules/m1",
		"DELETE /api/modules/m1",
	}, f.requestLog())

	_, exists := f.store.Module("m1")
	assert.False(t, exists)
	assert.Empty(t, f.store.Channel(1).Modules)
	assert.Empty(t, f.store.Channel(4).Modules)
}

func TestDeleteModule_PartialFailureKeepsStore(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			1: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}},
		},
	})
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	f.handle("DELETE /api/channels/1/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.Error(t, f.acts.DeleteModule(context.Background(), "m1"))

	// до подтверждения сервера локально ничего не удаляется
	_, exists := f.store.Module("m1")
	assert.True(t, exists)
	assert.Len(t, f.store.Channel(1).Modules, 1)
}

func TestAssignModuleToChannel(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			2: {Modules: []model.ModuleRef{{ModuleID: "other", Order: 3}}},
		},
	})
	f.store.SetModules(map[string]model.Module{
		"m1":    newsModule("m1", "News"),
		"other": newsModule("other", "Other"),
	})

	f.handle("POST /api/channels/2/modules", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "m1", r.URL.Query().Get("module_id"))
		assert.Equal(t, "4", r.URL.Query().Get("order"))
		// сервер канал не вернул: консоль достраивает его локально
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, f.acts.AssignModuleToChannel(context.Background(), 2, "m1"))

	ch := f.store.Channel(2)
	require.Len(t, ch.Modules, 2)
	assert.True(t, ch.Contains("m1"))
}

func TestAssignModuleToChannel_AlreadyAssigned(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			2: {Modules: []model.ModuleRef{{ModuleID: "m1", Order: 0}}},
		},
	})
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	require.Error(t, f.acts.AssignModuleToChannel(context.Background(), 2, "m1"))
	assert.Empty(t, f.requestLog())
}

func TestMoveModuleInChannel(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			1: {Modules: []model.ModuleRef{
				{ModuleID: "a", Order: 0},
				{ModuleID: "b", Order: 1},
			}},
		},
	})

	f.handle("POST /api/channels/1/modules/reorder", func(w http.ResponseWriter, r *http.Request) {
		var orders map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&orders))
		assert.Equal(t, map[string]int{"a": 1, "b": 0}, orders)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, f.acts.MoveModuleInChannel(context.Background(), 1, "a", "down"))

	sorted := f.store.Channel(1).SortedModules()
	require.Len(t, sorted, 2)
	assert.Equal(t, "b", sorted[0].ModuleID)
	assert.Equal(t, "a", sorted[1].ModuleID)
}

func TestMoveModuleInChannel_EdgeIsNoop(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			1: {Modules: []model.ModuleRef{
				{ModuleID: "a", Order: 0},
				{ModuleID: "b", Order: 1},
			}},
		},
	})

	require.NoError(t, f.acts.MoveModuleInChannel(context.Background(), 1, "a", "up"))
	require.NoError(t, f.acts.MoveModuleInChannel(context.Background(), 1, "b", "down"))
	assert.Empty(t, f.requestLog())
}

func TestUpdateSchedule(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{})

	f.handle("POST /api/channels/3/schedule", func(w http.ResponseWriter, r *http.Request) {
		var times []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&times))
		assert.Equal(t, []string{"08:00", "17:30"}, times)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, f.acts.UpdateSchedule(context.Background(), 3, []string{"17:30", "08:00"}))
	assert.Equal(t, []string{"08:00", "17:30"}, f.store.Channel(3).Schedule)
}

func TestUpdateSchedule_RejectsInvalidTime(t *testing.T) {
	f := newFixture(t)

	err := f.acts.UpdateSchedule(context.Background(), 3, []string{"25:99"})
	require.Error(t, err)
	assert.Empty(t, f.requestLog())
}

func TestPrintChannel_FlushesPendingWrites(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{})
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	f.handle("PUT /api/modules/m1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	f.handle("POST /action/print-channel/5", func(w http.ResponseWriter, r *http.Request) {})

	require.NoError(t, f.acts.QueueModuleUpdate(context.Background(), "m1",
		ModuleUpdate{Config: map[string]any{"news_api_key": "fresh"}}))
	require.NoError(t, f.acts.PrintChannel(context.Background(), 5))

	// отложенная запись уходит раньше запроса печати
	assert.Equal(t, []string{"PUT /api/modules/m1", "POST /action/print-channel/5"}, f.requestLog())
}

func TestInvokeModuleAction_ReloadRefreshesEverything(t *testing.T) {
	f := newFixture(t)
	f.store.SetModules(map[string]model.Module{"m1": newsModule("m1", "News")})

	f.handle("POST /api/modules/m1/actions/refresh_auth", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reload":true}`))
	})
	f.handle("GET /api/settings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city_name":"Reloaded"}`))
	})
	f.handle("GET /api/modules", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"modules":{}}`))
	})

	reload, err := f.acts.InvokeModuleAction(context.Background(), "m1", "refresh_auth")
	require.NoError(t, err)
	assert.True(t, reload)

	settings, ok := f.store.Settings()
	require.True(t, ok)
	assert.Equal(t, "Reloaded", settings.CityName)
}

func TestMoveModuleInChannel_InvalidDirection(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{
		Channels: map[int]model.Channel{
			1: {Modules: []model.ModuleRef{{ModuleID: "a", Order: 0}}},
		},
	})

	err := f.acts.MoveModuleInChannel(context.Background(), 1, "a", "sideways")
	require.Error(t, err)

	var ve model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "direction", ve.Field)
	assert.Empty(t, f.requestLog())
}

func TestSaveSettingsDebounced_EmptyPatchSchedulesNothing(t *testing.T) {
	f := newFixture(t)
	f.store.SetSettings(model.Settings{CityName: "Portland"})

	f.acts.SaveSettingsDebounced(context.Background(), model.SettingsPatch{})
	f.acts.FlushPendingWrites()

	assert.Empty(t, f.requestLog())

	settings, _ := f.store.Settings()
	assert.Equal(t, "Portland", settings.CityName)
}
