package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pc1console/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client(), zap.NewNop())
}

func TestClient_GetSettings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"city_name":   "Portland",
			"time_format": "24h",
			"channels": map[string]any{
				"1": map[string]any{"modules": []any{map[string]any{"module_id": "m1", "order": 0}}},
			},
		})
	})

	settings, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Portland", settings.CityName)
	assert.Equal(t, "24h", settings.TimeFormat)
	assert.Equal(t, "m1", settings.Channel(1).Modules[0].ModuleID)
}

func TestClient_SaveSettingsEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantCity string
		wantNil  bool
	}{
		{"settings envelope", `{"settings":{"city_name":"Austin"}}`, "Austin", false},
		{"config envelope", `{"config":{"city_name":"Boise"}}`, "Boise", false},
		{"empty body", ``, "", true},
		{"empty object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				var sent model.Settings
				require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
				assert.Equal(t, "sent-city", sent.CityName)
				_, _ = w.Write([]byte(tt.response))
			})

			got, err := client.SaveSettings(context.Background(), &model.Settings{CityName: "sent-city"})
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantCity, got.CityName)
			}
		})
	}
}

func TestClient_RequestError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{"structured error", http.StatusBadRequest, `{"error":{"code":"invalid_config","message":"bad module"}}`, "invalid_config", "bad module"},
		{"message field", http.StatusConflict, `{"message":"already exists"}`, "", "already exists"},
		{"detail field", http.StatusUnprocessableEntity, `{"detail":"validation failed"}`, "", "validation failed"},
		{"plain text body", http.StatusInternalServerError, `boom`, "", "boom"},
		{"empty body", http.StatusBadGateway, ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetSettings(context.Background())
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantCode, reqErr.Code)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
		})
	}
}

func TestRequestError_Error(t *testing.T) {
	assert.Equal(t, "invalid_config: bad module", (&RequestError{StatusCode: 400, Code: "invalid_config", Message: "bad module"}).Error())
	assert.Equal(t, "http 500: boom", (&RequestError{StatusCode: 500, Message: "boom"}).Error())
	assert.Equal(t, "http 502", (&RequestError{StatusCode: 502}).Error())
}

func TestClient_ListModules(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/modules", r.URL.Path)
		_, _ = w.Write([]byte(`{"modules":{"m1":{"id":"m1","type":"news","name":"News","config":{"news_api_key":"k"}}}}`))
	})

	modules, err := client.ListModules(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "news", modules["m1"].Type)
	assert.Equal(t, "k", modules["m1"].Config["news_api_key"])
}

func TestClient_CreateModule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/modules", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "news", body["type"])
		assert.Equal(t, "My News", body["name"])

		_, _ = w.Write([]byte(`{"module":{"id":"m-new","type":"news","name":"My News","config":{}}}`))
	})

	m, err := client.CreateModule(context.Background(), "news", "My News", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "m-new", m.ID)
}

func TestClient_TestWebhookReturnsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/webhook/test", r.URL.Path)
		_, _ = w.Write([]byte("Hello from webhook\nline 2"))
	})

	preview, err := client.TestWebhook(context.Background(), map[string]any{"url": "https://x"})
	require.NoError(t, err)
	assert.Equal(t, "Hello from webhook\nline 2", preview)
}

func TestClient_AssignModuleQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/channels/3/modules", r.URL.Path)
		assert.Equal(t, "m1", r.URL.Query().Get("module_id"))
		assert.Equal(t, "2", r.URL.Query().Get("order"))
		_, _ = w.Write([]byte(`{"channel":{"modules":[{"module_id":"m1","order":2}]}}`))
	})

	order := 2
	ch, err := client.AssignModule(context.Background(), 3, "m1", &order)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, 2, ch.Modules[0].Order)
}
