package transport

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// authServer отвечает 401 с запросом токена, пока не увидит validToken
func authServer(t *testing.T, validToken string, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get(HeaderAdminToken) != validToken {
			w.Header().Set(HeaderAuthRequired, "true")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}))
}

func TestAuthClient_PromptAndRetry(t *testing.T) {
	var requests atomic.Int32
	srv := authServer(t, "secret", &requests)
	defer srv.Close()

	var prompts atomic.Int32
	tokens := &MemoryTokenStore{}
	client := NewAuthClient(srv.Client(), tokens, PrompterFunc(func() string {
		prompts.Add(1)
		return "  secret  "
	}), zap.NewNop())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/settings", bytes.NewReader([]byte(`{"a":1}`)))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), prompts.Load())
	assert.Equal(t, int32(2), requests.Load())

	// токен обрезан и сохранен для будущих запусков
	assert.Equal(t, "secret", tokens.Token())

	// тело повтора пересоздано из GetBody
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestAuthClient_StoredTokenAttached(t *testing.T) {
	var requests atomic.Int32
	srv := authServer(t, "secret", &requests)
	defer srv.Close()

	tokens := &MemoryTokenStore{}
	require.NoError(t, tokens.SetToken("secret"))

	client := NewAuthClient(srv.Client(), tokens, PrompterFunc(func() string {
		t.Fatal("prompt must not be shown when the stored token works")
		return ""
	}), zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/settings", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), requests.Load())
}

// Отказ от ввода токена возвращает исходный 401
func TestAuthClient_PromptDeclined(t *testing.T) {
	var requests atomic.Int32
	srv := authServer(t, "secret", &requests)
	defer srv.Close()

	client := NewAuthClient(srv.Client(), &MemoryTokenStore{}, PrompterFunc(func() string {
		return ""
	}), zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/settings", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), requests.Load())
}

// 401 без заголовка X-PC1-Auth-Required — обычная ошибка, без запроса токена
func TestAuthClient_PlainUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewAuthClient(srv.Client(), &MemoryTokenStore{}, PrompterFunc(func() string {
		t.Fatal("prompt must not be shown without the auth header")
		return ""
	}), zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Повтор выполняется ровно один раз: неверный токен из запроса не
// зацикливает авторизацию
func TestAuthClient_RetryOnlyOnce(t *testing.T) {
	var requests atomic.Int32
	srv := authServer(t, "secret", &requests)
	defer srv.Close()

	var prompts atomic.Int32
	client := NewAuthClient(srv.Client(), &MemoryTokenStore{}, PrompterFunc(func() string {
		prompts.Add(1)
		return "wrong"
	}), zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), prompts.Load())
	assert.Equal(t, int32(2), requests.Load())
}

func TestFileTokenStore(t *testing.T) {
	dir := t.TempDir()
	store := NewFileTokenStore(dir)

	assert.Equal(t, "", store.Token())

	require.NoError(t, store.SetToken("  my-token \n"))
	assert.Equal(t, "my-token", store.Token())

	// новое хранилище над той же директорией видит тот же токен
	assert.Equal(t, "my-token", NewFileTokenStore(dir).Token())
}

// flipStore имитирует хранилище, в которое параллельный запрос успел
// положить свежий токен, пока этот ждал своей очереди на промпт.
type flipStore struct {
	calls atomic.Int32
}

func (s *flipStore) Token() string {
	if s.calls.Add(1) == 1 {
		return "stale"
	}
	return "fresh"
}

func (s *flipStore) SetToken(string) error { return nil }

func TestAuthClient_RefreshedTokenSkipsPrompt(t *testing.T) {
	var requests atomic.Int32
	srv := authServer(t, "fresh", &requests)
	defer srv.Close()

	client := NewAuthClient(srv.Client(), &flipStore{}, PrompterFunc(func() string {
		t.Error("prompt must not be shown when another request already refreshed the token")
		return ""
	}), zap.NewNop())

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/settings", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	// повтор ушел со свежим токеном из хранилища без участия пользователя
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), requests.Load())
}
