package transport

import (
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Заголовки протокола авторизации устройства.
const (
	// HeaderAdminToken несет администраторский токен в каждом запросе
	HeaderAdminToken = "X-PC1-Admin-Token"
	// HeaderAuthRequired в ответе 401 означает, что устройство ждет токен
	HeaderAuthRequired = "X-PC1-Auth-Required"
)

// Prompter запрашивает токен у пользователя. Возвращенная пустая строка
// означает отказ: исходный ответ 401 отдается вызывающему.
type Prompter interface {
	PromptToken() string
}

// PrompterFunc адаптирует функцию к интерфейсу Prompter
type PrompterFunc func() string

// PromptToken запрашивает токен
func (f PrompterFunc) PromptToken() string { return f() }

// AuthClient — обертка над http.Client, добавляющая токен и одноразовый
// повтор запроса после запроса токена у пользователя. Тело ответа не
// читается; интерпретация статусов — забота вызывающего.
type AuthClient struct {
	client   *http.Client
	tokens   TokenStore
	prompter Prompter
	logger   *zap.Logger

	// единовременно показываем не больше одного запроса токена
	promptMu sync.Mutex
}

// NewAuthClient создает авторизующий клиент
func NewAuthClient(client *http.Client, tokens TokenStore, prompter Prompter, logger *zap.Logger) *AuthClient {
	if client == nil {
		client = &http.Client{}
	}
	return &AuthClient{
		client:   client,
		tokens:   tokens,
		prompter: prompter,
		logger:   logger,
	}
}

// Do выполняет запрос с токеном. На 401 с заголовком X-PC1-Auth-Required
// запрашивает токен, сохраняет его и повторяет запрос ровно один раз.
// Для повтора запрос должен иметь GetBody (http.NewRequest с
// bytes.Reader устанавливает его автоматически).
func (c *AuthClient) Do(req *http.Request) (*http.Response, error) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(HeaderAdminToken, token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || resp.Header.Get(HeaderAuthRequired) != "true" {
		return resp, nil
	}

	if c.prompter == nil {
		return resp, nil
	}

	sent := req.Header.Get(HeaderAdminToken)

	c.promptMu.Lock()
	// пока мы ждали, параллельный запрос мог уже получить свежий токен;
	// спрашиваем пользователя, только если в хранилище все тот же токен,
	// с которым пришел отказ
	token := strings.TrimSpace(c.tokens.Token())
	prompted := false
	if token == "" || token == sent {
		token = strings.TrimSpace(c.prompter.PromptToken())
		prompted = true
	}
	c.promptMu.Unlock()

	if token == "" {
		c.logger.Warn("Admin token prompt declined", zap.String("url", req.URL.Path))
		return resp, nil
	}

	if prompted {
		if err := c.tokens.SetToken(token); err != nil {
			c.logger.Error("Failed to persist admin token", zap.Error(err))
		}
	}

	// Исходное тело уже могло быть прочитано сервером; пересоздаем
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.Header.Set(HeaderAdminToken, token)

	_ = resp.Body.Close()

	c.logger.Info("Retrying request with new admin token", zap.String("url", req.URL.Path))
	return c.client.Do(retry)
}
