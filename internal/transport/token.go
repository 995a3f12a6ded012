package transport

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Имя файла с токеном в директории данных. Совпадает с ключом, под
// которым токен хранился в браузерной версии консоли.
const tokenFileName = "pc1_admin_token"

// TokenStore хранит администраторский токен между запусками
type TokenStore interface {
	// Token возвращает сохраненный токен, либо пустую строку
	Token() string
	// SetToken сохраняет токен
	SetToken(token string) error
}

// FileTokenStore хранит токен в файле внутри директории данных
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// Убеждаемся, что FileTokenStore реализует TokenStore
var _ TokenStore = (*FileTokenStore)(nil)

// NewFileTokenStore создает хранилище токена в директории данных
func NewFileTokenStore(dataDir string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dataDir, tokenFileName)}
}

// Token возвращает сохраненный токен, либо пустую строку
func (s *FileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// SetToken сохраняет токен в файл с правами только для владельца
func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0600)
}

// MemoryTokenStore хранит токен в памяти; используется в тестах
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

// Token возвращает сохраненный токен
func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken сохраняет токен
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	return nil
}
