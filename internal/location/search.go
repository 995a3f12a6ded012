// Package location реализует отложенный поиск местоположения.
//
// Внешний геокодер ограничен одним запросом в секунду, поэтому ввод
// дебаунсится, а затянувшийся запрос обрывается по таймауту. Обрыв
// сохраняет предыдущие результаты и только снимает индикатор поиска.
package location

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pc1console/internal/model"
)

const (
	searchLimit    = 20
	minQueryLength = 2
)

// API — подмножество клиента устройства, нужное поиску
type API interface {
	SearchLocation(ctx context.Context, term string, limit int, useAPI bool) ([]model.LocationResult, error)
}

// Searcher — отложенный поиск местоположения
type Searcher struct {
	api     API
	logger  *zap.Logger
	delay   time.Duration
	timeout time.Duration

	// OnSearching включает и выключает индикатор поиска
	OnSearching func(bool)
	// OnResults получает результаты завершенного поиска
	OnResults func([]model.LocationResult)
	// UseAPI, если задан, включает внешний геокодер вместо локальной базы
	UseAPI func() bool

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// New создает поиск с окном дебаунса delay и таймаутом запроса timeout
func New(api API, delay, timeout time.Duration, logger *zap.Logger) *Searcher {
	return &Searcher{
		api:     api,
		logger:  logger,
		delay:   delay,
		timeout: timeout,
	}
}

// Query планирует поиск по введенному тексту. Каждый новый ввод сдвигает
// таймер и обрывает запрос, который уже ушел. Запрос короче двух символов
// не уходит на сервер и очищает результаты.
func (s *Searcher) Query(term string) {
	term = strings.TrimSpace(term)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if len([]rune(term)) < minQueryLength {
		s.mu.Unlock()
		s.emitSearching(false)
		s.emitResults([]model.LocationResult{})
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(term)
	})
	s.mu.Unlock()

	s.emitSearching(true)
}

func (s *Searcher) run(term string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	useAPI := s.UseAPI != nil && s.UseAPI()
	results, err := s.api.SearchLocation(ctx, term, searchLimit, useAPI)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}

	s.emitSearching(false)

	if err != nil {
		// обрыв и сетевые ошибки сохраняют предыдущие результаты
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.logger.Warn("Location search aborted", zap.String("term", term), zap.Error(err))
		} else {
			s.logger.Warn("Location search failed", zap.String("term", term), zap.Error(err))
		}
		return
	}

	s.emitResults(results)
}

// Close отменяет отложенный и текущий поиск; вызывается при размонтировании
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) emitSearching(v bool) {
	if s.OnSearching != nil {
		s.OnSearching(v)
	}
}

func (s *Searcher) emitResults(results []model.LocationResult) {
	if s.OnResults != nil {
		s.OnResults(results)
	}
}
