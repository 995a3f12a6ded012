// Package debounce реализует отложенную запись, сгруппированную по ключу.
//
// Повторный Trigger с тем же ключом сдвигает таймер и замещает отложенную
// функцию: уходит только последняя версия записи. Flush выполняет
// отложенную запись немедленно; FlushAll вызывается перед запуском печати
// и при выходе, чтобы ни одно изменение не потерялось.
package debounce

import (
	"sync"
	"time"
)

// Writer — дебаунсер отложенных записей
type Writer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	pending map[string]func()
}

// Убеждаемся, что Writer реализует WriterInterface
var _ WriterInterface = (*Writer)(nil)

// NewWriter создает дебаунсер с окном тишины delay
func NewWriter(delay time.Duration) *Writer {
	return &Writer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]func()),
	}
}

// Trigger откладывает выполнение fn на окно тишины ключа
func (w *Writer) Trigger(key string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[key] = fn
	if timer, ok := w.timers[key]; ok {
		timer.Stop()
	}
	w.timers[key] = time.AfterFunc(w.delay, func() {
		w.fire(key)
	})
}

func (w *Writer) fire(key string) {
	w.mu.Lock()
	fn := w.pending[key]
	delete(w.pending, key)
	delete(w.timers, key)
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush немедленно выполняет отложенную запись ключа, если она есть
func (w *Writer) Flush(key string) {
	w.mu.Lock()
	if timer, ok := w.timers[key]; ok {
		timer.Stop()
	}
	w.mu.Unlock()

	w.fire(key)
}

// FlushAll немедленно выполняет все отложенные записи
func (w *Writer) FlushAll() {
	w.mu.Lock()
	keys := make([]string, 0, len(w.pending))
	for key := range w.pending {
		keys = append(keys, key)
	}
	w.mu.Unlock()

	for _, key := range keys {
		w.Flush(key)
	}
}

// Cancel отбрасывает отложенную запись ключа, не выполняя ее
func (w *Writer) Cancel(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[key]; ok {
		timer.Stop()
		delete(w.timers, key)
	}
	delete(w.pending, key)
}

// Pending сообщает, есть ли отложенная запись для ключа
func (w *Writer) Pending(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.pending[key]
	return ok
}
