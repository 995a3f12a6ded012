package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pc1console/internal/model"
)

// stubFetcher считает обращения и может имитировать медленный сервер
type stubFetcher struct {
	types []model.ModuleType
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (s *stubFetcher) ModuleTypes(ctx context.Context) ([]model.ModuleType, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.types, s.err
}

func TestGet_CachesSingleFetch(t *testing.T) {
	fetcher := &stubFetcher{types: []model.ModuleType{{ID: "news", Label: "News API"}}}
	r := New(fetcher, zap.NewNop())

	first := r.Get(context.Background())
	second := r.Get(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	// копия кэша: мутация результата кэш не портит
	first[0].Label = "mutated"
	assert.Equal(t, "News API", r.Get(context.Background())[0].Label)
}

func TestGet_ConcurrentCallersShareOneFetch(t *testing.T) {
	fetcher := &stubFetcher{
		types: []model.ModuleType{{ID: "news", Label: "News API"}},
		delay: 50 * time.Millisecond,
	}
	r := New(fetcher, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			types := r.Get(context.Background())
			assert.Len(t, types, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestGet_FallbackOnFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("device unreachable")}
	r := New(fetcher, zap.NewNop())

	types := r.Get(context.Background())
	require.NotEmpty(t, types)

	// встроенная таблица знает базовые виды
	_, ok := r.Lookup(context.Background(), "news")
	assert.True(t, ok)

	// ошибка закэширована: повторных попыток нет
	r.Get(context.Background())
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestGet_FallbackOnEmptyRegistry(t *testing.T) {
	fetcher := &stubFetcher{types: nil}
	r := New(fetcher, zap.NewNop())

	types := r.Get(context.Background())
	assert.NotEmpty(t, types)
}

func TestOffline(t *testing.T) {
	fetcher := &stubFetcher{types: []model.ModuleType{
		{ID: "text", Label: "Text Note", Offline: true},
		{ID: "news", Label: "News API"},
	}}
	r := New(fetcher, zap.NewNop())

	ctx := context.Background()
	assert.True(t, r.Offline(ctx, "text"))
	assert.False(t, r.Offline(ctx, "news"))
	// неизвестный вид считается онлайновым
	assert.False(t, r.Offline(ctx, "mystery"))
}
