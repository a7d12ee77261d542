package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/flexile/fieldlayout/pkg/adapters/memory"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/forms"
	"github.com/flexile/fieldlayout/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	builtin := forms.Builtin()
	loader, err := memory.NewLoader(builtin...)
	require.NoError(t, err)

	ports.RunFormLoaderContract(t, loader, builtin)
}

func TestLoader_RejectsMissingID(t *testing.T) {
	_, err := memory.NewLoader(domain.Form{Title: "anonymous"})
	assert.Error(t, err)
}

func TestCache_Contract(t *testing.T) {
	ports.RunLayoutCacheContract(t, memory.NewCache())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := []string{"a", "b", "c", "d"}[n%4]
			_ = cache.Put(ctx, key, domain.Layout{FormID: key})
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, cache.Len())
}
