package ports

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFormLoaderContract verifies that a FormLoader serves exactly the forms in want.
func RunFormLoaderContract(t *testing.T, loader FormLoader, want []domain.Form) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetForm", func(t *testing.T) {
		for _, expected := range want {
			got, err := loader.GetForm(ctx, expected.ID)
			require.NoError(t, err, "GetForm(%s)", expected.ID)
			assert.Equal(t, expected.ID, got.ID)
			assert.Equal(t, keys(expected.Fields), keys(got.Fields))
			assert.Equal(t, expected.Pairs, got.Pairs)
		}
	})

	t.Run("GetForm Not Found", func(t *testing.T) {
		_, err := loader.GetForm(ctx, "non-existent-form")
		assert.ErrorIs(t, err, domain.ErrFormNotFound)
	})

	t.Run("ListForms", func(t *testing.T) {
		ids, err := loader.ListForms(ctx)
		require.NoError(t, err)

		expected := make([]string, len(want))
		for i, f := range want {
			expected[i] = f.ID
		}
		sort.Strings(expected)
		assert.Equal(t, expected, ids)
	})

	t.Run("Returned Forms Are Isolated", func(t *testing.T) {
		if len(want) == 0 || len(want[0].Fields) == 0 {
			t.Skip("no fields to mutate")
		}
		first, err := loader.GetForm(ctx, want[0].ID)
		require.NoError(t, err)
		first.Fields[0].Key = "mutated"

		again, err := loader.GetForm(ctx, want[0].ID)
		require.NoError(t, err)
		assert.Equal(t, want[0].Fields[0].Key, again.Fields[0].Key)
	})
}

// RunLayoutCacheContract verifies the Get/Put/Delete semantics of a LayoutCache.
func RunLayoutCacheContract(t *testing.T, cache LayoutCache) {
	t.Helper()
	ctx := context.Background()
	key := "contract-test-layout-" + time.Now().Format("20060102150405")

	layout := domain.Layout{
		FormID:      "bank",
		Fingerprint: "abc123",
		Groups: []domain.Group{
			{Fields: []domain.Field{{Key: "abartn"}, {Key: "accountNumber"}}, Paired: true},
			{Fields: []domain.Field{{Key: "other", Label: "Other"}}},
			{Fields: []domain.Field{{Key: "accountType", Type: domain.FieldTypeRadio, Options: []domain.Option{
				{Key: "CHECKING", Label: "Checking"},
				{Key: "SAVINGS", Label: "Savings"},
			}}}},
		},
	}

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, layout))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, layout, got)
	})

	t.Run("Returned Layouts Are Isolated", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, layout))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Groups[0].Fields[0].Key = "mutated"
		got.Groups[2].Fields[0].Options[0].Key = "MUTATED"

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "abartn", again.Groups[0].Fields[0].Key)
		assert.Equal(t, "CHECKING", again.Groups[2].Fields[0].Options[0].Key)
	})

	t.Run("Stored Layouts Are Isolated", func(t *testing.T) {
		stored := layout.Clone()
		require.NoError(t, cache.Put(ctx, key, stored))
		stored.Groups[2].Fields[0].Options[0].Key = "MUTATED"

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "CHECKING", got.Groups[2].Fields[0].Options[0].Key)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrLayoutNotCached)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := layout
		updated.Fingerprint = "def456"
		require.NoError(t, cache.Put(ctx, key, updated))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "def456", got.Fingerprint)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, layout))
		require.NoError(t, cache.Delete(ctx, key))

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrLayoutNotCached, "Get after Delete should miss")

		assert.NoError(t, cache.Delete(ctx, key), "Delete of a missing key should not fail")
	})
}

func keys(fields []domain.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}
