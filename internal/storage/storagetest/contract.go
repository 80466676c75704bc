// Package storagetest holds the behaviour every storage.KeyValueStore must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gastos/internal/storage"
)

// Run exercises load/save/remove semantics against a fresh, empty store.
func Run(t *testing.T, kv storage.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Load(ctx, storage.KeyIncome)
	require.NoError(t, err)
	require.False(t, ok, "fresh store must be empty")

	require.NoError(t, kv.Save(ctx, storage.KeyIncome, "160"))
	require.NoError(t, kv.Save(ctx, storage.KeyEntries, `[{"name":"Rent","group":"","planned":"","actual":""}]`))

	v, ok, err := kv.Load(ctx, storage.KeyIncome)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "160", v)

	require.NoError(t, kv.Save(ctx, storage.KeyIncome, "-42.5"))
	v, _, err = kv.Load(ctx, storage.KeyIncome)
	require.NoError(t, err)
	require.Equal(t, "-42.5", v, "save must overwrite")

	require.NoError(t, kv.Save(ctx, storage.KeyIncome, ""))
	v, ok, err = kv.Load(ctx, storage.KeyIncome)
	require.NoError(t, err)
	require.True(t, ok, "empty value is still present")
	require.Equal(t, "", v)

	require.NoError(t, kv.Remove(ctx, storage.KeyIncome))
	_, ok, err = kv.Load(ctx, storage.KeyIncome)
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err = kv.Load(ctx, storage.KeyEntries)
	require.NoError(t, err)
	require.True(t, ok, "removing one key must keep the other")
	require.Contains(t, v, "Rent")

	require.NoError(t, kv.Remove(ctx, storage.KeyIncome), "removing a missing key is not an error")
	require.NoError(t, kv.Remove(ctx, storage.KeyEntries))
}
