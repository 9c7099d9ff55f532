package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "workworth.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "monthly_salary", "4400"))
	v, ok, err := kv.Get(ctx, "monthly_salary")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4400", v)

	// overwrite
	require.NoError(t, kv.Put(ctx, "monthly_salary", "4600"))
	v, _, err = kv.Get(ctx, "monthly_salary")
	require.NoError(t, err)
	assert.Equal(t, "4600", v)
}

func TestSQLiteKVPutAllAndDelete(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "workworth.db"))
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.PutAll(ctx, map[string]string{
		"labels":       `[]`,
		"transactions": `[]`,
	}))

	for _, key := range []string{"labels", "transactions"} {
		v, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, `[]`, v)
	}

	require.NoError(t, kv.Delete(ctx, "labels"))
	_, ok, err := kv.Get(ctx, "labels")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Reset(ctx))
	_, ok, err = kv.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKVReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workworth.db")

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "saved_month", "January 2026"))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "saved_month")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "January 2026", v)
}
