package credentials

import (
	"context"
	"database/sql"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/metadata"
	_ "modernc.org/sqlite"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return NewSQLiteStore(metadata.NewSQLiteRepository(db))
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func backends(t *testing.T) map[string]Store {
	rs, _ := newRedisStore(t)
	return map[string]Store{
		"sqlite": newSQLiteStore(t),
		"redis":  rs,
		"memory": NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok, "fresh store must be empty")

			require.NoError(t, s.Save(ctx, "t1"))
			tok, ok, err := s.Read(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "t1", tok)

			require.NoError(t, s.Save(ctx, "t2"))
			tok, _, err = s.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t2", tok, "save overwrites")

			require.NoError(t, s.Clear(ctx))
			_, ok, err = s.Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Clear(ctx), "clear on empty store is a no-op")
		})
	}
}

func TestStore_ClearIf(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			cleared, err := s.ClearIf(ctx, "stale")
			require.NoError(t, err)
			assert.False(t, cleared)

			require.NoError(t, s.Save(ctx, "fresh"))

			cleared, err = s.ClearIf(ctx, "stale")
			require.NoError(t, err)
			assert.False(t, cleared)
			tok, ok, err := s.Read(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "fresh", tok)

			cleared, err = s.ClearIf(ctx, "fresh")
			require.NoError(t, err)
			assert.True(t, cleared)
			_, ok, err = s.Read(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_SaveRejectsEmpty(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, s.Save(context.Background(), ""), ErrEmptyToken)
		})
	}
}

func TestRedisStore_UsesFixedKeyWithoutTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, s.Save(context.Background(), "abc"))

	got, err := mr.Get("drivequiz:credentials:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.Zero(t, mr.TTL("drivequiz:credentials:token"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, _, err := s.Read(context.Background())
	require.ErrorContains(t, err, "read credential")
}
