package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sammelband/sammelband"
	"github.com/sammelband/sammelband/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSessionStore_SaveSession simulates the per-request session write.
func BenchmarkSessionStore_SaveSession(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewSessionStore(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		session := &sammelband.Session{ID: fmt.Sprintf("session-%d", i%100), LoggedIn: i%2 == 0}
		if err := store.SaveSession(ctx, session); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSessionStore_FindSession simulates the per-request session read.
func BenchmarkSessionStore_FindSession(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewSessionStore(db)
	ctx := context.Background()
	require.NoError(b, store.SaveSession(ctx, &sammelband.Session{ID: "s1"}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.FindSession(ctx, "s1"); err != nil {
			b.Fatal(err)
		}
	}
}
