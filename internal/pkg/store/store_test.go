package store

import (
	"context"
	"os"
	"testing"

	"quiz/internal/pkg/quiz"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the store contract against an empty store.
func exerciseStore(t *testing.T, st quiz.Store) {
	t.Helper()
	ctx := context.Background()

	all, err := st.FindAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	q1, err := st.Create(ctx, quiz.Fields{Question: "2+2?", Answer: "4"})
	require.NoError(t, err)
	q2, err := st.Create(ctx, quiz.Fields{Question: "capital of France?", Answer: "Paris"})
	require.NoError(t, err)
	require.NotEqual(t, q1.ID, q2.ID)

	got, err := st.FindByID(ctx, q1.ID)
	require.NoError(t, err)
	require.Equal(t, q1, got)

	all, err = st.FindAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]quiz.Record{q1, q2}, all); diff != "" {
		t.Fatalf("FindAll mismatch (-want +got):\n%s", diff)
	}

	_, err = st.Create(ctx, quiz.Fields{Question: "", Answer: ""})
	var verr *quiz.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Messages, 2)

	edited := q2
	edited.Question = "capital of Spain?"
	edited.Answer = "Madrid"
	updated, err := st.Update(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, edited, updated)
	got, err = st.FindByID(ctx, q2.ID)
	require.NoError(t, err)
	require.Equal(t, edited, got)

	bad := q1
	bad.Answer = ""
	_, err = st.Update(ctx, bad)
	require.True(t, errors.As(err, &verr))
	got, err = st.FindByID(ctx, q1.ID)
	require.NoError(t, err)
	require.Equal(t, "4", got.Answer)

	require.NoError(t, st.Destroy(ctx, q1.ID))
	require.NoError(t, st.Destroy(ctx, q1.ID), "destroying a missing record is a no-op")
	_, err = st.FindByID(ctx, q1.ID)
	require.ErrorIs(t, err, quiz.ErrNotFound)

	_, err = st.Update(ctx, q1)
	require.ErrorIs(t, err, quiz.ErrNotFound)

	all, err = st.FindAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []quiz.Record{edited}, all)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	st, err := OpenSQLStore(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}

func TestMySQLStore(t *testing.T) {
	dsn := os.Getenv("QUIZ_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("set QUIZ_TEST_MYSQL_DSN to run mysql-backed store tests")
	}
	st, err := OpenSQLStore(context.Background(), DriverMySQL, dsn)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.db.Exec(`DELETE FROM quizzes`)
	require.NoError(t, err)
	exerciseStore(t, st)
}

func TestGormStore(t *testing.T) {
	dsn := os.Getenv("QUIZ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set QUIZ_TEST_POSTGRES_DSN to run postgres-backed store tests")
	}
	st, err := OpenGormStore(context.Background(), dsn)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.db.Exec(`DELETE FROM quizzes`).Error)
	exerciseStore(t, st)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("QUIZ_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set QUIZ_TEST_REDIS_ADDR to run redis-backed store tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())
	st := NewRedisStore(client, "quiztest")
	defer st.Close()
	exerciseStore(t, st)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, "MEMORY", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, st)

	st, err = Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.IsType(t, &SQLStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, DriverSQLite, "")
	require.ErrorIs(t, err, ErrMissingDSN)

	_, err = Open(ctx, "mongo", "mongodb://localhost")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}
