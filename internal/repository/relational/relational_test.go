package relational_test

import (
	"LinkGate-Backend/internal/config"
	"LinkGate-Backend/internal/database"
	"LinkGate-Backend/internal/domain"
	"LinkGate-Backend/internal/repository"
	"LinkGate-Backend/internal/repository/relational"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
)

// setupStorage поднимает PostgreSQL в контейнере и возвращает хранилище поверх него
func setupStorage(t *testing.T) *relational.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("linkgate"),
		tcpostgres.WithUsername("linkgate"),
		tcpostgres.WithPassword("linkgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := zap.NewNop()
	db, err := database.Open(postgres.Open(dsn), &config.Database{ConnMaxLifetime: "1h"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db, log) })

	require.NoError(t, database.AutoMigrate(db, log))
	return relational.New(db, log)
}

func TestStorage_Postgres(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("insert and lookup", func(t *testing.T) {
		hash := "$2a$04$hash"
		link := &domain.Link{ShortID: "abc123", LongURL: "https://example.com", ExpiresAt: now.Add(time.Hour), PasswordHash: &hash}
		require.NoError(t, s.Insert(ctx, link))
		assert.NotZero(t, link.ID)

		got, err := s.Lookup(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got.LongURL)
		assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))
		require.NotNil(t, got.PasswordHash)
		assert.Equal(t, hash, *got.PasswordHash)
	})

	t.Run("lookup missing", func(t *testing.T) {
		_, err := s.Lookup(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrShortIDNotFound)
	})

	t.Run("conflict leaves entry unchanged", func(t *testing.T) {
		first := &domain.Link{ShortID: "promo", LongURL: "https://first.example", ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, s.Insert(ctx, first))

		second := &domain.Link{ShortID: "promo", LongURL: "https://second.example", ExpiresAt: now.Add(72 * time.Hour)}
		assert.ErrorIs(t, s.Insert(ctx, second), repository.ErrShortIDExists)

		got, err := s.Lookup(ctx, "promo")
		require.NoError(t, err)
		assert.Equal(t, "https://first.example", got.LongURL)
		assert.True(t, got.ExpiresAt.Equal(first.ExpiresAt))
		assert.Nil(t, got.PasswordHash)
	})

	t.Run("short ids are case sensitive", func(t *testing.T) {
		require.NoError(t, s.Insert(ctx, &domain.Link{ShortID: "CaseID", LongURL: "https://upper.example", ExpiresAt: now.Add(time.Hour)}))
		require.NoError(t, s.Insert(ctx, &domain.Link{ShortID: "caseid", LongURL: "https://lower.example", ExpiresAt: now.Add(time.Hour)}))

		upper, err := s.Lookup(ctx, "CaseID")
		require.NoError(t, err)
		assert.Equal(t, "https://upper.example", upper.LongURL)

		lower, err := s.Lookup(ctx, "caseid")
		require.NoError(t, err)
		assert.Equal(t, "https://lower.example", lower.LongURL)

		_, err = s.Lookup(ctx, "CASEID")
		assert.ErrorIs(t, err, repository.ErrShortIDNotFound)
	})

	t.Run("delete expired is idempotent", func(t *testing.T) {
		require.NoError(t, s.Insert(ctx, &domain.Link{ShortID: "old1", LongURL: "https://a.example", ExpiresAt: now.Add(-time.Hour)}))
		require.NoError(t, s.Insert(ctx, &domain.Link{ShortID: "old2", LongURL: "https://b.example", ExpiresAt: now.Add(-time.Minute)}))

		n, err := s.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = s.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		_, err = s.Lookup(ctx, "abc123")
		assert.NoError(t, err, "live links survive the sweep")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "abc123"))
		assert.ErrorIs(t, s.Delete(ctx, "abc123"), repository.ErrShortIDNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
