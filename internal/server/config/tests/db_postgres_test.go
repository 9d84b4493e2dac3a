package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/config"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"
)

func TestApplyPool_SetsLimits(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	config.ApplyPool(db, config.DBConfig{MaxOpenConns: 7, ConnMaxLifetime: time.Minute})

	require.Equal(t, 7, db.Stats().MaxOpenConnections)
}

// Интеграционный тест с настоящей DB
func TestInit_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	cfg := &config.Config{DB: config.DBConfig{DSN: dsn}}
	config.ApplyDefaults(cfg)
	// путь к миграциям относительно корня модуля
	cfg.Migrations.Enabled = true
	cfg.Migrations.Path = "file://../../../../migrations/postgres"

	require.NoError(t, config.Init(context.Background(), cfg, logger.NewNop()))

	db := config.GetDB()
	require.NotNil(t, db)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM usuarios").Scan(&n))
}
