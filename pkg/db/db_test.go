// pkg/db/db_test.go
package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() Config {
	return Config{Driver: DriverSQLite, Path: ":memory:", CreateTables: true}
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "postgres",
			cfg:  Config{Driver: DriverPostgres, Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "expenses", SSLMode: "disable"},
			want: "host=localhost port=5432 user=u password=p dbname=expenses sslmode=disable",
		},
		{
			name: "sqlite file",
			cfg:  Config{Driver: DriverSQLite, Path: "/tmp/expense.db"},
			want: "/tmp/expense.db?_busy_timeout=5000",
		},
		{
			name: "sqlite memory",
			cfg:  Config{Driver: DriverSQLite, Path: ":memory:"},
			want: ":memory:",
		},
		{name: "sqlite without path", cfg: Config{Driver: DriverSQLite}, wantErr: true},
		{name: "unknown driver", cfg: Config{Driver: "mysql"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dataSourceName(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDBCreatesSchema(t *testing.T) {
	ctx := context.Background()
	conn, err := NewDB(ctx, memoryConfig())
	require.NoError(t, err)
	defer conn.Close()

	var count int
	err = conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM "transaction"`)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Running it twice is harmless.
	require.NoError(t, EnsureSchema(ctx, conn))
}

func TestNewDBCreatesDatabaseDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share", "expense", "expense.db")

	conn, err := NewDB(context.Background(), Config{Driver: DriverSQLite, Path: path, CreateTables: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`INSERT INTO "transaction" (date, transaction_details, amount) VALUES ('2024-01-01', 'Tea', 10)`)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestWithConnectionClosesOnEveryPath(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalReturn", func(t *testing.T) {
		var captured *sqlx.DB
		err := WithConnection(ctx, memoryConfig(), func(conn *sqlx.DB) error {
			captured = conn
			return conn.PingContext(ctx)
		})
		require.NoError(t, err)
		assert.Error(t, captured.PingContext(ctx), "connection must be closed after WithConnection returns")
	})

	t.Run("ErrorReturn", func(t *testing.T) {
		boom := errors.New("boom")
		var captured *sqlx.DB
		err := WithConnection(ctx, memoryConfig(), func(conn *sqlx.DB) error {
			captured = conn
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Error(t, captured.PingContext(ctx))
	})

	t.Run("Panic", func(t *testing.T) {
		var captured *sqlx.DB
		assert.Panics(t, func() {
			_ = WithConnection(ctx, memoryConfig(), func(conn *sqlx.DB) error {
				captured = conn
				panic("unexpected")
			})
		})
		assert.Error(t, captured.PingContext(ctx))
	})

	t.Run("ConnectFailure", func(t *testing.T) {
		called := false
		err := WithConnection(ctx, Config{Driver: "mysql"}, func(*sqlx.DB) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}
