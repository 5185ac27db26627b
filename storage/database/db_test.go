package database

import (
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/storage/database/migrations"
)

func TestDSN(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Database.Engine = "postgres"
	conf.Database.Host = "db"
	conf.Database.Port = 5432
	conf.Database.Name = "campuslink"
	conf.Database.User = "app"
	conf.Database.Password = "pwd"
	conf.Database.AdminUser = "root"
	conf.Database.AdminPassword = "rootpwd"

	assert.Equal(t, "postgres://app:pwd@db:5432/campuslink?sslmode=require&timezone=utc", DSN(conf.Database.Name, false, conf))

	conf.Database.DisableTLS = true
	assert.Equal(t, "postgres://root:rootpwd@db:5432/postgres?sslmode=disable&timezone=utc", DSN("postgres", true, conf))

	conf.Database.AdminUser = ""
	assert.Equal(t, "postgres://app:pwd@db:5432/postgres?sslmode=disable&timezone=utc", DSN("postgres", true, conf))
}

func TestMigrate(t *testing.T) {
	orig := GooseRunFunc
	defer func() { GooseRunFunc = orig }()

	var gotCmd, gotDir string
	var gotArgs []string
	GooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		gotCmd, gotDir, gotArgs = command, dir, args
		if command == "lol" {
			return errors.New(`"lol": no such command`)
		}
		return nil
	}

	require.NoError(t, Migrate(nil, ""))
	assert.Equal(t, "up", gotCmd)
	assert.Equal(t, migrations.Dir, gotDir)
	assert.Empty(t, gotArgs)

	require.NoError(t, Migrate(nil, "down-to", "0"))
	assert.Equal(t, "down-to", gotCmd)
	assert.Equal(t, []string{"0"}, gotArgs)

	err := Migrate(nil, "lol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such command")
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_create_kv_store.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS kv_store")
	assert.Contains(t, string(data), "-- +goose Down")
}
