package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shirouto/dsprobe/credentials"
	"github.com/shirouto/dsprobe/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("ResolvesCredentials", func(t *testing.T) {
		store := credentials.NewStore(filepath.Join(t.TempDir(), "credentials.yml"))
		require.NoError(t, store.Save("my_postgres_db", "s3cret"))

		path := writeTargets(t, `
targets:
  - name: orders
    dialect: postgres
    host: db1
    port: "5432"
    username: app
    password: ${my_postgres_db}
    database: orders
    connect_timeout: 5
  - name: cache
    dialect: redis
    host: cache1
`)

		targets, err := Load(path, store)
		require.NoError(t, err)
		require.Len(t, targets, 2)

		assert.Equal(t, "orders", targets[0].Name)
		pg, ok := targets[0].Config.(*types.Postgres)
		require.True(t, ok)
		assert.Equal(t, "s3cret", pg.Password)
		assert.Equal(t, 5, pg.GetConnectTimeout())

		assert.Equal(t, "cache", targets[1].Name)
		assert.Equal(t, types.DialectRedis, targets[1].Config.EngineDialect())
	})

	t.Run("UnresolvedCredential", func(t *testing.T) {
		store := credentials.NewStore(filepath.Join(t.TempDir(), "credentials.yml"))
		require.NoError(t, store.Load())

		path := writeTargets(t, `
targets:
  - name: orders
    dialect: postgres
    password: ${missing}
`)

		_, err := Load(path, store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("NilStoreSkipsSubstitution", func(t *testing.T) {
		path := writeTargets(t, `
targets:
  - name: orders
    dialect: mysql
    password: literal
`)

		targets, err := Load(path, nil)
		require.NoError(t, err)

		my := targets[0].Config.(*types.MySQL)
		assert.Equal(t, "literal", my.Password)
	})

	t.Run("MissingName", func(t *testing.T) {
		path := writeTargets(t, `
targets:
  - dialect: mysql
`)

		_, err := Load(path, nil)
		assert.Error(t, err)
	})

	t.Run("UnknownDialect", func(t *testing.T) {
		path := writeTargets(t, `
targets:
  - name: legacy
    dialect: oracle
`)

		_, err := Load(path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), nil)
		assert.Error(t, err)
	})
}

func TestBuild(t *testing.T) {
	t.Run("EveryDialect", func(t *testing.T) {
		cases := []struct {
			dialect string
			want    types.Dialect
		}{
			{"mysql", types.DialectMySQL},
			{"postgres", types.DialectPostgres},
			{"redshift", types.DialectRedshift},
			{"mssql", types.DialectMSSQL},
			{"sqlite", types.DialectSqLite},
			{"redis", types.DialectRedis},
			{"mongodb", types.DialectMongoDB},
			{"amqp", types.DialectAMQP},
		}

		for _, tc := range cases {
			cfg, err := Build(TargetSpec{Name: "t", Dialect: tc.dialect})
			require.NoError(t, err, tc.dialect)
			assert.Equal(t, tc.want, cfg.EngineDialect())
		}
	})

	t.Run("RedisDatabaseNumber", func(t *testing.T) {
		cfg, err := Build(TargetSpec{Name: "cache", Dialect: "redis", Database: "2"})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.(*types.Redis).Database)

		_, err = Build(TargetSpec{Name: "cache", Dialect: "redis", Database: "two"})
		assert.Error(t, err)
	})

	t.Run("TimeoutCarried", func(t *testing.T) {
		cfg, err := Build(TargetSpec{Name: "db", Dialect: "mssql", ConnectTimeout: 7})
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.GetConnectTimeout())
	})
}
