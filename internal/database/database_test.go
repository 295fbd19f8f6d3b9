package database

import (
	"strings"
	"testing"

	"clover/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource(t *testing.T) {
	found, err := migrationSource().FindMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, found)

	first := found[0]
	assert.Equal(t, "001_create_tables.sql", first.Id)
	assert.NotEmpty(t, first.Up)
	assert.NotEmpty(t, first.Down)

	up := strings.Join(first.Up, "\n")
	assert.Contains(t, up, "uniq_user_subscriptions_active")
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS scheduled_posts")
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		DbHOST: "db", DbPORT: "5432", DbUSER: "u", DbPASSWORD: "p", DbNAME: "clover", DbSSLMODE: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=clover sslmode=disable", DSN(cfg))
}

func TestHealthCheckNil(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}
