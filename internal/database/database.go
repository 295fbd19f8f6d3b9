package database

import (
	"fmt"
	"time"

	"clover/internal/config"
	"clover/internal/database/migrations"
	"clover/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations(dir migrate.MigrationDirection) (int, error)
	HealthCheck() error
}

type DB struct {
	*sqlx.DB
}

func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.DbHOST,
		cfg.DB.DbPORT,
		cfg.DB.DbUSER,
		cfg.DB.DbPASSWORD,
		cfg.DB.DbNAME,
		cfg.DB.DbSSLMODE,
	)
}

// ConnectDB opens the pool and verifies it. Migrations are a separate step.
func ConnectDB(cfg *config.Config) (*DB, error) {
	logger.WithFields(logger.Fields{"host": cfg.DB.DbHOST, "dbname": cfg.DB.DbNAME}).Info("connecting to database")

	db, err := sqlx.Connect("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}
	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check: %w", err)
	}

	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.Files,
		Root:       ".",
	}
}

// RunMigrations applies the embedded migrations in the given direction and
// returns how many were applied.
func (db *DB) RunMigrations(dir migrate.MigrationDirection) (int, error) {
	n, err := migrate.Exec(db.DB.DB, "postgres", migrationSource(), dir)
	if err != nil {
		return n, fmt.Errorf("running migrations: %w", err)
	}

	logger.WithFields(logger.Fields{"applied": n}).Info("migrations applied")
	return n, nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
