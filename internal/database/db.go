package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/iliyamo/sports-session-scheduler/internal/config"
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Open connects to the store selected by cfg.DBDriver and verifies the
// connection.
func Open(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case DriverMySQL:
		return open(DriverMySQL, MySQLDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName), 25)
	case DriverSQLite:
		// A single connection serializes writers and avoids SQLITE_BUSY.
		return open(DriverSQLite, SQLiteDSN(cfg.DBPath), 1)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// MySQLDSN builds the go-sql-driver DSN.  clientFoundRows makes
// RowsAffected report matched rows, which the conditional updates in
// the repository rely on.
func MySQLDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE/DATETIME -> time.Time | loc=UTC keeps times consistent
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}

// SQLiteDSN enables foreign keys and a busy timeout on a file database.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_fk=1&_busy_timeout=5000", path)
}

// OpenMemory opens a private in-memory SQLite database.  name must be
// unique per test so that shared-cache databases do not collide.
func OpenMemory(name string) (*sql.DB, error) {
	return open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name), 1)
}

func open(driver, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	if driver == DriverMySQL {
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DriverName reports which SQL dialect db speaks.
func DriverName(db *sql.DB) string {
	if _, ok := db.Driver().(*sqlite3.SQLiteDriver); ok {
		return DriverSQLite
	}
	return DriverMySQL
}
