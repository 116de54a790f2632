package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"

	mysqlDuplicateEntry = 1062
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Open connects to the store, retrying the ping up to attempts times with the given pause.
func Open(ctx context.Context, driver, dsn string, attempts int, pause time.Duration) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		var db *sql.DB
		db, err = sql.Open(driver, dsn)
		if err == nil {
			if driver == DriverSQLite {
				// a single writer keeps sqlite from returning "database is locked"
				db.SetMaxOpenConns(1)
			} else {
				db.SetMaxOpenConns(10)
				db.SetMaxIdleConns(10)
				db.SetConnMaxLifetime(30 * time.Minute)
			}
			err = db.PingContext(ctx)
			if err == nil {
				logger.Info().Str("driver", driver).Msg("Connected to store")
				return db, nil
			}
			db.Close()
		}
		logger.Warn().Err(err).Str("driver", driver).Msgf("Retry %d: failed to connect to store", i+1)

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pause):
			}
		}
	}
	return nil, fmt.Errorf("failed to connect to %s store after %d attempts: %w", driver, attempts, err)
}

// withTx runs fn inside a unit-of-work. The transaction is rolled back on every
// path that does not reach Commit.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
