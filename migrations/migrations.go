package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		hashed_password VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL,
		project_link VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		author VARCHAR(255) NOT NULL,
		published INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(255) NOT NULL,
		x_link VARCHAR(255) NOT NULL,
		linkedin_link VARCHAR(255) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS ix_contacts_email ON contacts(email);`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		UNIQUE KEY ix_owners_username (username),
		UNIQUE KEY ix_owners_email (email)
	);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(255) NOT NULL,
		project_link VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		author VARCHAR(255) NOT NULL,
		published INT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		x_link VARCHAR(255) NOT NULL,
		linkedin_link VARCHAR(255) NOT NULL,
		INDEX ix_contacts_email (email)
	);`,
}

// Statements returns the schema for the given driver name.
func Statements(driver string) ([]string, error) {
	switch driver {
	case "sqlite3":
		return sqliteSchema, nil
	case "mysql":
		return mysqlSchema, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// AutoMigrate creates the portfolio tables if they do not exist.
// Each statement is retried up to retries times, one second apart.
func AutoMigrate(ctx context.Context, db *sql.DB, driver string, retries int) error {
	stmts, err := Statements(driver)
	if err != nil {
		return err
	}

	for _, query := range stmts {
		_, err := db.ExecContext(ctx, query)
		for i := 0; err != nil && i < retries; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(1 * time.Second):
			}
			_, err = db.ExecContext(ctx, query)
		}
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
