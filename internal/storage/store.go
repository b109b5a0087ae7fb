package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

const connectTimeout = 5 * time.Second

// databaseNamePattern guards the identifier spliced into CREATE DATABASE.
// Identifiers cannot be bound as statement parameters.
var databaseNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// dsn renders a driver DSN for the given schema; an empty schema yields a
// server-level connection used only to create the database.
func (c Config) dsn(database string) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = database
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

const createContactsTable = `
	CREATE TABLE IF NOT EXISTS contacts (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(20) NOT NULL,
		INDEX (name)
	)`

type Store struct {
	db *sql.DB

	Contacts ContactRepository
}

// Open connects to the MySQL server, creates the configured database and
// the contacts table when absent, and returns a ready store. Any failure
// here is fatal to the caller; there is no degraded mode.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if !databaseNamePattern.MatchString(cfg.Database) {
		return nil, fmt.Errorf("open storage: database name %q must be 1-64 word characters", cfg.Database)
	}

	if err := ensureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.dsn(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	// The tool issues one statement at a time for its whole life; a single
	// connection is all it ever needs.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open storage: ping %s: %w", cfg.Database, err)
	}

	if _, err := db.ExecContext(ctx, createContactsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open storage: create contacts table: %w", err)
	}

	store := &Store{db: db}
	store.Contacts = &contactRepository{db: db}
	return store, nil
}

// ensureDatabase connects without a schema selected and creates the target
// database if it does not exist yet.
func ensureDatabase(ctx context.Context, cfg Config) error {
	admin, err := sql.Open("mysql", cfg.dsn(""))
	if err != nil {
		return fmt.Errorf("open storage: connect server: %w", err)
	}
	defer admin.Close()

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := admin.PingContext(pingCtx); err != nil {
		return fmt.Errorf("open storage: ping server %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", cfg.Database)
	if _, err := admin.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("open storage: create database %s: %w", cfg.Database, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}
