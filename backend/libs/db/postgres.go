package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 60 * time.Second
	defaultPingTimeout  = 5 * time.Second
)

// Settings holds the discrete connection parameters the deployment provides
// (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME).
type Settings struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	MaxConns int    `yaml:"maxConns" env:"DB_MAX_CONNS"`
}

// DSN assembles a postgres connection string from the discrete parts.
func (s Settings) DSN() string {
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	port := s.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(s.User),
		url.QueryEscape(s.Password),
		host,
		port,
		s.Name,
	)
}

// NewPostgresDB creates a pgx/stdlib backed *sql.DB pool and validates the connection.
func NewPostgresDB(settings Settings) (*sql.DB, error) {
	if strings.TrimSpace(settings.Name) == "" {
		return nil, errors.New("db: database name is empty")
	}

	pool, err := sql.Open("pgx", settings.DSN())
	if err != nil {
		return nil, err
	}

	maxConns := settings.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxOpenConns
	}
	pool.SetMaxOpenConns(maxConns)
	pool.SetMaxIdleConns(defaultMaxIdleConns)
	pool.SetConnMaxLifetime(defaultConnLifetime)
	pool.SetConnMaxIdleTime(defaultConnIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
