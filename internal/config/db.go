package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// SSLMode overrides the mode derived from TLSSkipVerify when set
	SSLMode       string `yaml:"sslmode"`
	TLSSkipVerify bool   `yaml:"tls_skip_verify"`
	MaxConns      int32  `yaml:"max_conns"`
	AutoMigrate   bool   `yaml:"auto_migrate"`
}

// EffectiveSSLMode returns the libpq sslmode to use. pgx treats "require" as
// TLS without certificate verification.
func (c DBConfig) EffectiveSSLMode() string {
	if c.SSLMode != "" {
		return c.SSLMode
	}
	if c.TLSSkipVerify {
		return "require"
	}
	return "verify-full"
}

// DSN renders the keyword/value connection string understood by pgxpool
func (c DBConfig) DSN() string {
	parts := []string{
		"host=" + quoteDSNValue(c.Host),
		"port=" + quoteDSNValue(c.Port),
		"user=" + quoteDSNValue(c.User),
		"password=" + quoteDSNValue(c.Password),
		"dbname=" + quoteDSNValue(c.Name),
		"sslmode=" + c.EffectiveSSLMode(),
	}
	if c.MaxConns > 0 {
		parts = append(parts, fmt.Sprintf("pool_max_conns=%d", c.MaxConns))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ConnectDB establishes a connection pool to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN())
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.WithFields(log.Fields{"host": cfg.Host, "db": cfg.Name}).Info("Successfully connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.WithError(err).Warnf("Failed to connect to database (attempt %d/%d), retrying in %v", i+1, maxRetries, retryInterval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Execer is the part of a pool AutoMigrate needs
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('admin', 'sales')) DEFAULT 'sales'
);

CREATE TABLE IF NOT EXISTS nasabah (
	nasabah_id BIGSERIAL PRIMARY KEY,
	user_id TEXT REFERENCES users(user_id) ON DELETE SET NULL,
	name TEXT NOT NULL,
	age INTEGER,
	job TEXT,
	marital TEXT,
	education TEXT,
	balance NUMERIC,
	phone TEXT,
	email TEXT,
	housing TEXT,
	loan TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'contacted', 'converted', 'rejected')),
	notes TEXT,
	contacted_at TIMESTAMP WITH TIME ZONE,
	"default" TEXT,
	contact TEXT,
	month TEXT,
	day_of_week TEXT,
	duration INTEGER,
	campaign INTEGER,
	pdays INTEGER,
	previous INTEGER,
	poutcome TEXT,
	"emp.var.rate" DOUBLE PRECISION,
	"cons.price.idx" DOUBLE PRECISION,
	"cons.conf.idx" DOUBLE PRECISION,
	euribor3m DOUBLE PRECISION,
	"nr.employed" DOUBLE PRECISION
);

-- written only by the external scoring job
CREATE TABLE IF NOT EXISTS hasil_perhitungan_probabilitas (
	id BIGSERIAL PRIMARY KEY,
	nasabah_id BIGINT NOT NULL REFERENCES nasabah(nasabah_id) ON DELETE CASCADE,
	predicted_score DOUBLE PRECISION NOT NULL,
	calculation_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
	model_version TEXT
);

CREATE INDEX IF NOT EXISTS idx_nasabah_user_id ON nasabah(user_id);
CREATE INDEX IF NOT EXISTS idx_nasabah_status ON nasabah(status);
CREATE INDEX IF NOT EXISTS idx_hasil_nasabah_latest ON hasil_perhitungan_probabilitas(nasabah_id, calculation_date DESC);
`

// AutoMigrate creates tables if they don't exist. Tables seeded elsewhere are left as they are.
func AutoMigrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	log.Info("AutoMigrate applied successfully")
	return nil
}
