package config

import "time"

// PostgresConfig is nested under the "PG" prefix, so keys read PG_DSN etc.
type PostgresConfig struct {
	DSN             string        `envconfig:"DSN" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
}

// AuthConfig describes how identity tokens from the external provider are
// verified. Keys read AUTH_JWT_SECRET etc.
type AuthConfig struct {
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	Issuer     string `envconfig:"ISSUER"`
	Audience   string `envconfig:"AUDIENCE"`
	AdminEmail string `envconfig:"ADMIN_EMAIL" required:"true"`
}

// LedgerConfig holds business limits. Keys read LEDGER_*.
type LedgerConfig struct {
	AddMoneyMin    int64 `envconfig:"ADD_MONEY_MIN" default:"50"`
	OrderListLimit int   `envconfig:"ORDER_LIST_LIMIT" default:"50"`
}

// JobsConfig holds cron specs. Keys read JOBS_*.
type JobsConfig struct {
	DailyReportSpec string `envconfig:"DAILY_REPORT_SPEC" default:"5 0 * * *"`
}
