package main

import (
	"time"

	"github.com/fastprodman/TopupLedger/internal/config"
)

type apiConfig struct {
	Port            uint16        `envconfig:"APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	Timezone        string        `envconfig:"APP_TIMEZONE" default:"UTC"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	Postgres config.PostgresConfig `envconfig:"PG"`
	Auth     config.AuthConfig     `envconfig:"AUTH"`
	Ledger   config.LedgerConfig   `envconfig:"LEDGER"`
	Jobs     config.JobsConfig     `envconfig:"JOBS"`
}
