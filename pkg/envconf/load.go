// Package envconf fills configuration structs from the process environment.
//
// Values come from real environment variables first; dotenv files only fill
// keys that are not already set. Struct fields are described with envconfig
// tags:
//
//	type Config struct {
//		Port     uint16        `envconfig:"APP_PORT" default:"8080"`
//		Timeout  time.Duration `envconfig:"APP_TIMEOUT" default:"10s"`
//		Postgres PostgresConf  `envconfig:"PG"` // nested keys become PG_*
//	}
package envconf

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is read when Load is called without explicit files.
const DefaultEnvFile = ".env"

var ErrInvalidDestination = errors.New("destination must be a non-nil pointer to a struct")

// Load seeds the environment from the given dotenv files (missing files are
// skipped) and then decodes it into dst.
func Load(dst any, files ...string) error {
	if dst == nil {
		return ErrInvalidDestination
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrInvalidDestination
	}

	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %q: %w", f, err)
		}
	}

	err := envconfig.Process("", dst)
	if err != nil {
		return fmt.Errorf("process env: %w", err)
	}

	return nil
}
