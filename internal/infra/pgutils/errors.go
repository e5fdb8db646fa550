package pgutils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeFKViolation     = "23503"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeFKViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}

	return false
}
