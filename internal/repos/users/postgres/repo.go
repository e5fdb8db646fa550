package users

import (
	"database/sql"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
)

var _ users.Users = (*usersRepo)(nil)

type usersRepo struct{ db *sql.DB }

func New(db *sql.DB) *usersRepo {
	return &usersRepo{db: db}
}

const userColumns = `id, name, email, balance, role, avatar, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var (
		u      users.User
		role   string
		avatar sql.NullString
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Balance, &role, &avatar, &u.CreatedAt)
	if err != nil {
		return users.User{}, err
	}

	u.Role = users.Role(role)
	if avatar.Valid {
		u.Avatar = &avatar.String
	}

	err = schema.CheckRecord("user", u.ID, u)
	if err != nil {
		return users.User{}, err
	}

	return u, nil
}
