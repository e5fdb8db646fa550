package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/users"
)

func (r *usersRepo) Get(ctx context.Context, userID string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, userID)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrUserNotFound
		}

		return users.User{}, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}
