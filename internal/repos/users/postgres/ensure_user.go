package users

import (
	"context"
	"fmt"

	"github.com/fastprodman/TopupLedger/internal/repos/users"
)

func (r *usersRepo) EnsureUser(ctx context.Context, nu users.NewUser) (users.User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, balance, role, avatar)
		VALUES ($1, $2, $3, 0, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, nu.ID, nu.Name, nu.Email, string(nu.Role), nu.Avatar)
	if err != nil {
		return users.User{}, fmt.Errorf("insert user: %w", err)
	}

	u, err := r.Get(ctx, nu.ID)
	if err != nil {
		return users.User{}, fmt.Errorf("read back user: %w", err)
	}

	return u, nil
}
