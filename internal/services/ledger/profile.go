package ledger

import (
	"context"
	"strings"

	"github.com/fastprodman/TopupLedger/internal/infra/schema"
	"github.com/fastprodman/TopupLedger/internal/repos/users"
	"go.uber.org/zap"
)

const defaultDisplayName = "User"

// EnsureProfile returns the stored profile for id, creating it on first
// login. The admin role is granted only at creation time.
func (s *Service) EnsureProfile(ctx context.Context, id Identity) (users.User, error) {
	id.Email = strings.TrimSpace(id.Email)

	err := schema.Validate(id)
	if err != nil {
		return users.User{}, wrap("ensure profile", invalid(err))
	}

	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = defaultDisplayName
	}

	role := users.RoleUser
	if s.cfg.AdminEmail != "" && strings.EqualFold(id.Email, strings.TrimSpace(s.cfg.AdminEmail)) {
		role = users.RoleAdmin
	}

	u, err := s.users.EnsureUser(ctx, users.NewUser{
		ID:     id.UID,
		Name:   name,
		Email:  id.Email,
		Role:   role,
		Avatar: id.Avatar,
	})
	if err != nil {
		return users.User{}, wrap("ensure profile", err)
	}

	zap.L().Debug("profile ensured", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))

	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (users.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return users.User{}, wrap("get profile", err)
	}

	return u, nil
}
