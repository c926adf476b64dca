package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/ordens/internal/database/repository"
)

// Session is the authenticated identity a screen is bound to.
type Session struct {
	Login string
	Name  string
	Role  Role
}

// Provider supplies the current user. A nil session with a nil error means
// nobody is logged in.
type Provider interface {
	CurrentUser(ctx context.Context) (*Session, error)
}

// CanCreate reports whether the session may create work orders.
func CanCreate(s *Session) bool {
	if s == nil {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}

// UserLookup is the part of the user store the provider needs.
type UserLookup interface {
	ByLogin(ctx context.Context, login string) (*repository.User, error)
}

// RepoProvider resolves a fixed login against the users table.
type RepoProvider struct {
	Users UserLookup
	Login string
}

func (p RepoProvider) CurrentUser(ctx context.Context) (*Session, error) {
	login := strings.TrimSpace(p.Login)
	if login == "" || p.Users == nil {
		return nil, nil
	}
	u, err := p.Users.ByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", login, err)
	}
	if u == nil {
		return nil, nil
	}
	name := u.Name
	if name == "" {
		name = u.Login
	}
	return &Session{Login: u.Login, Name: name, Role: ParseRole(u.Role)}, nil
}
