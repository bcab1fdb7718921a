package store

import (
	"fmt"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
)

// AdminSeed describes an optional admin account to create on start.
type AdminSeed struct {
	Username string
	Password string
	Name     string
	Email    string
}

// EnsureAdmin registers seed as an admin unless the username already exists.
// An empty username or password is a no-op.
func (s *Store) EnsureAdmin(seed AdminSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		return false, nil
	}

	for _, u := range s.Users() {
		if u.Username == seed.Username {
			return false, nil
		}
	}

	name := seed.Name
	if name == "" {
		name = seed.Username
	}

	_, ok := s.Register(user.RegisterRequest{
		Username: seed.Username,
		Password: seed.Password,
		Role:     user.RoleAdmin,
		Name:     name,
		Email:    seed.Email,
	})
	if !ok {
		return false, fmt.Errorf("register admin %q", seed.Username)
	}

	s.log.Info("store: admin bootstrapped", "username", seed.Username)
	return true, nil
}
