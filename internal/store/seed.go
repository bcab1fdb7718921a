package store

import (
	"fmt"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
	"github.com/geocoder89/neuralpulse/internal/security"
)

// DemoUsers are the accounts a fresh store starts with. Passwords are
// plain here and pass through the configured hasher when seeded.
func DemoUsers() []user.User {
	return []user.User{
		{
			ID:       "1",
			Username: "admin",
			Password: "admin123",
			Role:     user.RoleAdmin,
			Name:     "Admin User",
			Email:    "admin@neuralpulse.com",
			Bio:      "Site administrator",
			Avatar:   "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=200&h=200&auto=format&fit=crop",
		},
		{
			ID:       "2",
			Username: "author",
			Password: "author123",
			Role:     user.RoleAuthor,
			Name:     "Demo Author",
			Email:    "author@neuralpulse.com",
			Bio:      "Content creator",
			Avatar:   "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=200&h=200&auto=format&fit=crop",
		},
	}
}

// HashedDemoUsers returns DemoUsers with passwords run through h.
func HashedDemoUsers(h security.Hasher) ([]user.User, error) {
	users := DemoUsers()

	for i := range users {
		hashed, err := h.Hash(users[i].Password)
		if err != nil {
			return nil, fmt.Errorf("hash demo password for %s: %w", users[i].Username, err)
		}
		users[i].Password = hashed
	}

	return users, nil
}

func (s *Store) demoUsers() []user.User {
	users, err := HashedDemoUsers(s.hasher)
	if err != nil {
		s.log.Error("store: seeding demo users failed", "err", err)
		return []user.User{}
	}
	return users
}
