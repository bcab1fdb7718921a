package store

import (
	"fmt"

	"github.com/geocoder89/neuralpulse/internal/domain/user"
)

// Login makes the user matching both username and password the current
// session. A failed attempt leaves the session untouched.
func (s *Store) Login(username, password string) (user.User, bool) {
	var found user.User
	ok := false

	s.mutate("login", func(st *State) bool {
		for _, u := range st.Users {
			if u.Username != username {
				continue
			}
			if s.hasher.Compare(u.Password, password) != nil {
				continue
			}
			found = u
			ok = true

			session := u
			st.CurrentUser = &session
			return true
		}
		return false
	})

	s.log.Info("store: login", "username", username, "ok", ok)

	return found, ok
}

// Logout clears the session unconditionally.
func (s *Store) Logout() {
	s.mutate("logout", func(st *State) bool {
		st.CurrentUser = nil
		return true
	})
}

// Register adds a user unless the username is already taken (exact,
// case-sensitive match). It does not log the new user in.
func (s *Store) Register(req user.RegisterRequest) (user.User, bool) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.log.Error("store: hashing password failed", "username", req.Username, "err", err)
		return user.User{}, false
	}

	var created user.User
	ok := false

	s.mutate("register", func(st *State) bool {
		for _, u := range st.Users {
			if u.Username == req.Username {
				return false
			}
		}

		created = user.User{
			ID:       s.newID(),
			Username: req.Username,
			Password: hashed,
			Role:     req.Role,
			Name:     req.Name,
			Email:    req.Email,
			Bio:      req.Bio,
			Avatar:   req.Avatar,
		}
		st.Users = append(st.Users, created)
		ok = true
		return true
	})

	return created, ok
}

// UpdateUser merges patch onto the user with id. When that user is the
// current session, the session copy gets the same merge.
func (s *Store) UpdateUser(id string, patch user.Patch) (user.User, error) {
	var (
		updated user.User
		outErr  error
	)

	s.mutate("update_user", func(st *State) bool {
		idx := -1
		for i, u := range st.Users {
			if u.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			outErr = user.ErrNotFound
			return false
		}

		effective, err := s.hashPatch(st.Users[idx], patch)
		if err != nil {
			outErr = err
			return false
		}

		st.Users[idx] = effective.Apply(st.Users[idx])
		updated = st.Users[idx]

		if st.CurrentUser != nil && st.CurrentUser.ID == id {
			session := effective.Apply(*st.CurrentUser)
			st.CurrentUser = &session
		}
		return true
	})

	if outErr != nil {
		return user.User{}, outErr
	}
	return updated, nil
}

// hashPatch replaces a plain password in patch with its stored form. A
// password equal to the current one keeps the stored value, so applying the
// same patch twice yields the same user even with salted hashes.
func (s *Store) hashPatch(current user.User, patch user.Patch) (user.Patch, error) {
	if patch.Password == nil {
		return patch, nil
	}

	if s.hasher.Compare(current.Password, *patch.Password) == nil {
		stored := current.Password
		patch.Password = &stored
		return patch, nil
	}

	hashed, err := s.hasher.Hash(*patch.Password)
	if err != nil {
		return user.Patch{}, fmt.Errorf("hash password: %w", err)
	}
	patch.Password = &hashed
	return patch, nil
}

func (s *Store) GetUser(id string) (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.state.Users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

func (s *Store) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user.User, len(s.state.Users))
	copy(out, s.state.Users)
	return out
}

// CurrentUser reports the session pointer.
func (s *Store) CurrentUser() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return user.User{}, false
	}
	return *s.state.CurrentUser, true
}
