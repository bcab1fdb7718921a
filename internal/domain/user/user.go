package user

import "errors"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAuthor:
		return true
	default:
		return false
	}
}

var ErrNotFound = errors.New("user not found")

// User is the persisted account record. Password holds whatever the
// configured hasher produced, so it is only ever serialized into the
// persistence slot, never into API responses (see View).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// View is the public projection of a user.
type View struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u User) View() View {
	return View{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Email:    u.Email,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
	}
}

func Views(users []User) []View {
	out := make([]View, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out
}

// RegisterRequest carries everything but the id of a new user.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=admin author"`
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Bio      string `json:"bio" binding:"omitempty,max=1000"`
	Avatar   string `json:"avatar"`
}

// Patch is a shallow partial update; nil fields are left untouched.
type Patch struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *Role   `json:"role" binding:"omitempty,oneof=admin author"`
	Name     *string `json:"name" binding:"omitempty,max=120"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bio      *string `json:"bio" binding:"omitempty,max=1000"`
	Avatar   *string `json:"avatar"`
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Role == nil &&
		p.Name == nil && p.Email == nil && p.Bio == nil && p.Avatar == nil
}

// Apply merges the patch onto u. Password is copied as given; hashing is
// the caller's job.
func (p Patch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	return u
}
