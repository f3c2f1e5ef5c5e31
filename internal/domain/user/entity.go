package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Created at registration, never deleted. The password hash is
// set once and never exposed outward.
type User struct {
	id           uuid.UUID
	name         string
	email        Email
	passwordHash string
	role         Role
	createdAt    time.Time
}

func NewUser(name string, email Email, passwordHash string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
