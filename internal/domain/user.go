package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// User roles
const (
	RoleCandidate = "CANDIDATE"
	RoleEmployer  = "EMPLOYER"
)

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"` // hash, never serialized
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"` // CANDIDATE or EMPLOYER
}

// UserRepository resolves user ids to user records. Every component that
// stores a foreign key to a user validates it through this interface before
// mutating state, so the resolution logic lives in exactly one place.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}
