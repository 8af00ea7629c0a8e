package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// User corresponds to a row in the "users" table.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID    int    `bun:"id,pk,autoincrement" db:"id"    json:"id"`
	Name  string `bun:"name,notnull"        db:"name"  json:"name"`
	Email string `bun:"email,notnull"       db:"email" json:"email"`
}

// CreateUser is the payload for creating a new user.
type CreateUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks that the required fields are present.
func (c CreateUser) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return errors.New("name must be set")
	case strings.TrimSpace(c.Email) == "":
		return errors.New("email must be set")
	}
	return nil
}

// UserPatch is a partial update of a user. Only valid fields are applied.
type UserPatch struct {
	Name  null.String `json:"name"`
	Email null.String `json:"email"`
}

// Empty reports whether the patch carries no fields.
func (p UserPatch) Empty() bool {
	return !p.Name.Valid && !p.Email.Valid
}

// Validate rejects supplied fields that would blank out a required column.
func (p UserPatch) Validate() error {
	switch {
	case p.Name.Valid && strings.TrimSpace(p.Name.String) == "":
		return errors.New("name must not be empty")
	case p.Email.Valid && strings.TrimSpace(p.Email.String) == "":
		return errors.New("email must not be empty")
	}
	return nil
}

// Apply returns a copy of u with the supplied fields replaced.
func (p UserPatch) Apply(u User) User {
	if p.Name.Valid {
		u.Name = p.Name.String
	}
	if p.Email.Valid {
		u.Email = p.Email.String
	}
	return u
}
