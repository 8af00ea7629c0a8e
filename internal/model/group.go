package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Group corresponds to a row in the "groups" table.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID          int         `bun:"id,pk,autoincrement"    db:"id"          json:"id"`
	Name        string      `bun:"name,notnull"           db:"name"        json:"name"`
	Description null.String `bun:"description,type:text" db:"description" json:"description"`
}

// Ref returns the short form of the group used to annotate tasks.
func (g Group) Ref() *GroupRef {
	return &GroupRef{ID: g.ID, Name: g.Name}
}

// GroupRef identifies a group by id and name.
type GroupRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateGroup is the payload for creating a new group.
type CreateGroup struct {
	Name        string      `json:"name"`
	Description null.String `json:"description"`
}

// Validate checks that the required fields are present.
func (c CreateGroup) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name must be set")
	}
	return nil
}

// Membership links one user to one group. The pair is unique.
type Membership struct {
	bun.BaseModel `bun:"table:memberships,alias:m"`

	UserID  int `bun:"user_id,pk"  db:"user_id"  json:"userId"`
	GroupID int `bun:"group_id,pk" db:"group_id" json:"groupId"`
}

// Member is a membership joined with the member's user record.
type Member struct {
	UserID  int  `db:"user_id"  json:"userId"`
	GroupID int  `db:"group_id" json:"groupId"`
	User    User `db:"user"     json:"user"`
}

// AddMember is the payload for adding a user to a group.
type AddMember struct {
	UserID int `json:"userId"`
}

// Validate checks that a user id was supplied.
func (a AddMember) Validate() error {
	if a.UserID <= 0 {
		return errors.New("userId must be a positive integer")
	}
	return nil
}
