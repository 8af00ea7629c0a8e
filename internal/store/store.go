// Package store defines the persistence gateway used by every service. It is the only
// component that talks to the relational store; implementations live in the mysql, postgres
// and memstore subpackages.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

var (
	// ErrNotFound is returned if nothing is found, or if a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateRecord is returned when an insert violates a uniqueness constraint.
	ErrDuplicateRecord = errors.New("row already exists")
)

// UserStore persists users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	// UserByID returns ErrNotFound if the user does not exist.
	UserByID(ctx context.Context, id int) (model.User, error)
	AddUser(ctx context.Context, u model.User) (model.User, error)
	// UpdateUser overwrites every column of the row with u.ID.
	UpdateUser(ctx context.Context, u model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// GroupStore persists groups.
type GroupStore interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
	GroupByID(ctx context.Context, id int) (model.Group, error)
	AddGroup(ctx context.Context, g model.Group) (model.Group, error)
	// DeleteGroup removes the group row. Memberships of the group go with it; tasks are
	// left pointing at the missing group.
	DeleteGroup(ctx context.Context, id int) error
	// GroupsForUser returns the groups the user is a member of.
	GroupsForUser(ctx context.Context, userID int) ([]model.Group, error)
}

// MembershipStore persists the user/group join rows.
type MembershipStore interface {
	// AddMembership returns ErrDuplicateRecord if the pair already exists.
	AddMembership(ctx context.Context, m model.Membership) error
	// DeleteMembership returns ErrNotFound if the pair does not exist.
	DeleteMembership(ctx context.Context, m model.Membership) error
	MembersOfGroup(ctx context.Context, groupID int) ([]model.Member, error)
	GroupIDsForUser(ctx context.Context, userID int) ([]int, error)
	DeleteMembershipsForUser(ctx context.Context, userID int) error
	CountMembers(ctx context.Context, groupID int) (int, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	TasksByGroup(ctx context.Context, groupID int) ([]model.Task, error)
	TaskByID(ctx context.Context, id int) (model.Task, error)
	AddTask(ctx context.Context, t model.Task) (model.Task, error)
	// UpdateTask overwrites every column of the row with t.ID.
	UpdateTask(ctx context.Context, t model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// Store is the full persistence gateway. All list methods return rows ordered by id.
type Store interface {
	UserStore
	GroupStore
	MembershipStore
	TaskStore

	Ping(ctx context.Context) error
	Close() error
}
