// Package memstore is an in-memory implementation of store.Store. It keeps no state beyond
// the process lifetime and is meant for tests and local runs.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// DB is a store.Store backed by maps.
type DB struct {
	mu sync.RWMutex

	users       map[int]model.User
	groups      map[int]model.Group
	tasks       map[int]model.Task
	memberships map[model.Membership]struct{}

	nextUserID  int
	nextGroupID int
	nextTaskID  int
}

var _ store.Store = (*DB)(nil)

// New returns an empty DB.
func New() *DB {
	return &DB{
		users:       make(map[int]model.User),
		groups:      make(map[int]model.Group),
		tasks:       make(map[int]model.Task),
		memberships: make(map[model.Membership]struct{}),
	}
}

// Ping implements store.Store.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements store.Store.
func (db *DB) Close() error {
	return nil
}

func sortedValues[T any](m map[int]T) []T {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// ListUsers implements store.UserStore.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return sortedValues(db.users), nil
}

// UserByID implements store.UserStore.
func (db *DB) UserByID(ctx context.Context, id int) (model.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	u, ok := db.users[id]
	if !ok {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user %d", id)
	}
	return u, nil
}

// AddUser implements store.UserStore.
func (db *DB) AddUser(ctx context.Context, u model.User) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextUserID++
	u.ID = db.nextUserID
	db.users[u.ID] = u
	return u, nil
}

// UpdateUser implements store.UserStore.
func (db *DB) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[u.ID]; !ok {
		return model.User{}, errors.Wrapf(store.ErrNotFound, "user %d", u.ID)
	}
	db.users[u.ID] = u
	return u, nil
}

// DeleteUser implements store.UserStore. Memberships referencing the user are removed with it.
func (db *DB) DeleteUser(ctx context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "user %d", id)
	}
	delete(db.users, id)
	for m := range db.memberships {
		if m.UserID == id {
			delete(db.memberships, m)
		}
	}
	return nil
}

// ListGroups implements store.GroupStore.
func (db *DB) ListGroups(ctx context.Context) ([]model.Group, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return sortedValues(db.groups), nil
}

// GroupByID implements store.GroupStore.
func (db *DB) GroupByID(ctx context.Context, id int) (model.Group, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	g, ok := db.groups[id]
	if !ok {
		return model.Group{}, errors.Wrapf(store.ErrNotFound, "group %d", id)
	}
	return g, nil
}

// AddGroup implements store.GroupStore.
func (db *DB) AddGroup(ctx context.Context, g model.Group) (model.Group, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextGroupID++
	g.ID = db.nextGroupID
	db.groups[g.ID] = g
	return g, nil
}

// DeleteGroup implements store.GroupStore.
func (db *DB) DeleteGroup(ctx context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.groups[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "group %d", id)
	}
	delete(db.groups, id)
	for m := range db.memberships {
		if m.GroupID == id {
			delete(db.memberships, m)
		}
	}
	return nil
}

// GroupsForUser implements store.GroupStore.
func (db *DB) GroupsForUser(ctx context.Context, userID int) ([]model.Group, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	groups := make(map[int]model.Group)
	for m := range db.memberships {
		if m.UserID == userID {
			if g, ok := db.groups[m.GroupID]; ok {
				groups[g.ID] = g
			}
		}
	}
	return sortedValues(groups), nil
}

// AddMembership implements store.MembershipStore. Both sides must exist, as they would under
// the SQL foreign keys.
func (db *DB) AddMembership(ctx context.Context, m model.Membership) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[m.UserID]; !ok {
		return errors.Wrapf(store.ErrNotFound, "user %d", m.UserID)
	}
	if _, ok := db.groups[m.GroupID]; !ok {
		return errors.Wrapf(store.ErrNotFound, "group %d", m.GroupID)
	}
	if _, ok := db.memberships[m]; ok {
		return errors.Wrapf(store.ErrDuplicateRecord, "membership of user %d in group %d",
			m.UserID, m.GroupID)
	}
	db.memberships[m] = struct{}{}
	return nil
}

// DeleteMembership implements store.MembershipStore.
func (db *DB) DeleteMembership(ctx context.Context, m model.Membership) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.memberships[m]; !ok {
		return errors.Wrapf(store.ErrNotFound, "membership of user %d in group %d",
			m.UserID, m.GroupID)
	}
	delete(db.memberships, m)
	return nil
}

// MembersOfGroup implements store.MembershipStore.
func (db *DB) MembersOfGroup(ctx context.Context, groupID int) ([]model.Member, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	members := make(map[int]model.Member)
	for m := range db.memberships {
		if m.GroupID != groupID {
			continue
		}
		members[m.UserID] = model.Member{
			UserID:  m.UserID,
			GroupID: m.GroupID,
			User:    db.users[m.UserID],
		}
	}
	return sortedValues(members), nil
}

// GroupIDsForUser implements store.MembershipStore.
func (db *DB) GroupIDsForUser(ctx context.Context, userID int) ([]int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	ids := []int{}
	for m := range db.memberships {
		if m.UserID == userID {
			ids = append(ids, m.GroupID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// DeleteMembershipsForUser implements store.MembershipStore.
func (db *DB) DeleteMembershipsForUser(ctx context.Context, userID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for m := range db.memberships {
		if m.UserID == userID {
			delete(db.memberships, m)
		}
	}
	return nil
}

// CountMembers implements store.MembershipStore.
func (db *DB) CountMembers(ctx context.Context, groupID int) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	count := 0
	for m := range db.memberships {
		if m.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

// ListTasks implements store.TaskStore.
func (db *DB) ListTasks(ctx context.Context) ([]model.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return sortedValues(db.tasks), nil
}

// TasksByGroup implements store.TaskStore.
func (db *DB) TasksByGroup(ctx context.Context, groupID int) ([]model.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	tasks := make(map[int]model.Task)
	for id, t := range db.tasks {
		if t.GroupID.Valid && int(t.GroupID.Int64) == groupID {
			tasks[id] = t
		}
	}
	return sortedValues(tasks), nil
}

// TaskByID implements store.TaskStore.
func (db *DB) TaskByID(ctx context.Context, id int) (model.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.tasks[id]
	if !ok {
		return model.Task{}, errors.Wrapf(store.ErrNotFound, "task %d", id)
	}
	return t, nil
}

// AddTask implements store.TaskStore.
func (db *DB) AddTask(ctx context.Context, t model.Task) (model.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextTaskID++
	t.ID = db.nextTaskID
	db.tasks[t.ID] = t
	return t, nil
}

// UpdateTask implements store.TaskStore.
func (db *DB) UpdateTask(ctx context.Context, t model.Task) (model.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.tasks[t.ID]; !ok {
		return model.Task{}, errors.Wrapf(store.ErrNotFound, "task %d", t.ID)
	}
	db.tasks[t.ID] = t
	return t, nil
}

// DeleteTask implements store.TaskStore.
func (db *DB) DeleteTask(ctx context.Context, id int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.tasks[id]; !ok {
		return errors.Wrapf(store.ErrNotFound, "task %d", id)
	}
	delete(db.tasks, id)
	return nil
}
