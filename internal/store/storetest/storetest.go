// Package storetest holds the behavioural contract every store.Store implementation must
// satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// Factory returns an empty store. The store is closed by Run.
type Factory func(t *testing.T) store.Store

// Run exercises the gateway contract against stores produced by newStore. Each subtest gets
// a fresh store.
func Run(t *testing.T, newStore Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, ctx context.Context, db store.Store)
	}{
		{"users crud", testUsers},
		{"groups crud", testGroups},
		{"memberships", testMemberships},
		{"delete group drops memberships", testDeleteGroupDropsMemberships},
		{"tasks crud", testTasks},
		{"tasks survive group deletion", testDanglingGroupID},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			db := newStore(t)
			t.Cleanup(func() { require.NoError(t, db.Close()) })
			tc.fn(t, context.Background(), db)
		})
	}
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, store.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func testUsers(t *testing.T, ctx context.Context, db store.Store) {
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	alice, err := db.AddUser(ctx, model.User{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotZero(t, alice.ID)
	bob, err := db.AddUser(ctx, model.User{Name: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, bob.ID)

	got, err := db.UserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice.Email, got.Email)

	alice.Name = "alice liddell"
	updated, err := db.UpdateUser(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "alice liddell", updated.Name)

	users, err = db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, alice.ID, users[0].ID)
	require.Equal(t, "alice liddell", users[0].Name)

	require.NoError(t, db.DeleteUser(ctx, bob.ID))
	_, err = db.UserByID(ctx, bob.ID)
	requireNotFound(t, err)
	requireNotFound(t, db.DeleteUser(ctx, bob.ID))
	_, err = db.UpdateUser(ctx, bob)
	requireNotFound(t, err)
}

func testGroups(t *testing.T, ctx context.Context, db store.Store) {
	g, err := db.AddGroup(ctx, model.Group{Name: "ops", Description: null.StringFrom("on call")})
	require.NoError(t, err)
	require.NotZero(t, g.ID)

	plain, err := db.AddGroup(ctx, model.Group{Name: "ops"})
	require.NoError(t, err, "group names are not unique")

	got, err := db.GroupByID(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, "on call", got.Description.String)
	got, err = db.GroupByID(ctx, plain.ID)
	require.NoError(t, err)
	require.False(t, got.Description.Valid)

	groups, err := db.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	require.NoError(t, db.DeleteGroup(ctx, g.ID))
	_, err = db.GroupByID(ctx, g.ID)
	requireNotFound(t, err)
	requireNotFound(t, db.DeleteGroup(ctx, g.ID))
}

func testMemberships(t *testing.T, ctx context.Context, db store.Store) {
	u1, err := db.AddUser(ctx, model.User{Name: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	u2, err := db.AddUser(ctx, model.User{Name: "u2", Email: "u2@example.com"})
	require.NoError(t, err)
	g1, err := db.AddGroup(ctx, model.Group{Name: "g1"})
	require.NoError(t, err)
	g2, err := db.AddGroup(ctx, model.Group{Name: "g2"})
	require.NoError(t, err)

	require.NoError(t, db.AddMembership(ctx, model.Membership{UserID: u1.ID, GroupID: g1.ID}))
	require.NoError(t, db.AddMembership(ctx, model.Membership{UserID: u2.ID, GroupID: g1.ID}))
	require.NoError(t, db.AddMembership(ctx, model.Membership{UserID: u1.ID, GroupID: g2.ID}))

	err = db.AddMembership(ctx, model.Membership{UserID: u1.ID, GroupID: g1.ID})
	require.True(t, errors.Is(err, store.ErrDuplicateRecord), "expected duplicate, got %v", err)

	err = db.AddMembership(ctx, model.Membership{UserID: u1.ID, GroupID: g2.ID + 1000})
	requireNotFound(t, err)

	members, err := db.MembersOfGroup(ctx, g1.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, u1.ID, members[0].UserID)
	require.Equal(t, g1.ID, members[0].GroupID)
	require.Equal(t, "u1@example.com", members[0].User.Email)
	require.Equal(t, "u2", members[1].User.Name)

	ids, err := db.GroupIDsForUser(ctx, u1.ID)
	require.NoError(t, err)
	require.Equal(t, []int{g1.ID, g2.ID}, ids)

	groups, err := db.GroupsForUser(ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "g1", groups[0].Name)

	count, err := db.CountMembers(ctx, g1.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, db.DeleteMembership(ctx, model.Membership{UserID: u2.ID, GroupID: g1.ID}))
	requireNotFound(t, db.DeleteMembership(ctx, model.Membership{UserID: u2.ID, GroupID: g1.ID}))

	require.NoError(t, db.DeleteMembershipsForUser(ctx, u1.ID))
	ids, err = db.GroupIDsForUser(ctx, u1.ID)
	require.NoError(t, err)
	require.Empty(t, ids)
	count, err = db.CountMembers(ctx, g1.ID)
	require.NoError(t, err)
	require.Zero(t, count)
	require.NoError(t, db.DeleteMembershipsForUser(ctx, u1.ID), "deleting nothing is not an error")
}

func testDeleteGroupDropsMemberships(t *testing.T, ctx context.Context, db store.Store) {
	u, err := db.AddUser(ctx, model.User{Name: "u", Email: "u@example.com"})
	require.NoError(t, err)
	g, err := db.AddGroup(ctx, model.Group{Name: "g"})
	require.NoError(t, err)
	require.NoError(t, db.AddMembership(ctx, model.Membership{UserID: u.ID, GroupID: g.ID}))

	require.NoError(t, db.DeleteGroup(ctx, g.ID))
	ids, err := db.GroupIDsForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func testTasks(t *testing.T, ctx context.Context, db store.Store) {
	g, err := db.AddGroup(ctx, model.Group{Name: "g"})
	require.NoError(t, err)

	loose, err := db.AddTask(ctx, model.Task{Title: "loose"})
	require.NoError(t, err)
	require.NotZero(t, loose.ID)
	require.False(t, loose.Completed)

	scoped, err := db.AddTask(ctx, model.Task{
		Title:       "scoped",
		Description: null.StringFrom("in a group"),
		GroupID:     null.IntFrom(int64(g.ID)),
	})
	require.NoError(t, err)

	got, err := db.TaskByID(ctx, scoped.ID)
	require.NoError(t, err)
	require.Equal(t, scoped, got)

	got, err = db.TaskByID(ctx, loose.ID)
	require.NoError(t, err)
	require.False(t, got.Description.Valid)
	require.False(t, got.GroupID.Valid)

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	tasks, err = db.TasksByGroup(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, scoped.ID, tasks[0].ID)

	scoped.Completed = true
	scoped.Description = null.String{}
	updated, err := db.UpdateTask(ctx, scoped)
	require.NoError(t, err)
	require.True(t, updated.Completed)
	got, err = db.TaskByID(ctx, scoped.ID)
	require.NoError(t, err)
	require.True(t, got.Completed)
	require.False(t, got.Description.Valid)

	_, err = db.UpdateTask(ctx, got)
	require.NoError(t, err, "an update that changes nothing still finds the row")

	require.NoError(t, db.DeleteTask(ctx, loose.ID))
	_, err = db.TaskByID(ctx, loose.ID)
	requireNotFound(t, err)
	requireNotFound(t, db.DeleteTask(ctx, loose.ID))
	_, err = db.UpdateTask(ctx, loose)
	requireNotFound(t, err)
}

func testDanglingGroupID(t *testing.T, ctx context.Context, db store.Store) {
	g, err := db.AddGroup(ctx, model.Group{Name: "g"})
	require.NoError(t, err)
	task, err := db.AddTask(ctx, model.Task{Title: "t", GroupID: null.IntFrom(int64(g.ID))})
	require.NoError(t, err)

	require.NoError(t, db.DeleteGroup(ctx, g.ID))
	got, err := db.TaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, int64(g.ID), got.GroupID.Int64)
}
