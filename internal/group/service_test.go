package group

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store/memstore"
	"github.com/mpeshwe/TaskManager/internal/user"
)

type fixture struct {
	db     *memstore.DB
	users  *user.Service
	groups *Service
}

func newFixture() fixture {
	db := memstore.New()
	users := user.NewService(db)
	return fixture{db: db, users: users, groups: NewService(db, users)}
}

func (f fixture) user(t *testing.T, name string) model.User {
	u, err := f.users.Create(context.Background(), model.CreateUser{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return u
}

func (f fixture) group(t *testing.T, name string) model.Group {
	g, err := f.groups.Create(context.Background(), model.CreateGroup{Name: name})
	require.NoError(t, err)
	return g
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	g, err := f.groups.Create(ctx, model.CreateGroup{Name: "ops", Description: null.StringFrom("on call")})
	require.NoError(t, err)
	require.NotZero(t, g.ID)

	got, err := f.groups.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, g, got)

	_, err = f.groups.Create(ctx, model.CreateGroup{Name: ""})
	require.True(t, errors.Is(err, api.ErrInvalid), err)

	dup := f.group(t, "ops")
	groups, err := f.groups.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Group{g, dup}, groups)

	require.NoError(t, f.groups.Delete(ctx, g.ID))
	_, err = f.groups.Get(ctx, g.ID)
	require.True(t, errors.Is(err, api.ErrNotFound), err)
	err = f.groups.Delete(ctx, g.ID)
	require.True(t, errors.Is(err, api.ErrNotFound), err)
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "alice")
	g := f.group(t, "ops")

	m, err := f.groups.AddMember(ctx, g.ID, model.AddMember{UserID: u.ID})
	require.NoError(t, err)
	require.Equal(t, model.Membership{UserID: u.ID, GroupID: g.ID}, m)

	_, err = f.groups.AddMember(ctx, g.ID, model.AddMember{UserID: u.ID})
	require.True(t, errors.Is(err, api.ErrConflict), err)

	_, err = f.groups.AddMember(ctx, g.ID+1, model.AddMember{UserID: u.ID})
	require.True(t, errors.Is(err, api.ErrNotFound), err)
	require.Contains(t, err.Error(), "group")

	_, err = f.groups.AddMember(ctx, g.ID, model.AddMember{UserID: u.ID + 1})
	require.True(t, errors.Is(err, api.ErrNotFound), err)
	require.Contains(t, err.Error(), "user")

	_, err = f.groups.AddMember(ctx, g.ID, model.AddMember{})
	require.True(t, errors.Is(err, api.ErrInvalid), err)

	members, err := f.groups.Members(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, u, members[0].User)
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "alice")
	g := f.group(t, "ops")
	_, err := f.groups.AddMember(ctx, g.ID, model.AddMember{UserID: u.ID})
	require.NoError(t, err)

	require.NoError(t, f.groups.RemoveMember(ctx, g.ID, u.ID))
	members, err := f.groups.Members(ctx, g.ID)
	require.NoError(t, err)
	require.Empty(t, members)

	err = f.groups.RemoveMember(ctx, g.ID, u.ID)
	require.True(t, errors.Is(err, api.ErrNotFound), err)
	require.Contains(t, err.Error(), "not a member")

	err = f.groups.RemoveMember(ctx, g.ID, u.ID+1)
	require.True(t, errors.Is(err, api.ErrNotFound), err)

	_, err = f.groups.Members(ctx, g.ID+1)
	require.True(t, errors.Is(err, api.ErrNotFound), err)
}

func TestDeleteDropsMemberships(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "alice")
	g := f.group(t, "ops")
	_, err := f.groups.AddMember(ctx, g.ID, model.AddMember{UserID: u.ID})
	require.NoError(t, err)

	require.NoError(t, f.groups.Delete(ctx, g.ID))
	groups, err := f.users.Groups(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, groups)
}
