package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// ListUsers implements store.UserStore.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := db.bun.NewSelect().Model(&users).Order("id").Scan(ctx)
	return users, errors.Wrap(MatchSentinelError(err), "error listing users")
}

// UserByID implements store.UserStore.
func (db *DB) UserByID(ctx context.Context, id int) (model.User, error) {
	var u model.User
	err := db.bun.NewSelect().Model(&u).Where("id = ?", id).Scan(ctx)
	return u, errors.Wrapf(MatchSentinelError(err), "error getting user %d", id)
}

// AddUser implements store.UserStore.
func (db *DB) AddUser(ctx context.Context, u model.User) (model.User, error) {
	_, err := db.bun.NewInsert().Model(&u).Exec(ctx)
	return u, errors.Wrapf(MatchSentinelError(err), "error creating user %s", u.Name)
}

// UpdateUser implements store.UserStore.
func (db *DB) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	err := mustHaveAffectedRows(db.bun.NewUpdate().Model(&u).WherePK().Exec(ctx))
	return u, errors.Wrapf(MatchSentinelError(err), "error updating user %d", u.ID)
}

// DeleteUser implements store.UserStore.
func (db *DB) DeleteUser(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.bun.NewDelete().Model((*model.User)(nil)).
		Where("id = ?", id).Exec(ctx))
	return errors.Wrapf(MatchSentinelError(err), "error deleting user %d", id)
}
