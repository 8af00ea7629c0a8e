package mysql

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// ListUsers implements store.UserStore.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := db.sql.SelectContext(ctx, &users, `SELECT id, name, email FROM users ORDER BY id`)
	return users, errors.Wrap(MatchSentinelError(err), "error listing users")
}

// UserByID implements store.UserStore.
func (db *DB) UserByID(ctx context.Context, id int) (model.User, error) {
	var u model.User
	err := db.sql.GetContext(ctx, &u, `SELECT id, name, email FROM users WHERE id = ?`, id)
	return u, errors.Wrapf(MatchSentinelError(err), "error getting user %d", id)
}

// AddUser implements store.UserStore.
func (db *DB) AddUser(ctx context.Context, u model.User) (model.User, error) {
	id, err := lastInsertID(db.sql.NamedExecContext(ctx,
		`INSERT INTO users (name, email) VALUES (:name, :email)`, u))
	if err != nil {
		return model.User{}, errors.Wrapf(MatchSentinelError(err), "error creating user %s", u.Name)
	}
	u.ID = id
	return u, nil
}

// UpdateUser implements store.UserStore.
func (db *DB) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	err := mustHaveAffectedRows(db.sql.NamedExecContext(ctx,
		`UPDATE users SET name = :name, email = :email WHERE id = :id`, u))
	if err != nil {
		return model.User{}, errors.Wrapf(MatchSentinelError(err), "error updating user %d", u.ID)
	}
	return u, nil
}

// DeleteUser implements store.UserStore.
func (db *DB) DeleteUser(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.sql.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
	return errors.Wrapf(MatchSentinelError(err), "error deleting user %d", id)
}
