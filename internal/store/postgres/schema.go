package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// Migrate creates any missing tables. tasks.group_id carries no foreign key so that deleting a
// group leaves its tasks behind.
func (db *DB) Migrate(ctx context.Context) error {
	tables := []struct {
		name  string
		query func() error
	}{
		{"users", func() error {
			_, err := db.bun.NewCreateTable().Model((*model.User)(nil)).IfNotExists().Exec(ctx)
			return err
		}},
		{"groups", func() error {
			_, err := db.bun.NewCreateTable().Model((*model.Group)(nil)).IfNotExists().Exec(ctx)
			return err
		}},
		{"memberships", func() error {
			_, err := db.bun.NewCreateTable().Model((*model.Membership)(nil)).IfNotExists().
				ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
				ForeignKey(`("group_id") REFERENCES "groups" ("id") ON DELETE CASCADE`).
				Exec(ctx)
			return err
		}},
		{"tasks", func() error {
			_, err := db.bun.NewCreateTable().Model((*model.Task)(nil)).IfNotExists().Exec(ctx)
			if err != nil {
				return err
			}
			_, err = db.bun.NewCreateIndex().Model((*model.Task)(nil)).IfNotExists().
				Index("idx_tasks_group_id").Column("group_id").Exec(ctx)
			return err
		}},
	}
	for _, t := range tables {
		if err := t.query(); err != nil {
			return errors.Wrapf(err, "error creating table %s", t.name)
		}
	}
	return nil
}
