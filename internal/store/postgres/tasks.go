package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// ListTasks implements store.TaskStore.
func (db *DB) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := db.bun.NewSelect().Model(&tasks).Order("id").Scan(ctx)
	return tasks, errors.Wrap(MatchSentinelError(err), "error listing tasks")
}

// TasksByGroup implements store.TaskStore.
func (db *DB) TasksByGroup(ctx context.Context, groupID int) ([]model.Task, error) {
	tasks := []model.Task{}
	err := db.bun.NewSelect().Model(&tasks).Where("group_id = ?", groupID).Order("id").Scan(ctx)
	return tasks, errors.Wrapf(MatchSentinelError(err), "error listing tasks of group %d", groupID)
}

// TaskByID implements store.TaskStore.
func (db *DB) TaskByID(ctx context.Context, id int) (model.Task, error) {
	var t model.Task
	err := db.bun.NewSelect().Model(&t).Where("id = ?", id).Scan(ctx)
	return t, errors.Wrapf(MatchSentinelError(err), "error getting task %d", id)
}

// AddTask implements store.TaskStore.
func (db *DB) AddTask(ctx context.Context, t model.Task) (model.Task, error) {
	_, err := db.bun.NewInsert().Model(&t).Exec(ctx)
	return t, errors.Wrapf(MatchSentinelError(err), "error creating task %s", t.Title)
}

// UpdateTask implements store.TaskStore.
func (db *DB) UpdateTask(ctx context.Context, t model.Task) (model.Task, error) {
	err := mustHaveAffectedRows(db.bun.NewUpdate().Model(&t).WherePK().Exec(ctx))
	return t, errors.Wrapf(MatchSentinelError(err), "error updating task %d", t.ID)
}

// DeleteTask implements store.TaskStore.
func (db *DB) DeleteTask(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.bun.NewDelete().Model((*model.Task)(nil)).
		Where("id = ?", id).Exec(ctx))
	return errors.Wrapf(MatchSentinelError(err), "error deleting task %d", id)
}
