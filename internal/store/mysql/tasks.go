package mysql

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

const taskColumns = `id, title, description, completed, group_id`

// ListTasks implements store.TaskStore.
func (db *DB) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := db.sql.SelectContext(ctx, &tasks, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	return tasks, errors.Wrap(MatchSentinelError(err), "error listing tasks")
}

// TasksByGroup implements store.TaskStore.
func (db *DB) TasksByGroup(ctx context.Context, groupID int) ([]model.Task, error) {
	tasks := []model.Task{}
	err := db.sql.SelectContext(ctx, &tasks,
		`SELECT `+taskColumns+` FROM tasks WHERE group_id = ? ORDER BY id`, groupID)
	return tasks, errors.Wrapf(MatchSentinelError(err), "error listing tasks of group %d", groupID)
}

// TaskByID implements store.TaskStore.
func (db *DB) TaskByID(ctx context.Context, id int) (model.Task, error) {
	var t model.Task
	err := db.sql.GetContext(ctx, &t, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return t, errors.Wrapf(MatchSentinelError(err), "error getting task %d", id)
}

// AddTask implements store.TaskStore.
func (db *DB) AddTask(ctx context.Context, t model.Task) (model.Task, error) {
	id, err := lastInsertID(db.sql.NamedExecContext(ctx, `
		INSERT INTO tasks (title, description, completed, group_id)
		VALUES (:title, :description, :completed, :group_id)`, t))
	if err != nil {
		return model.Task{}, errors.Wrapf(MatchSentinelError(err), "error creating task %s", t.Title)
	}
	t.ID = id
	return t, nil
}

// UpdateTask implements store.TaskStore.
func (db *DB) UpdateTask(ctx context.Context, t model.Task) (model.Task, error) {
	err := mustHaveAffectedRows(db.sql.NamedExecContext(ctx, `
		UPDATE tasks
		SET title = :title, description = :description, completed = :completed, group_id = :group_id
		WHERE id = :id`, t))
	if err != nil {
		return model.Task{}, errors.Wrapf(MatchSentinelError(err), "error updating task %d", t.ID)
	}
	return t, nil
}

// DeleteTask implements store.TaskStore.
func (db *DB) DeleteTask(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.sql.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id))
	return errors.Wrapf(MatchSentinelError(err), "error deleting task %d", id)
}
