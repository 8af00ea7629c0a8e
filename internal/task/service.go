// Package task implements the task service: tasks, their optional owning group and completion.
package task

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// Groups looks up groups by id, returning api.ErrNotFound for missing ones.
type Groups interface {
	Get(ctx context.Context, id int) (model.Group, error)
}

// Service describes a task manager.
type Service struct {
	db     store.Store
	groups Groups
}

// NewService creates a new task service.
func NewService(db store.Store, groups Groups) *Service {
	return &Service{db: db, groups: groups}
}

func notFound(err error, id int) error {
	if errors.Is(err, store.ErrNotFound) {
		return api.AsErrNotFound("task %d", id)
	}
	return err
}

// ListAll returns every task, annotated with its group when the group still exists.
func (s *Service) ListAll(ctx context.Context) ([]model.TaskView, error) {
	tasks, err := s.db.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.db.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Group, len(groups))
	for _, g := range groups {
		byID[int64(g.ID)] = g
	}

	views := make([]model.TaskView, 0, len(tasks))
	for _, t := range tasks {
		v := model.TaskView{Task: t}
		if g, ok := byID[t.GroupID.Int64]; ok && t.GroupID.Valid {
			v.Group = g.Ref()
		}
		views = append(views, v)
	}
	return views, nil
}

// ListByGroup returns the tasks owned by the group.
func (s *Service) ListByGroup(ctx context.Context, groupID int) ([]model.Task, error) {
	if _, err := s.groups.Get(ctx, groupID); err != nil {
		return nil, err
	}
	return s.db.TasksByGroup(ctx, groupID)
}

// Get returns the task or an api.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (model.Task, error) {
	t, err := s.db.TaskByID(ctx, id)
	return t, notFound(err, id)
}

// Create adds an incomplete task, owned by the group when groupID is valid. Nothing is
// written if the group does not exist.
func (s *Service) Create(ctx context.Context, groupID null.Int, p model.CreateTask) (model.Task, error) {
	if err := p.Validate(); err != nil {
		return model.Task{}, api.AsValidationError("%s", err)
	}
	if groupID.Valid {
		if _, err := s.groups.Get(ctx, int(groupID.Int64)); err != nil {
			return model.Task{}, err
		}
	}
	return s.db.AddTask(ctx, p.NewTask(groupID))
}

// Update applies the supplied fields of the patch. An empty patch returns the task unchanged.
func (s *Service) Update(ctx context.Context, id int, p model.TaskPatch) (model.Task, error) {
	if err := p.Validate(); err != nil {
		return model.Task{}, api.AsValidationError("%s", err)
	}
	t, err := s.Get(ctx, id)
	if err != nil || p.Empty() {
		return t, err
	}
	t, err = s.db.UpdateTask(ctx, p.Apply(t))
	return t, notFound(err, id)
}

// SetComplete marks the task completed. Completing a completed task is a no-op.
func (s *Service) SetComplete(ctx context.Context, id int) (model.Task, error) {
	return s.Update(ctx, id, model.TaskPatch{Completed: null.BoolFrom(true)})
}

// Delete removes the task.
func (s *Service) Delete(ctx context.Context, id int) error {
	return notFound(s.db.DeleteTask(ctx, id), id)
}
