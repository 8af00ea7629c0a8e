package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Task corresponds to a row in the "tasks" table. GroupID may reference a group that has
// since been deleted.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          int         `bun:"id,pk,autoincrement"             db:"id"          json:"id"`
	Title       string      `bun:"title,notnull"                   db:"title"       json:"title"`
	Description null.String `bun:"description,type:text"           db:"description" json:"description"`
	Completed   bool        `bun:"completed,notnull,default:false" db:"completed"   json:"completed"`
	GroupID     null.Int    `bun:"group_id,type:bigint"            db:"group_id"    json:"groupId"`
}

// TaskView is a task annotated with its owning group, when that group still exists.
type TaskView struct {
	Task
	Group *GroupRef `json:"group,omitempty"`
}

// CreateTask is the payload for creating a new task.
type CreateTask struct {
	Title       string      `json:"title"`
	Description null.String `json:"description"`
}

// Validate checks that the required fields are present.
func (c CreateTask) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title must be set")
	}
	return nil
}

// NewTask builds an incomplete task from the payload. An empty description is stored as null.
func (c CreateTask) NewTask(groupID null.Int) Task {
	return Task{
		Title:       c.Title,
		Description: null.NewString(c.Description.String, c.Description.Valid && c.Description.String != ""),
		Completed:   false,
		GroupID:     groupID,
	}
}

// TaskPatch is a partial update of a task. Only valid fields are applied.
type TaskPatch struct {
	Title       null.String `json:"title"`
	Description null.String `json:"description"`
	Completed   null.Bool   `json:"completed"`
}

// Empty reports whether the patch carries no fields.
func (p TaskPatch) Empty() bool {
	return !p.Title.Valid && !p.Description.Valid && !p.Completed.Valid
}

// Validate rejects a supplied blank title.
func (p TaskPatch) Validate() error {
	if p.Title.Valid && strings.TrimSpace(p.Title.String) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

// Apply returns a copy of t with the supplied fields replaced.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title.Valid {
		t.Title = p.Title.String
	}
	if p.Description.Valid {
		t.Description = p.Description
	}
	if p.Completed.Valid {
		t.Completed = p.Completed.Bool
	}
	return t
}
