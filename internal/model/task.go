package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

const taskEntity = "task"

// ErrTaskTitleRequired is returned when a task would be stored without a title.
var ErrTaskTitleRequired = errors.New("model: task title required")

var taskTable = Table{
	Name:    "task",
	Columns: []string{"id", "title", "done", "cid", "ctime", "mid", "mtime"},
}

// Task is a single todo item.
type Task struct {
	ID    int64     `db:"id" json:"id"`
	Title string    `db:"title" json:"title"`
	Done  bool      `db:"done" json:"done"`
	Cid   int64     `db:"cid" json:"cid"`
	Ctime time.Time `db:"ctime" json:"ctime"`
	Mid   int64     `db:"mid" json:"mid"`
	Mtime time.Time `db:"mtime" json:"mtime"`
}

// TaskForCreate is the payload of a new task.
type TaskForCreate struct {
	Title string `json:"title" validate:"required"`
}

// Fields implements Fielder.
func (t TaskForCreate) Fields() []Field {
	return []Field{{Name: "title", Value: t.Title}}
}

// TaskForUpdate patches a task; nil fields are left untouched.
type TaskForUpdate struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Done  *bool   `json:"done"`
}

// Fields implements Fielder.
func (t TaskForUpdate) Fields() []Field {
	var fields []Field
	if t.Title != nil {
		fields = append(fields, Field{Name: "title", Value: *t.Title})
	}
	if t.Done != nil {
		fields = append(fields, Field{Name: "done", Value: *t.Done})
	}
	return fields
}

// TaskStore is the persistence surface of tasks.
type TaskStore = Store[Task, TaskForCreate, TaskForUpdate]

// TaskBmc is the backend model controller of tasks.
type TaskBmc struct {
	store TaskStore
}

// Create stores a task and returns its id.
func (b *TaskBmc) Create(ctx context.Context, c shared.Ctx, data TaskForCreate) (int64, error) {
	if strings.TrimSpace(data.Title) == "" {
		return 0, ErrTaskTitleRequired
	}
	return create(ctx, c, b.store, taskEntity, data)
}

// Get fetches a task by id.
func (b *TaskBmc) Get(ctx context.Context, _ shared.Ctx, id int64) (Task, error) {
	return get(ctx, b.store, taskEntity, id)
}

// List returns all tasks ordered by id.
func (b *TaskBmc) List(ctx context.Context, _ shared.Ctx) ([]Task, error) {
	return list(ctx, b.store, taskEntity)
}

// Update patches a task.
func (b *TaskBmc) Update(ctx context.Context, c shared.Ctx, id int64, data TaskForUpdate) error {
	if data.Title != nil && strings.TrimSpace(*data.Title) == "" {
		return ErrTaskTitleRequired
	}
	return update(ctx, c, b.store, taskEntity, id, data)
}

// Delete removes a task. Deleting a missing task is an EntityNotFoundError.
func (b *TaskBmc) Delete(ctx context.Context, _ shared.Ctx, id int64) error {
	return remove(ctx, b.store, taskEntity, id)
}
