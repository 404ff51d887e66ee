package rpc

import (
	"context"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
)

func taskMethods() []method {
	return []method{
		withParams("create_task", createTask),
		withoutParams("list_task", listTask),
		withParams("update_task", updateTask),
		withParams("delete_task", deleteTask),
	}
}

func createTask(ctx context.Context, d Deps, params ParamsForCreate[model.TaskForCreate]) (model.Task, error) {
	id, err := d.Model.Tasks().Create(ctx, d.Ctx, params.Data)
	if err != nil {
		return model.Task{}, err
	}
	return d.Model.Tasks().Get(ctx, d.Ctx, id)
}

func listTask(ctx context.Context, d Deps) ([]model.Task, error) {
	return d.Model.Tasks().List(ctx, d.Ctx)
}

func updateTask(ctx context.Context, d Deps, params ParamsForUpdate[model.TaskForUpdate]) (model.Task, error) {
	if err := d.Model.Tasks().Update(ctx, d.Ctx, params.ID, params.Data); err != nil {
		return model.Task{}, err
	}
	return d.Model.Tasks().Get(ctx, d.Ctx, params.ID)
}

// deleteTask returns the task as it was before deletion.
func deleteTask(ctx context.Context, d Deps, params ParamsIded) (model.Task, error) {
	task, err := d.Model.Tasks().Get(ctx, d.Ctx, params.ID)
	if err != nil {
		return model.Task{}, err
	}
	if err := d.Model.Tasks().Delete(ctx, d.Ctx, params.ID); err != nil {
		return model.Task{}, err
	}
	return task, nil
}
