// Package model is the persistence layer: entity types, their backend model
// controllers, and the stores they run on.
package model

// Stores groups the per-entity stores a ModelManager runs on.
type Stores struct {
	Tasks TaskStore
	Users UserStore
}

// ModelManager gives handlers access to the backend model controllers. It is
// safe for concurrent use when its stores are.
type ModelManager struct {
	tasks *TaskBmc
	users *UserBmc
}

// New builds a ModelManager on a postgres pool or transaction.
func New(db DB) *ModelManager {
	return NewWithStores(Stores{
		Tasks: newPGStore[Task, TaskForCreate, TaskForUpdate](db, taskTable),
		Users: pgUserStore{newPGStore[User, UserForInsert, UserForUpdate](db, userTable)},
	})
}

// NewWithStores builds a ModelManager on explicit stores.
func NewWithStores(stores Stores) *ModelManager {
	return &ModelManager{
		tasks: &TaskBmc{store: stores.Tasks},
		users: &UserBmc{store: stores.Users},
	}
}

// Tasks returns the task controller.
func (mm *ModelManager) Tasks() *TaskBmc {
	return mm.tasks
}

// Users returns the user controller.
func (mm *ModelManager) Users() *UserBmc {
	return mm.users
}
