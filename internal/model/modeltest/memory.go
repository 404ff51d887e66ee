// Package modeltest provides in-memory stores so handlers can be exercised
// without postgres.
package modeltest

import (
	"context"
	"sort"
	"sync"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
)

// NewManager returns a ModelManager backed by fresh in-memory stores.
func NewManager() (*model.ModelManager, *Stores) {
	stores := &Stores{Tasks: NewTaskStore(), Users: NewUserStore()}
	return model.NewWithStores(model.Stores{Tasks: stores.Tasks, Users: stores.Users}), stores
}

// Stores exposes the in-memory stores behind a manager built by NewManager.
type Stores struct {
	Tasks *TaskStore
	Users *UserStore
}

// table is the shared in-memory row set. Ids start at 1000 like the dev seed.
type table[E any] struct {
	mu   sync.Mutex
	next int64
	rows map[int64]E
	// Err, when set, is returned by every operation.
	Err error
}

func newTable[E any]() *table[E] {
	return &table[E]{next: 1000, rows: make(map[int64]E)}
}

func (t *table[E]) insert(build func(id int64) E) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}
	t.next++
	t.rows[t.next] = build(t.next)
	return t.next, nil
}

func (t *table[E]) get(id int64) (E, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		var zero E
		return zero, false, t.Err
	}
	e, ok := t.rows[id]
	return e, ok, nil
}

func (t *table[E]) all() ([]E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *table[E]) patch(id int64, fn func(*E)) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}
	e, ok := t.rows[id]
	if !ok {
		return 0, nil
	}
	fn(&e)
	t.rows[id] = e
	return 1, nil
}

func (t *table[E]) delete(id int64) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return 0, t.Err
	}
	if _, ok := t.rows[id]; !ok {
		return 0, nil
	}
	delete(t.rows, id)
	return 1, nil
}

func (t *table[E]) find(match func(E) bool) (E, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero E
	if t.Err != nil {
		return zero, false, t.Err
	}
	for _, e := range t.rows {
		if match(e) {
			return e, true, nil
		}
	}
	return zero, false, nil
}

// SetErr makes every following operation fail with err. Pass nil to recover.
func (t *table[E]) SetErr(err error) {
	t.mu.Lock()
	t.Err = err
	t.mu.Unlock()
}

// TaskStore is an in-memory model.TaskStore.
type TaskStore struct {
	*table[model.Task]
}

// NewTaskStore returns an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{newTable[model.Task]()}
}

func (s *TaskStore) Insert(_ context.Context, stamp model.Stamp, data model.TaskForCreate) (int64, error) {
	return s.insert(func(id int64) model.Task {
		return model.Task{
			ID:    id,
			Title: data.Title,
			Cid:   stamp.UserID,
			Ctime: stamp.Time,
			Mid:   stamp.UserID,
			Mtime: stamp.Time,
		}
	})
}

func (s *TaskStore) Select(_ context.Context, id int64) (model.Task, bool, error) {
	return s.get(id)
}

func (s *TaskStore) SelectAll(context.Context) ([]model.Task, error) {
	return s.all()
}

func (s *TaskStore) Update(_ context.Context, stamp model.Stamp, id int64, data model.TaskForUpdate) (int64, error) {
	return s.patch(id, func(t *model.Task) {
		if data.Title != nil {
			t.Title = *data.Title
		}
		if data.Done != nil {
			t.Done = *data.Done
		}
		t.Mid = stamp.UserID
		t.Mtime = stamp.Time
	})
}

func (s *TaskStore) Delete(_ context.Context, id int64) (int64, error) {
	return s.delete(id)
}

// UserStore is an in-memory model.UserStore.
type UserStore struct {
	*table[model.User]
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{newTable[model.User]()}
}

func (s *UserStore) Insert(_ context.Context, stamp model.Stamp, data model.UserForInsert) (int64, error) {
	if _, taken, err := s.SelectByUsername(context.Background(), data.Username); err != nil {
		return 0, err
	} else if taken {
		return 0, model.ErrUsernameTaken
	}
	return s.insert(func(id int64) model.User {
		return model.User{
			ID:        id,
			Username:  data.Username,
			Pwd:       data.Pwd,
			TokenSalt: data.TokenSalt,
			Cid:       stamp.UserID,
			Ctime:     stamp.Time,
			Mid:       stamp.UserID,
			Mtime:     stamp.Time,
		}
	})
}

func (s *UserStore) Select(_ context.Context, id int64) (model.User, bool, error) {
	return s.get(id)
}

func (s *UserStore) SelectAll(context.Context) ([]model.User, error) {
	return s.all()
}

func (s *UserStore) SelectByUsername(_ context.Context, username string) (model.User, bool, error) {
	return s.find(func(u model.User) bool { return u.Username == username })
}

func (s *UserStore) Update(_ context.Context, stamp model.Stamp, id int64, data model.UserForUpdate) (int64, error) {
	return s.patch(id, func(u *model.User) {
		if data.Pwd != nil {
			hashed := *data.Pwd
			u.Pwd = &hashed
		}
		if data.TokenSalt != nil {
			u.TokenSalt = *data.TokenSalt
		}
		u.Mid = stamp.UserID
		u.Mtime = stamp.Time
	})
}

func (s *UserStore) Delete(_ context.Context, id int64) (int64, error) {
	return s.delete(id)
}

var (
	_ model.TaskStore = (*TaskStore)(nil)
	_ model.UserStore = (*UserStore)(nil)
)
