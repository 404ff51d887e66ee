package model

import (
	"context"
	"time"

	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

// Stamp carries the audit columns written with every insert and update.
type Stamp struct {
	UserID int64
	Time   time.Time
}

func stampOf(c shared.Ctx) Stamp {
	return Stamp{UserID: c.UserID(), Time: time.Now().UTC()}
}

// Store is the persistence surface of one entity type E, created from C and
// patched with U. Implementations report row counts and let the helpers below
// decide what a missing row means.
type Store[E, C, U any] interface {
	Insert(ctx context.Context, stamp Stamp, data C) (int64, error)
	Select(ctx context.Context, id int64) (E, bool, error)
	SelectAll(ctx context.Context) ([]E, error)
	Update(ctx context.Context, stamp Stamp, id int64, data U) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// The helpers below are the shared controller logic every entity controller
// delegates to.

func create[E, C, U any](ctx context.Context, c shared.Ctx, s Store[E, C, U], entity string, data C) (int64, error) {
	id, err := s.Insert(ctx, stampOf(c), data)
	if err != nil {
		return 0, storeErr("create", entity, err)
	}
	return id, nil
}

func get[E, C, U any](ctx context.Context, s Store[E, C, U], entity string, id int64) (E, error) {
	e, found, err := s.Select(ctx, id)
	if err != nil {
		var zero E
		return zero, storeErr("get", entity, err)
	}
	if !found {
		var zero E
		return zero, &EntityNotFoundError{Entity: entity, ID: id}
	}
	return e, nil
}

func list[E, C, U any](ctx context.Context, s Store[E, C, U], entity string) ([]E, error) {
	items, err := s.SelectAll(ctx)
	if err != nil {
		return nil, storeErr("list", entity, err)
	}
	if items == nil {
		items = []E{}
	}
	return items, nil
}

func update[E, C, U any](ctx context.Context, c shared.Ctx, s Store[E, C, U], entity string, id int64, data U) error {
	n, err := s.Update(ctx, stampOf(c), id, data)
	if err != nil {
		return storeErr("update", entity, err)
	}
	if n == 0 {
		return &EntityNotFoundError{Entity: entity, ID: id}
	}
	return nil
}

func remove[E, C, U any](ctx context.Context, s Store[E, C, U], entity string, id int64) error {
	n, err := s.Delete(ctx, id)
	if err != nil {
		return storeErr("delete", entity, err)
	}
	if n == 0 {
		return &EntityNotFoundError{Entity: entity, ID: id}
	}
	return nil
}
