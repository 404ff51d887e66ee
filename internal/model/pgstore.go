package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool and pgx.Tx used by the postgres stores.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Field is one column assignment of an insert or update.
type Field struct {
	Name  string
	Value any
}

// Fielder lists the column assignments of a create or update payload.
type Fielder interface {
	Fields() []Field
}

// Table describes how an entity maps to its table. Columns must match the
// db tags of the entity struct.
type Table struct {
	Name    string
	Columns []string
}

// pgStore implements Store for any entity table.
type pgStore[E any, C, U Fielder] struct {
	db    DB
	table Table
}

func newPGStore[E any, C, U Fielder](db DB, table Table) *pgStore[E, C, U] {
	return &pgStore[E, C, U]{db: db, table: table}
}

func (s *pgStore[E, C, U]) Insert(ctx context.Context, stamp Stamp, data C) (int64, error) {
	fields := append(data.Fields(),
		Field{Name: "cid", Value: stamp.UserID},
		Field{Name: "ctime", Value: stamp.Time},
		Field{Name: "mid", Value: stamp.UserID},
		Field{Name: "mtime", Value: stamp.Time},
	)
	names := make([]string, len(fields))
	marks := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		names[i] = pgx.Identifier{f.Name}.Sanitize()
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = f.Value
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		s.tableName(), strings.Join(names, ", "), strings.Join(marks, ", "))

	var id int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (s *pgStore[E, C, U]) Select(ctx context.Context, id int64) (E, bool, error) {
	return s.selectWhere(ctx, "id", id)
}

func (s *pgStore[E, C, U]) SelectAll(ctx context.Context) ([]E, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", s.columns(), s.tableName())
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[E])
}

func (s *pgStore[E, C, U]) Update(ctx context.Context, stamp Stamp, id int64, data U) (int64, error) {
	fields := append(data.Fields(),
		Field{Name: "mid", Value: stamp.UserID},
		Field{Name: "mtime", Value: stamp.Time},
	)
	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{f.Name}.Sanitize(), i+1)
		args = append(args, f.Value)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", s.tableName(), strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func (s *pgStore[E, C, U]) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := s.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName()), id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgStore[E, C, U]) selectWhere(ctx context.Context, column string, value any) (E, bool, error) {
	var zero E
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		s.columns(), s.tableName(), pgx.Identifier{column}.Sanitize())
	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		return zero, false, err
	}
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[E])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return e, true, nil
}

func (s *pgStore[E, C, U]) tableName() string {
	return pgx.Identifier{s.table.Name}.Sanitize()
}

func (s *pgStore[E, C, U]) columns() string {
	cols := make([]string, len(s.table.Columns))
	for i, c := range s.table.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(cols, ", ")
}

// translate maps constraint violations onto model errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_username_key" {
		return ErrUsernameTaken
	}
	return err
}
