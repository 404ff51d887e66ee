package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/odyssey-erp/odyssey-rpc/internal/pwd"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

const userEntity = "user"

var userTable = Table{
	Name:    "users",
	Columns: []string{"id", "username", "pwd", "token_salt", "cid", "ctime", "mid", "mtime"},
}

// User is an account able to log in. Pwd and TokenSalt never leave the server.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Pwd       *string   `db:"pwd" json:"-"`
	TokenSalt string    `db:"token_salt" json:"-"`
	Cid       int64     `db:"cid" json:"cid"`
	Ctime     time.Time `db:"ctime" json:"ctime"`
	Mid       int64     `db:"mid" json:"mid"`
	Mtime     time.Time `db:"mtime" json:"mtime"`
}

// UserForCreate is the public payload of a new user. An empty PwdClear creates
// a user that cannot log in.
type UserForCreate struct {
	Username string
	PwdClear string
}

// UserForInsert is the stored form of a new user.
type UserForInsert struct {
	Username  string
	Pwd       *string
	TokenSalt string
}

// Fields implements Fielder.
func (u UserForInsert) Fields() []Field {
	return []Field{
		{Name: "username", Value: u.Username},
		{Name: "pwd", Value: u.Pwd},
		{Name: "token_salt", Value: u.TokenSalt},
	}
}

// UserForUpdate patches the credentials of a user.
type UserForUpdate struct {
	Pwd       *string
	TokenSalt *string
}

// Fields implements Fielder.
func (u UserForUpdate) Fields() []Field {
	var fields []Field
	if u.Pwd != nil {
		fields = append(fields, Field{Name: "pwd", Value: *u.Pwd})
	}
	if u.TokenSalt != nil {
		fields = append(fields, Field{Name: "token_salt", Value: *u.TokenSalt})
	}
	return fields
}

// UserStore is the persistence surface of users.
type UserStore interface {
	Store[User, UserForInsert, UserForUpdate]
	SelectByUsername(ctx context.Context, username string) (User, bool, error)
}

type pgUserStore struct {
	*pgStore[User, UserForInsert, UserForUpdate]
}

func (s pgUserStore) SelectByUsername(ctx context.Context, username string) (User, bool, error) {
	return s.selectWhere(ctx, "username", username)
}

// CanonicalUsername folds case and normalizes username so lookups do not depend
// on how the user typed it.
func CanonicalUsername(username string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(username)))
}

// UserBmc is the backend model controller of users.
type UserBmc struct {
	store UserStore
}

// Create stores a user with a fresh token salt and returns its id.
func (b *UserBmc) Create(ctx context.Context, c shared.Ctx, data UserForCreate) (int64, error) {
	username := CanonicalUsername(data.Username)
	if username == "" {
		return 0, ErrUsernameInvalid
	}
	insert := UserForInsert{Username: username, TokenSalt: uuid.NewString()}
	if data.PwdClear != "" {
		hashed, err := pwd.Hash(data.PwdClear)
		if err != nil {
			return 0, err
		}
		insert.Pwd = &hashed
	}
	return create(ctx, c, b.store, userEntity, insert)
}

// Get fetches a user by id.
func (b *UserBmc) Get(ctx context.Context, _ shared.Ctx, id int64) (User, error) {
	return get(ctx, b.store, userEntity, id)
}

// FirstByUsername fetches a user by canonical username.
func (b *UserBmc) FirstByUsername(ctx context.Context, _ shared.Ctx, username string) (User, error) {
	user, found, err := b.store.SelectByUsername(ctx, CanonicalUsername(username))
	if err != nil {
		return User{}, storeErr("first_by_username", userEntity, err)
	}
	if !found {
		return User{}, ErrUsernameNotFound
	}
	return user, nil
}

// UpdatePwd replaces the password of a user.
func (b *UserBmc) UpdatePwd(ctx context.Context, c shared.Ctx, id int64, clear string) error {
	hashed, err := pwd.Hash(clear)
	if err != nil {
		return err
	}
	return update(ctx, c, b.store, userEntity, id, UserForUpdate{Pwd: &hashed})
}

// RotateTokenSalt gives the user a new token salt, invalidating every token
// issued so far.
func (b *UserBmc) RotateTokenSalt(ctx context.Context, c shared.Ctx, id int64) error {
	salt := uuid.NewString()
	return update(ctx, c, b.store, userEntity, id, UserForUpdate{TokenSalt: &salt})
}
