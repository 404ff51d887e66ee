package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/pwd"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
	"github.com/odyssey-erp/odyssey-rpc/internal/token"
)

// dummyHash is verified against when there is no stored hash, so every failed
// login pays the bcrypt cost.
var dummyHash = sync.OnceValues(func() (string, error) {
	return pwd.Hash("odyssey-no-such-user")
})

// Service wraps the login rules.
type Service struct {
	mm       *model.ModelManager
	auth     *token.Authenticator
	throttle *Throttle
	verify   func(hash, clear string) error
}

// NewService constructs a Service. throttle may be nil.
func NewService(mm *model.ModelManager, auth *token.Authenticator, throttle *Throttle) *Service {
	return &Service{mm: mm, auth: auth, throttle: throttle, verify: pwd.Verify}
}

// Login checks the credentials and issues a token for the user.
func (s *Service) Login(ctx context.Context, username, clear string) (token.Token, error) {
	canonical := model.CanonicalUsername(username)
	if s.throttle.Locked(ctx, canonical) {
		return token.Token{}, &LoginError{Reason: ReasonThrottled}
	}

	user, err := s.mm.Users().FirstByUsername(ctx, shared.RootCtx(), canonical)
	if err != nil {
		if errors.Is(err, model.ErrUsernameNotFound) {
			s.verifyDummy(clear)
			s.throttle.Fail(ctx, canonical)
			return token.Token{}, &LoginError{Reason: ReasonUsernameNotFound}
		}
		return token.Token{}, err
	}

	if user.Pwd == nil {
		s.verifyDummy(clear)
		s.throttle.Fail(ctx, canonical)
		return token.Token{}, &LoginError{Reason: ReasonUserHasNoPwd, UserID: user.ID}
	}
	if err := s.verify(*user.Pwd, clear); err != nil {
		if errors.Is(err, pwd.ErrNotMatching) {
			s.throttle.Fail(ctx, canonical)
			return token.Token{}, &LoginError{Reason: ReasonPwdNotMatching, UserID: user.ID}
		}
		return token.Token{}, err
	}

	s.throttle.Reset(ctx, canonical)
	return s.auth.GenerateToken(user.Username, user.TokenSalt)
}

func (s *Service) verifyDummy(clear string) {
	hash, err := dummyHash()
	if err != nil {
		return
	}
	_ = s.verify(hash, clear)
}
