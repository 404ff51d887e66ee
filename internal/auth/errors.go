package auth

import "fmt"

// CtxExtReason says why a request carries no usable Ctx.
type CtxExtReason string

const (
	ReasonTokenNotInCookie     CtxExtReason = "TokenNotInCookie"
	ReasonTokenWrongFormat     CtxExtReason = "TokenWrongFormat"
	ReasonUserNotFound         CtxExtReason = "UserNotFound"
	ReasonModelAccessError     CtxExtReason = "ModelAccessError"
	ReasonFailValidate         CtxExtReason = "FailValidate"
	ReasonCannotSetTokenCookie CtxExtReason = "CannotSetTokenCookie"
	ReasonCtxCreateFail        CtxExtReason = "CtxCreateFail"
	ReasonCtxNotInRequest      CtxExtReason = "CtxNotInRequest"
)

// CtxExtError reports a failed context resolution. Err holds the underlying
// cause when there is one.
type CtxExtError struct {
	Reason CtxExtReason
	Err    error
}

func (e *CtxExtError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: ctx ext %s: %v", e.Reason, e.Err)
	}
	return "auth: ctx ext " + string(e.Reason)
}

func (e *CtxExtError) Unwrap() error {
	return e.Err
}

// Kind identifies the error in server-side records.
func (e *CtxExtError) Kind() string {
	return "CtxExt"
}

// LogData is the structured payload of the request log line.
func (e *CtxExtError) LogData() any {
	return map[string]string{"reason": string(e.Reason)}
}

// LoginReason says why a login attempt was refused.
type LoginReason string

const (
	ReasonUsernameNotFound LoginReason = "UsernameNotFound"
	ReasonUserHasNoPwd     LoginReason = "UserHasNoPwd"
	ReasonPwdNotMatching   LoginReason = "PwdNotMatching"
	ReasonThrottled        LoginReason = "Throttled"
)

// LoginError is a refused login. Clients only ever see LOGIN_FAIL.
type LoginError struct {
	Reason LoginReason
	UserID int64
}

func (e *LoginError) Error() string {
	if e.UserID != 0 {
		return fmt.Sprintf("auth: login fail %s (user %d)", e.Reason, e.UserID)
	}
	return "auth: login fail " + string(e.Reason)
}

// Kind identifies the error in server-side records.
func (e *LoginError) Kind() string {
	return "LoginFail"
}

// LogData is the structured payload of the request log line.
func (e *LoginError) LogData() any {
	data := map[string]any{"reason": string(e.Reason)}
	if e.UserID != 0 {
		data["user_id"] = e.UserID
	}
	return data
}
