package user

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrRegNoExists        = errors.New("an account with this registration number already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// AuthError is returned by Login when the provider rejects the credentials.
type AuthError struct {
	RegNo string
	Err   error
}

func (err *AuthError) Error() string {
	return "authentication failed for " + err.RegNo + ": " + err.Err.Error()
}

func (err *AuthError) Unwrap() error { return err.Err }

// IsAuthError reports whether err is (or wraps) an *AuthError.
func IsAuthError(err error) bool {
	var aErr *AuthError
	return errors.As(err, &aErr)
}
