package user

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core"
)

// CurrentUserKey is where the device session keeps the logged in User.
const CurrentUserKey = "currentUser"

type (
	// Provider checks credentials against some identity backend.
	Provider interface {
		Authenticate(ctx context.Context, creds Credentials) (User, error)
	}

	// AuthSession is the "who is logged in" boundary the views depend on.
	AuthSession interface {
		// CurrentUser returns false when nobody is logged in.
		CurrentUser(ctx context.Context) (User, bool, error)
		Login(ctx context.Context, creds Credentials) (User, error)
		Logout(ctx context.Context) error
	}
)

// Session persists the logged in User as a JSON blob in a key-value store,
// so a new Session over the same store and key picks it back up.
type Session struct {
	store    core.KVStore
	provider Provider
	validate *validator.Validate
	key      string

	mu      sync.RWMutex
	current *User
}

var _ AuthSession = (*Session)(nil)

// NewSession returns a Session stored under CurrentUserKey, or under key[0] when given.
func NewSession(store core.KVStore, provider Provider, validate *validator.Validate, key ...string) *Session {
	k := CurrentUserKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	return &Session{
		store:    store,
		provider: provider,
		validate: validate,
		key:      k,
	}
}

func (s *Session) Key() string { return s.key }

func (s *Session) CurrentUser(ctx context.Context) (User, bool, error) {
	s.mu.RLock()
	if s.current != nil {
		usr := *s.current
		s.mu.RUnlock()
		return usr, true, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return User{}, false, nil
		}
		return User{}, false, errors.Wrap(err, "reading session")
	}
	var usr User
	if err := json.Unmarshal(data, &usr); err != nil {
		// unreadable blob: treat as logged out
		if err := s.store.Delete(ctx, s.key); err != nil {
			return User{}, false, errors.Wrap(err, "dropping corrupted session")
		}
		return User{}, false, nil
	}
	s.current = &usr
	return usr, true, nil
}

func (s *Session) Login(ctx context.Context, creds Credentials) (User, error) {
	if err := creds.Validate(s.validate); err != nil {
		return User{}, err
	}

	usr, err := s.provider.Authenticate(ctx, creds)
	if err != nil {
		if errors.Cause(err) == ErrInvalidCredentials || errors.Cause(err) == ErrNotFound {
			return User{}, &AuthError{RegNo: creds.RegNo, Err: ErrInvalidCredentials}
		}
		return User{}, errors.Wrap(err, "authenticating")
	}

	data, err := json.Marshal(usr)
	if err != nil {
		return User{}, errors.Wrap(err, "encoding session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return User{}, errors.Wrap(err, "saving session")
	}
	s.current = &usr
	return usr, nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, s.key); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	s.current = nil
	return nil
}
