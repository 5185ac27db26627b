package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MockProvider accepts any credentials after a delay and makes up a student for the reg. number.
type MockProvider struct {
	delay time.Duration
}

var _ Provider = (*MockProvider)(nil)

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{delay: delay}
}

func (p *MockProvider) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return User{}, ctx.Err()
		case <-timer.C:
		}
	}
	return User{
		ID:     uuid.New().String(),
		Name:   "Student Name",
		RegNo:  creds.RegNo,
		Email:  StudentEmail(creds.RegNo),
		Branch: "Computer Science",
		Year:   3,
	}, nil
}

// AccountProvider authenticates against accounts created with Service.Create.
type AccountProvider struct {
	repo Repository
}

var _ Provider = (*AccountProvider)(nil)

func NewAccountProvider(repo Repository) *AccountProvider {
	return &AccountProvider{repo: repo}
}

func (p *AccountProvider) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	acc, err := p.repo.GetAccount(ctx, creds.RegNo)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding account")
	}
	if err := acc.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return acc.User, nil
}
