package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core"
)

const accountKeyPrefix = "account:"

type (
	Repository interface {
		GetAccount(ctx context.Context, regNo string) (Account, error)
		SaveAccount(ctx context.Context, acc Account) error
		DeleteAccount(ctx context.Context, regNo string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAccount) (Account, error) {
	if _, err := svc.repo.GetAccount(ctx, na.RegNo); err == nil {
		return Account{}, core.NewValidationError(ErrRegNoExists, core.FieldError{Field: "reg_no", Error: ErrRegNoExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return Account{}, errors.Wrap(err, "checking registration number")
	}

	now := time.Now().UTC()
	acc := Account{
		User: User{
			ID:     uuid.New().String(),
			Name:   na.Name,
			RegNo:  na.RegNo,
			Email:  na.Email,
			Branch: na.Branch,
			Year:   na.Year,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acc.SetPassword(na.Password); err != nil {
		return Account{}, errors.Wrap(err, "hashing password")
	}
	if err := svc.repo.SaveAccount(ctx, acc); err != nil {
		return Account{}, errors.Wrap(err, "saving account")
	}
	return acc, nil
}

func (svc *Service) GetByRegNo(ctx context.Context, regNo string) (Account, error) {
	return svc.repo.GetAccount(ctx, core.CleanStringUpper(regNo))
}

func (svc *Service) SetPassword(ctx context.Context, regNo, pwd string) (Account, error) {
	acc, err := svc.GetByRegNo(ctx, regNo)
	if err != nil {
		return Account{}, err
	}
	if err := acc.SetPassword(pwd); err != nil {
		return Account{}, errors.Wrap(err, "hashing password")
	}
	acc.UpdatedAt = time.Now().UTC()
	if err := svc.repo.SaveAccount(ctx, acc); err != nil {
		return Account{}, errors.Wrap(err, "saving account")
	}
	return acc, nil
}

func (svc *Service) Delete(ctx context.Context, regNo string) error {
	return svc.repo.DeleteAccount(ctx, core.CleanStringUpper(regNo))
}

// kvRepository keeps accounts as JSON blobs in the key-value store.
type kvRepository struct {
	store core.KVStore
}

var _ Repository = (*kvRepository)(nil)

func NewKVRepository(store core.KVStore) Repository {
	return &kvRepository{store: store}
}

func (repo *kvRepository) GetAccount(ctx context.Context, regNo string) (Account, error) {
	data, err := repo.store.Get(ctx, accountKeyPrefix+regNo)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return Account{}, ErrNotFound
		}
		return Account{}, errors.Wrap(err, "reading account")
	}
	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return Account{}, errors.Wrap(err, "decoding account")
	}
	return acc, nil
}

func (repo *kvRepository) SaveAccount(ctx context.Context, acc Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return errors.Wrap(err, "encoding account")
	}
	return repo.store.Set(ctx, accountKeyPrefix+acc.User.RegNo, data)
}

func (repo *kvRepository) DeleteAccount(ctx context.Context, regNo string) error {
	return repo.store.Delete(ctx, accountKeyPrefix+regNo)
}
