package user

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/campuslink/core"
)

// StudentEmailDomain is appended to registration numbers by the mock provider.
const StudentEmailDomain = "vitstudent.ac.in"

type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	RegNo           string `json:"reg_no"`
	Email           string `json:"email"`
	Branch          string `json:"branch"`
	Year            int    `json:"year"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// StudentEmail is the institutional address of a registration number.
func StudentEmail(regNo string) string {
	return fmt.Sprintf("%s@%s", core.CleanString(regNo, true /* lower */), StudentEmailDomain)
}

// Account is a User that can log in with a password.
type Account struct {
	User         User      `json:"user"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// Credentials are what a student types on the login screen.
type Credentials struct {
	RegNo    string `json:"reg_no" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.RegNo = core.CleanStringUpper(c.RegNo)
	return validate.Struct(c)
}

// NewAccount contains information needed to create a new Account.
type NewAccount struct {
	Name            string `json:"name" validate:"required,notblank"`
	RegNo           string `json:"reg_no" validate:"required,alphanum"`
	Email           string `json:"email" validate:"omitempty,email"`
	Branch          string `json:"branch"`
	Year            int    `json:"year" validate:"omitempty,min=1,max=6"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.RegNo = core.CleanStringUpper(na.RegNo)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Branch = core.CleanString(na.Branch)
	if na.Email == "" && na.RegNo != "" {
		na.Email = StudentEmail(na.RegNo)
	}
	return validate.Struct(na)
}
