package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
	"github.com/trezcool/campuslink/storage/database"
)

// PrepareDB connects to the TEST database and migrates it up.
// The test is skipped when TEST_DATABASE_HOST is not set.
func PrepareDB(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	if err := os.Setenv("ENV", "TEST"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	conf := core.NewConfig()

	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Connect(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db, "up"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// CreateAccount saves an account straight into repo, bypassing validation.
func CreateAccount(
	t *testing.T,
	repo user.Repository,
	name, regNo, pwd string,
	createdAt ...time.Time,
) user.Account {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	acc := user.Account{
		User: user.User{
			ID:     regNo,
			Name:   name,
			RegNo:  regNo,
			Email:  user.StudentEmail(regNo),
			Branch: "Computer Science",
			Year:   3,
		},
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := acc.SetPassword(pwd); err != nil {
			t.Fatalf("CreateAccount() failed: %v", err)
		}
	}
	if err := repo.SaveAccount(context.Background(), acc); err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acc
}
