package tests

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/trezcool/campuslink/apps/api/echo"
	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
	"github.com/trezcool/campuslink/services/logger"
	"github.com/trezcool/campuslink/storage/memory"
	"github.com/trezcool/campuslink/storage/sample"
)

var (
	conf  *core.Config
	store *memorystore.Store
	data  *sample.Provider
	app   *echoapi.Server

	fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errUnauthorized = httpErr{Error: "user not authenticated"}
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()
	store = memorystore.Open()
	data = sample.NewProvider(func() time.Time { return fixedNow })

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	app = echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logsvc.NewStdLogger(log.New(io.Discard, "", 0), false),
		Store:      store,
		Provider:   user.NewMockProvider(0),
		Attendance: data,
		Academics:  data,
		Validate:   validate,
		Translator: translator,
	})

	os.Exit(m.Run())
}
