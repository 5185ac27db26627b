package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/attendance"
	"github.com/trezcool/campuslink/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *sql.DB // nil unless the postgres store is configured
	usrSvc     *user.Service
	attendance attendance.Source
	mailSvc    core.EmailService
	validate   *validator.Validate
	translator ut.Translator
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                      - run a goose command (up, down, status, ...)")
	_, _ = fmt.Fprintln(cli.out, "  adduser -regno REGNO -name NAME [-email E]  - create a student account")
	_, _ = fmt.Fprintln(cli.out, "  resetpassword -regno REGNO                  - reset a student's password")
	_, _ = fmt.Fprintln(cli.out, "  project -total T -attended A -target P      - classes needed to reach P%")
	_, _ = fmt.Fprintln(cli.out, "  alerts -regno REGNO                         - email the low attendance digest")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserRegNo := addUserCmd.String("regno", "", "The student's registration number. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The student's full name.")
	addUserEmail := addUserCmd.String("email", "", "Defaults to the institutional address of -regno.")
	addUserBranch := addUserCmd.String("branch", "", "The student's branch.")
	addUserYear := addUserCmd.Int("year", 0, "The student's year of study.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordRegNo := resetPasswordCmd.String("regno", "", "The student's registration number. The password will be prompted next.")

	projectCmd := flag.NewFlagSet("project", flag.ContinueOnError)
	projectTotal := projectCmd.Int("total", -1, "Classes held so far.")
	projectAttended := projectCmd.Int("attended", -1, "Classes attended so far.")
	projectTarget := projectCmd.Float64("target", attendance.SafeThreshold, "Target percentage.")

	alertsCmd := flag.NewFlagSet("alerts", flag.ContinueOnError)
	alertsRegNo := alertsCmd.String("regno", "", "The student's registration number.")

	for _, fs := range []*flag.FlagSet{addUserCmd, resetPasswordCmd, projectCmd, alertsCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserRegNo == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, confirm, err := cli.promptPassword(true)
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(user.NewAccount{
			Name:            *addUserName,
			RegNo:           *addUserRegNo,
			Email:           *addUserEmail,
			Branch:          *addUserBranch,
			Year:            *addUserYear,
			Password:        pwd,
			PasswordConfirm: confirm,
		})

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordRegNo == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, _, err := cli.promptPassword(false)
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordRegNo, pwd)

	case "project":
		if err := projectCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *projectTotal < 0 || *projectAttended < 0 {
			projectCmd.Usage()
			return errHelp
		}
		return cli.project(attendance.ProjectionRequest{
			TotalClasses:     *projectTotal,
			AttendedClasses:  *projectAttended,
			TargetPercentage: *projectTarget,
		})

	case "alerts":
		if err := alertsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *alertsRegNo == "" {
			alertsCmd.Usage()
			return errHelp
		}
		return cli.alerts(*alertsRegNo)

	default:
		cli.printUsage()
		return errHelp
	}
}

// promptPassword reads the password, and its confirmation when `confirm` is set, without echo.
func (cli *commandLine) promptPassword(confirm bool) (string, string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", "", err
	}
	if !confirm || len(pwd) == 0 {
		return string(pwd), "", nil
	}

	_, _ = fmt.Fprint(cli.out, "Confirm password:")
	again, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", "", err
	}
	return string(pwd), string(again), nil
}
