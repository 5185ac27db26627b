package main

import (
	"context"
	"fmt"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
)

// addUser validates and creates a user.Account.
func (cli *commandLine) addUser(na user.NewAccount) error {
	if err := na.Validate(cli.validate); err != nil {
		return core.TranslateValidationErrors(err, cli.translator)
	}
	acc, err := cli.usrSvc.Create(context.Background(), na)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "created %s (%s)\n", acc.User.RegNo, acc.User.Email)
	return nil
}

func (cli *commandLine) resetPassword(regNo, pwd string) error {
	ctx := context.Background()
	acc, err := cli.usrSvc.GetByRegNo(ctx, regNo)
	if err != nil {
		return err
	}
	if err := user.ValidatePassword(pwd, acc.User); err != nil {
		return err
	}
	if _, err := cli.usrSvc.SetPassword(ctx, acc.User.RegNo, pwd); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "password of %s reset\n", acc.User.RegNo)
	return nil
}
