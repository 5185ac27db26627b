package main

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/campuslink/core/attendance"
	"github.com/trezcool/campuslink/core/user"
)

func (cli *commandLine) project(req attendance.ProjectionRequest) error {
	res, err := attendance.ProjectRequiredClasses(req)
	if err != nil {
		return err
	}
	if res.AlreadyMet {
		_, _ = fmt.Fprintf(cli.out, "%.1f%%: target of %g%% already met\n", res.CurrentPercentage, req.TargetPercentage)
		return nil
	}
	_, _ = fmt.Fprintf(cli.out, "%.1f%%: attend the next %d classes to reach %g%%\n",
		res.CurrentPercentage, res.AdditionalClassesNeeded, req.TargetPercentage)
	return nil
}

// alerts emails the low attendance digest to a student. Students without an account
// get it at their institutional address.
func (cli *commandLine) alerts(regNo string) error {
	ctx := context.Background()

	to := mail.Address{Address: user.StudentEmail(regNo)}
	if acc, err := cli.usrSvc.GetByRegNo(ctx, regNo); err == nil {
		to = mail.Address{Name: acc.User.Name, Address: acc.User.Email}
		regNo = acc.User.RegNo
	} else if errors.Cause(err) != user.ErrNotFound {
		return errors.Wrap(err, "finding account")
	}

	courses, err := cli.attendance.Attendance(ctx, regNo)
	if err != nil {
		return errors.Wrap(err, "loading attendance")
	}
	msg := attendance.LowAttendanceDigest(to, attendance.Analyze(courses, nil))
	if msg == nil {
		_, _ = fmt.Fprintf(cli.out, "%s: no course below %g%%\n", regNo, attendance.SafeThreshold)
		return nil
	}
	cli.mailSvc.SendMessages(msg)
	if w, ok := cli.mailSvc.(interface{ Wait() }); ok {
		w.Wait()
	}
	_, _ = fmt.Fprintf(cli.out, "%s: digest sent to %s\n", regNo, to.Address)
	return nil
}
