package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/async"
	"github.com/ib-77/fluentrop/pkg/rop/roplog"
)

var (
	emailFlag = cli.StringFlag{
		Name:    "email",
		Usage:   "email address of the new user",
		EnvVars: []string{"ROPCHECK_EMAIL"},
	}
	ageFlag = cli.IntFlag{
		Name:    "age",
		Usage:   "age of the new user",
		EnvVars: []string{"ROPCHECK_AGE"},
	}
	nameFlag = cli.StringFlag{
		Name:    "name",
		Usage:   "display name of the new user",
		EnvVars: []string{"ROPCHECK_NAME"},
	}
	parallelFlag = cli.BoolFlag{
		Name:    "parallel",
		Usage:   "run the field checks concurrently",
		EnvVars: []string{"ROPCHECK_PARALLEL"},
	}
)

var Validate = cli.Command{
	Action: validate,
	Name:   "validate",
	Usage:  "checks a signup given on the command line and reports every invalid field",
	Flags: []cli.Flag{
		&emailFlag,
		&ageFlag,
		&nameFlag,
		&parallelFlag,
	},
}

func validate(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(c.Context)

	s := Signup{
		Email: c.String(emailFlag.Name),
		Age:   c.Int(ageFlag.Name),
		Name:  c.String(nameFlag.Name),
	}
	parallel := c.Bool(parallelFlag.Name)

	r := async.Await(ctx, async.RunWithTimeout(ctx, c.Duration(timeoutFlag.Name),
		func(ctx context.Context) rop.ResultOf[Signup] {
			if parallel {
				return checkSignupAsync(ctx, s)
			}
			return checkSignup(s)
		}))

	roplog.LogOf(ctx, r, "validate")
	if r.IsFailed() {
		return cli.Exit(r.Err().Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "signup for %s is valid\n", s.Email)
	return nil
}
