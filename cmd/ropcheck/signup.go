package main

import (
	"context"
	"encoding/json"
	"io"
	"net/mail"
	"strings"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/async"
)

const tagField = "field"

type Signup struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
	Name  string `json:"name"`
}

func fieldError(field, message string) *rop.Error {
	return rop.NewError(message).WithTag(tagField, field)
}

func validateEmail(email string) rop.Result {
	if strings.TrimSpace(email) == "" {
		return rop.FailWith(fieldError("email", "email is required"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return rop.FailWith(fieldError("email", "email is not a valid address").CausedBy(err))
	}
	return rop.Ok().WithSuccessMessage("email is valid")
}

func validateAge(age int) rop.Result {
	return rop.OkIfWith(age >= 18 && age <= 130, fieldError("age", "age must be between 18 and 130"))
}

func validateName(name string) rop.Result {
	return rop.OkIfWith(strings.TrimSpace(name) != "", fieldError("name", "name is required"))
}

// checkSignup reports every invalid field at once.
func checkSignup(s Signup) rop.ResultOf[Signup] {
	return rop.ToResultOf(rop.Combine(
		validateEmail(s.Email),
		validateAge(s.Age),
		validateName(s.Name),
	), s)
}

func decodeSignup(r io.Reader) rop.ResultOf[Signup] {
	var s Signup
	return rop.TryOf(func() (Signup, error) {
		err := json.NewDecoder(r).Decode(&s)
		return s, err
	}, func(err error) rop.ErrorReason {
		return rop.NewError("request body is not a valid signup").CausedBy(err)
	})
}

// checkSignupAsync runs the three field checks in parallel.
func checkSignupAsync(ctx context.Context, s Signup) rop.ResultOf[Signup] {
	r := async.CombineParallelFuncs(ctx,
		func(context.Context) rop.Result { return validateEmail(s.Email) },
		func(context.Context) rop.Result { return validateAge(s.Age) },
		func(context.Context) rop.Result { return validateName(s.Name) },
	)
	return rop.ToResultOf(r, s)
}
