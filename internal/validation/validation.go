// Package validation checks form input before it reaches the services.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/adanyl0v/go-todo-board/internal/locale"
)

const DateLayout = time.DateOnly

type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=3,max=20"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type TaskForm struct {
	Title       string `form:"title" binding:"required,max=100"`
	Description string `form:"description" binding:"max=500"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `form:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Category    string `form:"category"`
	Progress    int    `form:"progress" binding:"min=0,max=100"`
}

// ParsedDueDate returns nil for an empty due date.
func (f TaskForm) ParsedDueDate() (*time.Time, error) {
	if strings.TrimSpace(f.DueDate) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(f.DueDate))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

var messages = map[string]string{
	"username.required":        locale.MsgUsernameRequired,
	"username.min":             locale.MsgUsernameTooShort,
	"username.max":             locale.MsgUsernameTooLong,
	"email.required":           locale.MsgEmailRequired,
	"email.email":              locale.MsgEmailInvalid,
	"password.required":        locale.MsgPasswordRequired,
	"password.min":             locale.MsgPasswordTooShort,
	"confirmPassword.required": locale.MsgConfirmPasswordRequired,
	"confirmPassword.eqfield":  locale.MsgPasswordsDoNotMatch,
	"title.required":           locale.MsgTitleRequired,
	"title.max":                locale.MsgTitleTooLong,
	"description.max":          locale.MsgDescriptionTooLong,
	"priority.oneof":           locale.MsgPriorityInvalid,
	"dueDate.datetime":         locale.MsgDueDateInvalid,
	"progress.min":             locale.MsgProgressOutOfRange,
	"progress.max":             locale.MsgProgressOutOfRange,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := field.Tag.Get("form")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks form against its binding rules and returns one
// translated message per failing field.
func Validate(t *locale.Translator, form any) Errors {
	errs := Errors{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = t.T(locale.MsgFieldInvalid)
		return errs
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		id, ok := messages[field+"."+fe.Tag()]
		if !ok {
			id = locale.MsgFieldInvalid
		}
		errs[field] = t.T(id)
	}
	return errs
}

// Register, Login and Task trim the obvious whitespace and validate.

func Register(t *locale.Translator, form RegisterForm) Errors {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	return Validate(t, form)
}

func Login(t *locale.Translator, form LoginForm) Errors {
	form.Email = strings.TrimSpace(form.Email)
	return Validate(t, form)
}

func Task(t *locale.Translator, form TaskForm) Errors {
	form.Title = strings.TrimSpace(form.Title)
	form.DueDate = strings.TrimSpace(form.DueDate)
	return Validate(t, form)
}
