package validate

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if err := v.Var(value, "required,email"); err != nil {
		return &ErrField{Field: field, Msg: "invalid email"}
	}
	return nil
}

func MinInt(field string, val, min int64) *ErrField {
	if val < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

// Password checks the plaintext rules: at least 7 characters and no
// "password" substring in any case.
func Password(field, plain string) *ErrField {
	if len(plain) < 7 {
		return &ErrField{Field: field, Msg: "must be at least 7 characters"}
	}
	if strings.Contains(strings.ToLower(plain), "password") {
		return &ErrField{Field: field, Msg: `cannot contain "password"`}
	}
	return nil
}
