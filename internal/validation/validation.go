// Package validation checks post request bodies before anything reaches the
// database.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vaughan-dsouza/posts-api/internal/models"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of rejected fields. An empty list means the
// input may be persisted.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

var messages = map[string]string{
	"title":       "Title is required.",
	"description": "Description is required.",
	"status":      "Invalid status.",
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("post_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// ValidateCreate requires a non-empty title and description.
func (val *Validator) ValidateCreate(in models.CreatePostInput) Errors {
	return val.check(in)
}

// ValidateUpdate accepts any subset of fields, but supplied title and
// description must be non-empty and a supplied status must be known.
func (val *Validator) ValidateUpdate(in models.UpdatePostInput) Errors {
	return val.check(in)
}

func (val *Validator) check(in any) Errors {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "body", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value."
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
