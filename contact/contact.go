// Package contact validates and accepts contact form submissions.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultDelay is how long Simulated takes to accept a submission.
const DefaultDelay = 1500 * time.Millisecond

// ErrInvalid is wrapped by every *ValidationError.
var ErrInvalid = errors.New("invalid submission")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submission is the data entered in the contact form.
type Submission struct {
	Name    string `form:"name" json:"name" validate:"required,max=200"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Company string `form:"company" json:"company" validate:"max=200"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Company: strings.TrimSpace(s.Company),
		Message: strings.TrimSpace(s.Message),
	}
}

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// MessageKey is the locale key that explains the problem to the visitor.
func (f FieldError) MessageKey() string {
	switch f.Rule {
	case "required":
		return "contact.error.required"
	case "email":
		return "contact.error.email"
	default:
		return "contact.error.invalid"
	}
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks s and returns a *ValidationError listing every rejected
// field, or nil.
func Validate(s Submission) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate submission: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// Submitter accepts a contact submission.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// Simulated accepts every valid submission after Delay without sending it
// anywhere.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) Submit(ctx context.Context, sub Submission) error {
	if err := Validate(sub); err != nil {
		return err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	slog.Debug("contact submission accepted", "has_company", sub.Company != "", "message_len", len(sub.Message))
	return nil
}
