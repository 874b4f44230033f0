package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func valid() Submission {
	return Submission{
		Name:    "Lina",
		Email:   "lina@example.com",
		Message: "We need a new website.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Submission)
		fields []FieldError
	}{
		{name: "valid", modify: func(*Submission) {}},
		{name: "company optional", modify: func(s *Submission) { s.Company = "" }},
		{name: "missing name", modify: func(s *Submission) { s.Name = "" }, fields: []FieldError{{Field: "name", Rule: "required"}}},
		{name: "bad email", modify: func(s *Submission) { s.Email = "not-an-email" }, fields: []FieldError{{Field: "email", Rule: "email"}}},
		{
			name:   "everything missing",
			modify: func(s *Submission) { *s = Submission{} },
			fields: []FieldError{
				{Field: "name", Rule: "required"},
				{Field: "email", Rule: "required"},
				{Field: "message", Rule: "required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(&s)
			err := Validate(s)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestFieldErrorMessageKey(t *testing.T) {
	assert.Equal(t, "contact.error.required", FieldError{Rule: "required"}.MessageKey())
	assert.Equal(t, "contact.error.email", FieldError{Rule: "email"}.MessageKey())
	assert.Equal(t, "contact.error.invalid", FieldError{Rule: "max"}.MessageKey())
}

func TestNormalize(t *testing.T) {
	s := Submission{Name: "  Lina ", Email: " lina@example.com\n", Message: "\thi "}.Normalize()
	assert.Equal(t, Submission{Name: "Lina", Email: "lina@example.com", Message: "hi"}, s)
	require.Error(t, Validate(Submission{Name: "   "}.Normalize()))
}

func TestSimulatedWaitsThenSucceeds(t *testing.T) {
	sim := Simulated{Delay: 20 * time.Millisecond}
	start := time.Now()
	require.NoError(t, sim.Submit(context.Background(), valid()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedRejectsInvalid(t *testing.T) {
	sim := Simulated{Delay: time.Hour}
	err := sim.Submit(context.Background(), Submission{})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestSimulatedCancelled(t *testing.T) {
	sim := Simulated{Delay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sim.Submit(ctx, valid())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	require.ErrorIs(t, Simulated{}.Submit(cancelled, valid()), context.Canceled)
}
