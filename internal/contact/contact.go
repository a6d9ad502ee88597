// Package contact validates contact form posts and hands them to a Sink.
//
// The site has no delivery backend; NopSink is the only Sink in the repo.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/starford/folio/internal/apperr"
)

// Field length limits.
const (
	MaxName    = 100
	MaxEmail   = 254
	MaxSubject = 200
	MaxMessage = 5000
)

// Form is a contact form post.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate checks the form. Errors wrap apperr.ErrInvalid; FieldErrors
// extracts the per-field messages.
func (f Form) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.RuneLength(0, MaxName)),
		validation.Field(&f.Email, validation.Required, validation.RuneLength(0, MaxEmail), is.EmailFormat),
		validation.Field(&f.Subject, validation.Required, validation.RuneLength(0, MaxSubject)),
		validation.Field(&f.Message, validation.Required, validation.RuneLength(0, MaxMessage)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	return nil
}

// FieldErrors maps form field names to messages. It returns nil when err
// carries no field errors.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out
}

// Submission is a validated form ready for delivery.
type Submission struct {
	ID         string
	Form       Form
	ReceivedAt time.Time
}

// NewSubmission stamps f with a fresh id.
func NewSubmission(f Form, now time.Time) Submission {
	return Submission{ID: uuid.NewString(), Form: f, ReceivedAt: now.UTC()}
}

// Sink receives submissions.
type Sink interface {
	Deliver(ctx context.Context, s Submission) error
}

// NopSink discards submissions after logging their id.
type NopSink struct {
	Logger *slog.Logger
}

// Deliver implements Sink.
func (n NopSink) Deliver(ctx context.Context, s Submission) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "contact submission discarded",
		slog.String("id", s.ID),
		slog.Int("message_len", len(s.Form.Message)),
	)
	return nil
}

// Submit normalizes and validates f, then delivers it to sink.
func Submit(ctx context.Context, sink Sink, f Form, now time.Time) (Submission, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Submission{}, err
	}
	s := NewSubmission(f, now)
	if err := sink.Deliver(ctx, s); err != nil {
		return Submission{}, fmt.Errorf("contact: deliver %s: %w", s.ID, err)
	}
	return s, nil
}
