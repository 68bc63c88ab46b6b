package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/order"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds the number of submits in one run.
const DefaultMaxAttempts = 5

// ErrDeclined is returned when the user declines to send a valid order.
var ErrDeclined = errors.New("order not sent")

// ErrTooManyAttempts is returned when the order is still invalid after the
// last allowed attempt.
var ErrTooManyAttempts = errors.New("order still invalid")

// Flow asks for each field, submits through the controller and re-asks
// the fields that failed.
type Flow struct {
	Controller *order.Controller
	Driver     Driver
	// Out receives the preview and validation summaries; nil discards them.
	Out io.Writer
	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int
	// SkipConfirm sends a valid order without asking first.
	SkipConfirm bool
}

// Run drives the form to a successful submit.
func (f *Flow) Run(ctx context.Context) (order.SubmitResult, error) {
	attempts := f.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	pending := order.Fields
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := f.askFields(ctx, pending); err != nil {
			return order.SubmitResult{}, err
		}

		errs := order.Validate(f.Controller.Catalog(), f.Controller.Form())
		if len(errs) == 0 && !f.SkipConfirm {
			f.printf("\n%s\n\n", f.Controller.Preview())
			ok, err := f.Driver.Confirm(ctx, Question{Message: "Send this order?", Default: "yes"})
			if err != nil {
				return order.SubmitResult{}, err
			}
			if !ok {
				return order.SubmitResult{}, ErrDeclined
			}
		}

		res := f.Controller.Submit()
		if res.Valid {
			return res, nil
		}

		logging.Debug("Prompt attempt failed", zap.Int("attempt", attempt), zap.Strings("fields", res.Errors.Names()))
		f.printf("\n%s\n\n", order.FormatValidationErrors(res.Errors))
		pending = failedFields(res.Errors)
	}

	return order.SubmitResult{}, fmt.Errorf("%w after %d attempts", ErrTooManyAttempts, attempts)
}

// failedFields keeps form order and always re-asks the model with its brand.
func failedFields(errs order.FieldErrors) []order.Field {
	var out []order.Field
	for _, field := range order.Fields {
		if errs.Has(field) || (field == order.FieldModel && errs.Has(order.FieldBrand)) {
			out = append(out, field)
		}
	}
	return out
}

func (f *Flow) askFields(ctx context.Context, fields []order.Field) error {
	for _, field := range fields {
		if err := f.ask(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) ask(ctx context.Context, field order.Field) error {
	c := f.Controller
	q := Question{
		Message: field.Label() + ":",
		Default: c.Form().Get(field),
		Help:    c.Errors().Message(field),
	}

	var (
		value string
		err   error
	)
	switch field {
	case order.FieldBrand:
		q.Options = c.Catalog().Brands()
		value, err = f.Driver.Select(ctx, q)
	case order.FieldModel:
		q.Options = c.ModelOptions()
		if len(q.Options) == 0 {
			return nil
		}
		value, err = f.Driver.Select(ctx, q)
	case order.FieldAccessories:
		q.Message = field.Label() + " (optional):"
		value, err = f.Driver.Multiline(ctx, q)
	default:
		value, err = f.Driver.Input(ctx, q)
	}
	if err != nil {
		return err
	}

	// Re-selecting the same brand must not wipe an already chosen model.
	if field == order.FieldBrand && value == c.Form().Brand && c.Form().Model != "" {
		return nil
	}
	c.UpdateField(field, value)
	return nil
}

func (f *Flow) printf(format string, args ...any) {
	if f.Out == nil {
		return
	}
	_, _ = fmt.Fprintf(f.Out, format, args...)
}
