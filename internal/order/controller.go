package order

import (
	"unicode/utf8"

	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/logging"
	"go.uber.org/zap"
)

// Sender hands a formatted order to the messaging channel.
// *dispatch.Dispatcher implements it.
type Sender interface {
	Send(text string) dispatch.Result
}

// Options configures a Controller.
type Options struct {
	// Catalog defaults to catalog.Default().
	Catalog   *catalog.Catalog
	Sender    Sender
	Formatter Formatter
}

// SubmitResult reports the outcome of Submit.
type SubmitResult struct {
	// Valid is false when validation failed; Errors then holds the failures.
	Valid   bool
	Errors  FieldErrors
	Message string
	// Dispatch is only meaningful when Valid is true.
	Dispatch dispatch.Result
}

// Controller is the order intake state machine.
type Controller struct {
	catalog   *catalog.Catalog
	sender    Sender
	formatter Formatter

	form   Form
	errors FieldErrors
	status Status
}

// NewController creates a controller with an empty form.
func NewController(opts Options) *Controller {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	return &Controller{
		catalog:   cat,
		sender:    opts.Sender,
		formatter: opts.Formatter,
		errors:    FieldErrors{},
		status:    StatusIdle,
	}
}

// UpdateField sets field to value. It resets the status, removes the field's
// error and, for the brand, clears the model and the model error. Unknown
// fields are ignored.
func (c *Controller) UpdateField(field Field, value string) {
	if !field.Valid() {
		logging.Debug("Ignoring update to unknown field", zap.String("field", string(field)))
		return
	}

	c.status = StatusIdle

	if field == FieldBrand {
		c.form.Brand = value
		c.form.Model = ""
		delete(c.errors, FieldModel)
	} else {
		c.form.set(field, value)
	}
	delete(c.errors, field)

	logging.LogFieldUpdate(string(field), utf8.RuneCountInString(value))
}

// Submit validates the form and, when it passes, formats and sends the order.
func (c *Controller) Submit() SubmitResult {
	c.status = StatusIdle

	errs := Validate(c.catalog, c.form)
	logging.LogValidation(errs.Names())
	if len(errs) > 0 {
		c.errors = errs
		return SubmitResult{Errors: errs.Clone()}
	}

	c.errors = FieldErrors{}
	text := c.formatter.Format(c.form)
	res := SubmitResult{Valid: true, Errors: FieldErrors{}, Message: text}

	if c.sender == nil {
		return res
	}

	res.Dispatch = c.sender.Send(text)
	if res.Dispatch.Path == dispatch.PathDesktop {
		c.status = StatusCopied
	}
	return res
}

// DismissStatus resets the status to idle.
func (c *Controller) DismissStatus() {
	c.status = StatusIdle
}

// Form returns a copy of the current form.
func (c *Controller) Form() Form {
	return c.form
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() FieldErrors {
	return c.errors.Clone()
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	return c.status
}

// Catalog returns the catalog the controller validates against.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// ModelOptions returns the models selectable for the current brand.
func (c *Controller) ModelOptions() []string {
	return c.catalog.ModelsFor(c.form.Brand)
}

// Preview renders the message the current form would produce, valid or not.
func (c *Controller) Preview() string {
	return c.formatter.Format(c.form)
}
