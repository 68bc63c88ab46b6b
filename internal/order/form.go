package order

import (
	"fmt"
	"strings"
)

// Field names an order form field.
type Field string

const (
	FieldName        Field = "name"
	FieldMobile      Field = "mobile"
	FieldBrand       Field = "brand"
	FieldModel       Field = "model"
	FieldAccessories Field = "accessories"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldMobile, FieldBrand, FieldModel, FieldAccessories}

// Label returns the human-readable field name.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Full Name"
	case FieldMobile:
		return "Mobile Number"
	case FieldBrand:
		return "Brand"
	case FieldModel:
		return "Model"
	case FieldAccessories:
		return "Accessories"
	default:
		return string(f)
	}
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// ParseField parses a field name, case-insensitively.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// Form is the order being entered.
type Form struct {
	Name        string `json:"name" yaml:"name"`
	Mobile      string `json:"mobile" yaml:"mobile"`
	Brand       string `json:"brand" yaml:"brand"`
	Model       string `json:"model" yaml:"model"`
	Accessories string `json:"accessories" yaml:"accessories"`
}

// Get returns the value of field f.
func (o Form) Get(f Field) string {
	switch f {
	case FieldName:
		return o.Name
	case FieldMobile:
		return o.Mobile
	case FieldBrand:
		return o.Brand
	case FieldModel:
		return o.Model
	case FieldAccessories:
		return o.Accessories
	default:
		return ""
	}
}

// set assigns field f. It reports false for an unknown field.
func (o *Form) set(f Field, value string) bool {
	switch f {
	case FieldName:
		o.Name = value
	case FieldMobile:
		o.Mobile = value
	case FieldBrand:
		o.Brand = value
	case FieldModel:
		o.Model = value
	case FieldAccessories:
		o.Accessories = value
	default:
		return false
	}
	return true
}

// Status is the transient submission status shown after a submit.
type Status int

const (
	// StatusIdle means nothing to report.
	StatusIdle Status = iota
	// StatusCopied means the order text was staged on the clipboard and the
	// customer should paste it into the chat.
	StatusCopied
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCopied:
		return "copied"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
