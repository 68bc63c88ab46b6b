package order

import (
	"unicode/utf8"

	"github.com/muurk/orderdesk/internal/catalog"
)

// Field minimums, counted in runes. A character outside the Basic
// Multilingual Plane, such as an emoji, counts once, not as two UTF-16 units.
const (
	MinNameLength   = 2
	MinMobileLength = 10
)

// Validation messages shown next to the failing field.
const (
	MsgNameTooShort   = "Full name must be at least 2 characters"
	MsgMobileTooShort = "Please enter a valid mobile number"
	MsgBrandRequired  = "Please select a brand"
	MsgModelRequired  = "Please select a model"
	MsgBrandNotListed = "Please select a brand from the list"
	MsgModelNotListed = "Please select a model for the selected brand"
)

// ValidateName checks the customer's full name.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return NewTooShortError(FieldName, MsgNameTooShort)
	}
	return nil
}

// ValidateMobile checks the customer's mobile number. Only the length is
// checked; formats vary too much between countries for anything stricter.
func ValidateMobile(mobile string) error {
	if utf8.RuneCountInString(mobile) < MinMobileLength {
		return NewTooShortError(FieldMobile, MsgMobileTooShort)
	}
	return nil
}

// ValidateBrand checks the brand selection. A nil catalog skips the
// listing check.
func ValidateBrand(cat *catalog.Catalog, brand string) error {
	if brand == "" {
		return NewRequiredError(FieldBrand, MsgBrandRequired)
	}
	if cat != nil && !cat.HasBrand(brand) {
		return NewNotListedError(FieldBrand, MsgBrandNotListed)
	}
	return nil
}

// ValidateModel checks the model selection against the chosen brand.
func ValidateModel(cat *catalog.Catalog, brand, model string) error {
	if model == "" {
		return NewRequiredError(FieldModel, MsgModelRequired)
	}
	if cat != nil && !cat.HasModel(brand, model) {
		return NewNotListedError(FieldModel, MsgModelNotListed)
	}
	return nil
}

// Validate checks every field independently and returns the failures.
// Accessories are free text and always valid. The result is empty, not nil,
// when the form is valid.
func Validate(cat *catalog.Catalog, form Form) FieldErrors {
	errs := FieldErrors{}

	checks := []error{
		ValidateName(form.Name),
		ValidateMobile(form.Mobile),
		ValidateBrand(cat, form.Brand),
		ValidateModel(cat, form.Brand, form.Model),
	}
	for _, err := range checks {
		if fe, ok := err.(*FieldError); ok {
			errs[fe.Field] = fe
		}
	}

	return errs
}
