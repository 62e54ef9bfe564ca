package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field wraps err with the name of the model or message attribute that the
// error is about. It returns nil for a nil error.
//
// Use Go naming for the field name, for example Principal or LockPeriods.
// Nested attributes use dot notation (Strategy.Rates) and slice elements
// use the index (Boundaries.2).
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField is a shortcut for Append(errs, Field(name, err, "")). This is
// the most common way of collecting validation errors:
//
//	var errs error
//	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
//	errs = errors.AppendField(errs, "Ticker", validateTicker(c.Ticker))
//	return errs
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors walks the error tree and returns all errors that were created
// for the given field name.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	for !isNilErr(err) {
		if f, ok := err.(*fieldError); ok && f.field == fieldName {
			return append(res, err)
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return res
}
