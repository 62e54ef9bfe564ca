/*
Package assert provides small helpers to make tests more readable. All
helpers fail the test immediately.
*/
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/lockchain/errors"
)

// Tester is the minimal subset of testing.TB needed to run most assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// Use %+v so that if we are printing an error that supports
		// stack traces then a full stack trace is shown.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) (isnil bool) {
	if value == nil {
		return true
	}

	defer func() {
		if recover() != nil {
			isnil = false
		}
	}()

	// The argument must be a chan, func, interface, map, pointer, or slice
	// value; if it is not, IsNil panics.
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics will run given function and recover any panic. It will fail the test
// if given function call did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr checks if the errors are a match and prints out the difference if
// not as well as failing the assertion. Want error is compared using the Is
// method if available.
func IsErr(t Tester, want, got error) {
	t.Helper()

	if want == got {
		return
	}

	type comparator interface {
		Is(error) bool
	}
	if w, ok := want.(comparator); ok && w.Is(got) {
		return
	}

	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError ensures that given error contains a field error for given
// field, that is of the wanted kind. To test that no error was found for a
// given field name, use nil as the match value.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			for i, e := range errs {
				t.Logf("\terror %d: %q", i+1, e)
			}
			t.Fatalf("expected no %q field error, got %d", fieldName, len(errs))
		}
		return
	}

	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
	t.Fatalf("%q field error of kind %q not found", fieldName, want)
}
