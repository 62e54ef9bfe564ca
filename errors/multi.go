package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the given errors is non nil, nil is returned. A single non nil
// error is returned as it is, without being wrapped.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten nested collections so that the result is a simple
		// list of errors.
		if m, ok := e.(*multiErr); ok {
			res = append(res, m.errs...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return &multiErr{errs: res}
	}
}

// multiErr represents a group of errors. Always use Append to create a
// collection of errors.
type multiErr struct {
	errs []error
}

var (
	_ unpacker = (*multiErr)(nil)
	_ coder    = (*multiErr)(nil)
)

func (m *multiErr) Error() string {
	msgs := make([]string, len(m.errs))
	for i, e := range m.errs {
		msgs[i] = "* " + e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m.errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all grouped errors.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// ABCICode returns the code of the first error, consistent with a fail-fast
// approach.
func (m *multiErr) ABCICode() uint32 {
	return abciCode(m.errs[0])
}

// unpacker is implemented by errors that are a group of errors.
type unpacker interface {
	Unpack() []error
}
