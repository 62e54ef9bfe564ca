/*
Package errors implements the error model used by all lockchain packages.

Reuse root errors declared in this package whenever possible and declare
package specific ones only when a caller must be able to distinguish the
failure. An extension registers its own root errors with
Register(code, description) during the program startup, for example

	var ErrNoRecord = errors.Register(1306, "no record")

Create an instance of a root error with ErrXyz.New("...") or
errors.Wrap(ErrXyz, "...") at the point where the failure happens so that a
stack trace is attached. Test the kind of an error with ErrXyz.Is(err); it
unwraps all layers, including field errors and error groups created with
Append.

Formatting an error with %+v prints the stack trace of the innermost wrap.
*/
package errors
