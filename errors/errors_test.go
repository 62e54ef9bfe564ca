package errors

import (
	stdlib "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"comparison to a pkg/errors wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrState,
			wantIs: false,
		},
		"field error is unwrapped": {
			a:      ErrEmpty,
			b:      Field("Owner", ErrEmpty, "required"),
			wantIs: true,
		},
		"a group matches if any member matches": {
			a:      ErrAmount,
			b:      Append(ErrInput, Wrap(ErrAmount, "negative")),
			wantIs: true,
		},
		"a group does not match if no member matches": {
			a:      ErrExpired,
			b:      Append(ErrInput, ErrAmount),
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(Wrap(ErrDuplicate, "name"), "record %d", 3)
	if got, want := err.Error(), "record 3: name: duplicate"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if !ErrDuplicate.Is(err) {
		t.Fatal("root cause lost")
	}
	if st := fmt.Sprintf("%+v", err); !strings.Contains(st, "TestWrapMessage") {
		t.Fatalf("stack trace missing the creation frame: %s", st)
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "another not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrState); err != ErrState {
		t.Fatalf("single error must not be wrapped, got %#v", err)
	}

	err := Append(ErrState, Append(ErrInput, ErrAmount))
	u, ok := err.(unpacker)
	if !ok {
		t.Fatalf("want an error group, got %T", err)
	}
	if n := len(u.Unpack()); n != 3 {
		t.Fatalf("want a flat group of 3 errors, got %d", n)
	}
}

func TestFieldErrors(t *testing.T) {
	var (
		emptyOwner   = Field("Owner", ErrEmpty, "owner is required")
		badTicker    = Field("Ticker", ErrCurrency, "")
		secondTicker = Field("Ticker", ErrInput, "too long")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   emptyOwner,
			Field: "Owner",
			Want:  []error{emptyOwner},
		},
		"two errors found by the name": {
			Err:   Append(badTicker, emptyOwner, secondTicker),
			Field: "Ticker",
			Want:  []error{badTicker, secondTicker},
		},
		"field inside of a wrapped error": {
			Err:   Wrap(Append(emptyOwner, badTicker), "invalid configuration"),
			Field: "Owner",
			Want:  []error{emptyOwner},
		},
		"nothing found": {
			Err:   Append(emptyOwner, badTicker),
			Field: "Admin",
			Want:  nil,
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "Owner",
			Want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(got, tc.Want) {
				t.Fatalf("want %v, got %v", tc.Want, got)
			}
		})
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrUnauthorized, "admin signature missing"),
			wantCode: ErrUnauthorized.ABCICode(),
			wantLog:  "admin signature missing: unauthorized",
		},
		"stdlib error is redacted": {
			err:      stdlib.New("secret details"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(stdlib.New("secret"), false); err.Error() != internalABCILog {
		t.Fatalf("stdlib error not redacted: %v", err)
	}
	if err := Redact(ErrNotFound, false); err != ErrNotFound {
		t.Fatalf("registered error must not be redacted: %v", err)
	}
	secret := stdlib.New("secret")
	if err := Redact(secret, true); err != secret {
		t.Fatalf("debug mode must not redact: %v", err)
	}
}
