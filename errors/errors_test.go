package errors

import (
	stderrors "errors"
	"testing"
)

func TestRegisterDuplicateCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"instance of the same error":   {ErrNotFound, ErrNotFound, true},
		"wrapped instance":             {ErrNotFound, Wrap(ErrNotFound, "gone"), true},
		"deeply wrapped":               {ErrNotFound, Wrap(Wrap(ErrNotFound, "a"), "b"), true},
		"different kind":               {ErrNotFound, ErrUnauthorized, false},
		"wrapped different kind":       {ErrNotFound, Wrap(ErrUnauthorized, "nope"), false},
		"stdlib error":                 {ErrNotFound, stderrors.New("not found"), false},
		"nil error is not of any kind": {ErrNotFound, nil, false},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "attach description"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrAmount, "negative balance")
	const want = "negative balance: invalid amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("oh no")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}
