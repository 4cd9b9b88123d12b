package assert

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrNotFound,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":          {Value: nil},
		"typed nil":    {Value: nilErr},
		"nil slice":    {Value: []byte(nil)},
		"not nil":      {Value: errors.ErrEmpty, WantFail: true},
		"not nillable": {Value: 1, WantFail: true},
		"empty slice":  {Value: []byte{}, WantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}
	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Helper() {}

func (t *tmock) Fatal(args ...interface{}) {
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.failcalls++
}
