package remote

import (
	"github.com/iov-one/weave-escrow/errors"
)

// Abort returns an error that fails the currently executed remote call but,
// unlike any other error, keeps all changes done by the handler. Use it to
// persist a compensation together with the failure. Abort returns nil for a
// nil error.
func Abort(err error) error {
	if err == nil {
		return nil
	}
	return &abortError{err: err}
}

type abortError struct {
	err error
}

func (e *abortError) Error() string {
	return e.err.Error()
}

// Cause returns the reason of the abort.
func (e *abortError) Cause() error {
	return e.err
}

// ABCICode returns the code of the abort reason.
func (e *abortError) ABCICode() uint32 {
	code, _ := errors.ABCIInfo(e.err, false)
	return code
}

// abortReason returns the abort reason if err was created by Abort,
// possibly wrapped afterwards.
func abortReason(err error) (reason error, ok bool) {
	type causer interface {
		Cause() error
	}
	for err != nil {
		if e, ok := err.(*abortError); ok {
			return e.err, true
		}
		c, ok := err.(causer)
		if !ok {
			return nil, false
		}
		err = c.Cause()
	}
	return nil, false
}
