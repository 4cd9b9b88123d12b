package remote

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
)

const (
	queueBucketName  = "rcall"
	resultBucketName = "rcres"
)

var (
	_ orm.Model = (*Call)(nil)
	_ orm.Model = (*CallResult)(nil)
)

// Validate ensures the call can be executed.
func (c *Call) Validate() error {
	var errs error
	if err := c.Caller.Validate(); err != nil {
		errs = errors.Append(errs, errors.Wrap(err, "caller"))
	}
	errs = errors.Append(errs, errors.Wrap(c.Target.Validate(), "target"))
	if c.Path == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "path"))
	}
	if c.Then != nil {
		errs = errors.Append(errs, errors.Wrap(c.Then.Validate(), "then"))
	}
	return errs
}

// Validate ensures the continuation can be routed.
func (c *Continuation) Validate() error {
	if c.Path == "" {
		return errors.Wrap(errors.ErrEmpty, "path")
	}
	return nil
}

// Validate ensures the execution time is set.
func (r *CallResult) Validate() error {
	if err := r.ExecTime.Validate(); err != nil {
		return errors.Wrap(err, "exec time")
	}
	if len(r.Next) != 0 {
		if err := orm.ValidateSequence(r.Next); err != nil {
			return errors.Wrap(err, "next")
		}
	}
	return nil
}

func newQueueBucket() orm.ModelBucket {
	return orm.NewModelBucket(queueBucketName, &Call{})
}

func newResultBucket() orm.ModelBucket {
	return orm.NewModelBucket(resultBucketName, &CallResult{})
}

func newCallSequence() orm.Sequence {
	return orm.NewSequence(queueBucketName, "id")
}

// RegisterQuery exposes call results as "/calls" and the queue as
// "/calls/queued".
func RegisterQuery(qr weave.QueryRouter) {
	newResultBucket().Register("calls", qr)
	newQueueBucket().Register("calls/queued", qr)
}

// Result returns the stored result of an executed call. ErrNotFound is
// returned when the call was not executed yet or never existed.
func Result(db weave.ReadOnlyKVStore, callID []byte) (*CallResult, error) {
	var res CallResult
	if err := newResultBucket().One(db, callID, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FinalResult follows the chain of continuations starting with given call
// and returns the result of the last executed call. ErrNotFound is returned
// when the first call was not executed yet.
func FinalResult(db weave.ReadOnlyKVStore, callID []byte) (*CallResult, error) {
	res, err := Result(db, callID)
	if err != nil {
		return nil, err
	}
	for len(res.Next) != 0 {
		next, err := Result(db, res.Next)
		switch {
		case err == nil:
			res = next
		case errors.ErrNotFound.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
	return res, nil
}

// InFlight returns true if the call with given id or any continuation
// chained to it is still waiting for execution.
func InFlight(db weave.ReadOnlyKVStore, callID []byte) (bool, error) {
	queue := newQueueBucket()
	for id := callID; len(id) != 0; {
		switch err := queue.Has(db, id); {
		case err == nil:
			return true, nil
		case !errors.ErrNotFound.Is(err):
			return false, err
		}
		res, err := Result(db, id)
		switch {
		case err == nil:
			id = res.Next
		case errors.ErrNotFound.Is(err):
			return false, nil
		default:
			return false, err
		}
	}
	return false, nil
}
