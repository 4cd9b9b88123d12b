package remote

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/cash"
)

// Caller schedules remote calls and charges their fees.
type Caller struct {
	payments cash.Controller
}

// NewCaller returns a caller that charges fees using given controller.
func NewCaller(payments cash.Controller) *Caller {
	return &Caller{payments: payments}
}

// Fee returns the fee charged for every scheduled call.
func (c *Caller) Fee(db weave.ReadOnlyKVStore) (uint64, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return 0, err
	}
	return conf.CallFee, nil
}

// Call schedules msg to be delivered to the target service on behalf of
// caller. It returns the id of the scheduled call. The call is executed by
// the dispatcher at the end of the block, never within the current
// transaction.
func (c *Caller) Call(db weave.KVStore, caller weave.Condition, target weave.Address, msg weave.Msg) ([]byte, error) {
	return c.schedule(db, caller, target, msg, nil)
}

// CallThen schedules msg like Call does. Once the call is executed, then is
// delivered to the caller itself with the result of the first call available
// through UpstreamResult. Both calls are paid upfront.
func (c *Caller) CallThen(db weave.KVStore, caller weave.Condition, target weave.Address, msg, then weave.Msg) ([]byte, error) {
	if then == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "continuation")
	}
	if err := then.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid continuation")
	}
	raw, err := then.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return c.schedule(db, caller, target, msg, &Continuation{Path: then.Path(), Msg: raw})
}

func (c *Caller) schedule(db weave.KVStore, caller weave.Condition, target weave.Address, msg weave.Msg, then *Continuation) ([]byte, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	call := Call{
		Caller: caller,
		Target: target,
		Path:   msg.Path(),
		Msg:    raw,
		Then:   then,
	}
	if err := call.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid call")
	}

	calls := uint64(1)
	if then != nil {
		calls = 2
	}
	if err := c.charge(db, caller.Address(), calls); err != nil {
		return nil, err
	}
	return enqueue(db, &call)
}

func (c *Caller) charge(db weave.KVStore, payer weave.Address, calls uint64) error {
	conf, err := LoadConfig(db)
	if err != nil {
		return err
	}
	if conf.CallFee == 0 {
		return nil
	}
	total := conf.CallFee * calls
	if total/calls != conf.CallFee {
		return errors.Wrap(errors.ErrOverflow, "call fee")
	}
	if err := c.payments.MoveCoins(db, payer, conf.Collector, total); err != nil {
		return errors.Wrap(err, "cannot pay call fee")
	}
	return nil
}

func enqueue(db weave.KVStore, call *Call) ([]byte, error) {
	seq := newCallSequence()
	id, err := seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire call id")
	}
	if err := newQueueBucket().Put(db, id, call); err != nil {
		return nil, errors.Wrap(err, "cannot queue call")
	}
	return id, nil
}
