package remote

import (
	"fmt"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/orm"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeAborted = "aborted"
)

// Router returns the handler for a message path. It is implemented by
// app.Router.
type Router interface {
	Handler(path string) (weave.Handler, error)
}

// Dispatcher executes queued remote calls. It implements weave.Ticker and
// must be run at the end of every block.
type Dispatcher struct {
	router  Router
	queue   orm.ModelBucket
	results orm.ModelBucket
	metrics *dispatchMetrics
}

var _ weave.Ticker = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher that routes calls using given router.
func NewDispatcher(r Router) *Dispatcher {
	return &Dispatcher{
		router:  r,
		queue:   newQueueBucket(),
		results: newResultBucket(),
		metrics: defaultMetrics(),
	}
}

// Tick executes queued calls in order, including calls queued while
// processing, until the queue is empty or the per block limit is reached.
// Remaining calls are processed in the next block.
//
// Returned error means the database is in a hopeless state, a failing call
// is never an error.
func (d *Dispatcher) Tick(ctx weave.Context, db weave.CacheableKVStore) (*weave.TickResult, error) {
	now, err := weave.UnixBlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get current time")
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	log := weave.GetLogger(ctx).With("module", "remote")

	var res weave.TickResult
	for n := 0; ; n++ {
		id, call, err := d.peek(db)
		if errors.ErrEmpty.Is(err) {
			d.metrics.queued.Set(0)
			return &res, nil
		}
		if err != nil {
			return nil, err
		}
		if n >= conf.maxCalls() {
			d.metrics.queued.Set(float64(d.countQueued(db)))
			log.Info("call limit reached, postponing", "limit", conf.maxCalls())
			return &res, nil
		}

		tags, err := d.process(ctx, db, now, id, call)
		if err != nil {
			return nil, errors.Wrapf(err, "call %X", id)
		}
		res.Tags = append(res.Tags, tags...)
	}
}

// process executes a single call and records its result. The queue entry
// removal, the result and the continuation are always written together.
func (d *Dispatcher) process(ctx weave.Context, db weave.CacheableKVStore, now weave.UnixTime, id []byte, call *Call) ([]common.KVPair, error) {
	log := weave.GetLogger(ctx).With("module", "remote", "call", fmt.Sprintf("%X", id), "path", call.Path)

	result := CallResult{ExecTime: now}
	var tags []common.KVPair

	cache := db.CacheWrap()
	out, err := d.deliver(ctx, cache, call)
	outcome := outcomeSuccess
	if reason, ok := abortReason(err); ok {
		// Changes of an aborted call are kept.
		outcome = outcomeAborted
		result.Info = reason.Error()
		log.Info("call aborted", "reason", reason)
	} else if err != nil {
		outcome = outcomeFailure
		result.Info = err.Error()
		log.Error("call failed", "err", err)
		// Start with a clean state, discarded cache must not be reused.
		cache.Discard()
		cache = db.CacheWrap()
	} else {
		result.Successful = true
		result.Data = out.Data
		result.Info = out.Log
		tags = append(tags, out.Tags...)
	}

	if err := d.queue.Delete(cache, id); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "cannot remove from queue")
	}

	if call.Then != nil {
		upstream := result
		next, err := enqueue(cache, &Call{
			Caller:   call.Caller,
			Target:   call.Caller.Address(),
			Path:     call.Then.Path,
			Msg:      call.Then.Msg,
			Upstream: &upstream,
		})
		if err != nil {
			cache.Discard()
			return nil, errors.Wrap(err, "cannot queue continuation")
		}
		result.Next = next
	}

	if err := d.results.Put(cache, id, &result); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "cannot store result")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write cache")
	}

	d.metrics.calls.WithLabelValues(outcome).Inc()
	tags = append(tags, common.KVPair{Key: []byte("remote"), Value: id})
	return tags, nil
}

// deliver runs the handler registered for the call path. Panics are turned
// into errors, so that a broken handler fails only its own call.
func (d *Dispatcher) deliver(ctx weave.Context, db weave.KVStore, call *Call) (res *weave.DeliverResult, err error) {
	defer errors.Recover(&err)

	h, err := d.router.Handler(call.Path)
	if err != nil {
		return nil, err
	}
	callCtx := withAuth(ctx, call.Caller)
	callCtx = withTarget(callCtx, call.Target)
	if call.Upstream != nil {
		callCtx = withUpstream(callCtx, call.Upstream)
	}
	res, err = h.Deliver(callCtx, db, &callTx{call: call})
	if err == nil && res == nil {
		res = &weave.DeliverResult{}
	}
	return res, err
}

// peek returns the oldest queued call. It returns ErrEmpty if the queue
// is empty.
func (d *Dispatcher) peek(db weave.ReadOnlyKVStore) ([]byte, *Call, error) {
	it, err := d.queue.IterAll(db)
	if err != nil {
		return nil, nil, err
	}
	defer it.Release()

	var call Call
	switch id, err := it.Next(&call); {
	case err == nil:
		return id, &call, nil
	case errors.ErrIteratorDone.Is(err):
		return nil, nil, errors.ErrEmpty
	default:
		return nil, nil, errors.Wrap(err, "cannot read queue")
	}
}

func (d *Dispatcher) countQueued(db weave.ReadOnlyKVStore) int {
	it, err := d.queue.IterAll(db)
	if err != nil {
		return 0
	}
	defer it.Release()
	n := 0
	for {
		var call Call
		if _, err := it.Next(&call); err != nil {
			return n
		}
		n++
	}
}

// callTx is a weave.Tx implementation created for running
// remote calls. It is a thin wrapper over the call.
type callTx struct {
	call *Call
}

var _ weave.Tx = (*callTx)(nil)

func (tx *callTx) MsgPath() string {
	return tx.call.Path
}

func (tx *callTx) MsgBytes() []byte {
	return tx.call.Msg
}

// Unmarshal implements weave.Tx interface.
func (tx *callTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "operation not supported, remote call transaction is not serializable")
}

// Marshal implements weave.Tx interface.
func (tx *callTx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "operation not supported, remote call transaction is not serializable")
}
