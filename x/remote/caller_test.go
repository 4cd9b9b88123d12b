package remote

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/weavetest/assert"
	"github.com/iov-one/weave-escrow/x/cash"
)

func TestCallerCharges(t *testing.T) {
	collector := weavetest.RandomAddr(t)
	target := weavetest.RandomAddr(t)
	msg := &weavetest.Msg{RoutePath: "test/first", Serialized: []byte("first")}
	then := &weavetest.Msg{RoutePath: "test/then", Serialized: []byte("then")}

	cases := map[string]struct {
		fee        uint64
		fund       uint64
		withThen   bool
		wantErr    *errors.Error
		wantCaller uint64
		wantFees   uint64
	}{
		"free call": {
			fee:  0,
			fund: 0,
		},
		"single call": {
			fee:        3,
			fund:       10,
			wantCaller: 7,
			wantFees:   3,
		},
		"call with continuation pays twice": {
			fee:        3,
			fund:       10,
			withThen:   true,
			wantCaller: 4,
			wantFees:   6,
		},
		"not enough funds": {
			fee:        3,
			fund:       5,
			withThen:   true,
			wantErr:    errors.ErrInsufficientAmount,
			wantCaller: 5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController()
			caller := weavetest.NewCondition()
			if tc.fund > 0 {
				assert.Nil(t, ctrl.IssueCoins(db, caller.Address(), tc.fund))
			}
			assert.Nil(t, SaveConfig(db, &Configuration{CallFee: tc.fee, Collector: collector}))

			c := NewCaller(ctrl)
			var (
				id  []byte
				err error
			)
			if tc.withThen {
				id, err = c.CallThen(db, caller, target, msg, then)
			} else {
				id, err = c.Call(db, caller, target, msg)
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			balance, err := ctrl.Balance(db, caller.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantCaller, balance)
			fees, err := ctrl.Balance(db, collector)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantFees, fees)

			if tc.wantErr != nil {
				return
			}
			var call Call
			assert.Nil(t, newQueueBucket().One(db, id, &call))
			assert.Equal(t, "test/first", call.Path)
			assert.Equal(t, []byte("first"), call.Msg)
			assert.Equal(t, true, call.Caller.Equals(caller))
			assert.Equal(t, true, call.Target.Equals(target))
			if tc.withThen {
				assert.Equal(t, "test/then", call.Then.Path)
			} else if call.Then != nil {
				t.Fatalf("unexpected continuation: %v", call.Then)
			}

			inFlight, err := InFlight(db, id)
			assert.Nil(t, err)
			assert.Equal(t, true, inFlight)
		})
	}
}

func TestCallerRejectsInvalidMessage(t *testing.T) {
	db := store.MemStore()
	c := NewCaller(cash.NewController())
	caller := weavetest.NewCondition()
	target := weavetest.RandomAddr(t)

	_, err := c.Call(db, caller, target, &weavetest.Msg{RoutePath: "test/x", Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)

	_, err = c.Call(db, caller, target, nil)
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = c.Call(db, caller, nil, &weavetest.Msg{RoutePath: "test/x"})
	assert.IsErr(t, errors.ErrInput, err)

	ok := &weavetest.Msg{RoutePath: "test/x"}
	_, err = c.CallThen(db, caller, target, ok, &weavetest.Msg{RoutePath: ""})
	assert.IsErr(t, errors.ErrEmpty, err)

	// Nothing may be queued after a rejected call.
	var call Call
	_, err = firstQueued(t, db, &call)
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestInitializer(t *testing.T) {
	collector := weavetest.RandomAddr(t)
	db := store.MemStore()

	genesis := `{"remote": {"call_fee": 5, "collector": "` + collector.String() + `", "max_calls_per_block": 7}}`
	var opts weave.Options
	assert.Nil(t, jsonUnmarshal(genesis, &opts))
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	conf, err := LoadConfig(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), conf.CallFee)
	assert.Equal(t, true, conf.Collector.Equals(collector))
	assert.Equal(t, 7, conf.maxCalls())

	invalid := `{"remote": {"call_fee": 5}}`
	assert.Nil(t, jsonUnmarshal(invalid, &opts))
	err = Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrInput, err)
}

func firstQueued(t testing.TB, db weave.ReadOnlyKVStore, dest *Call) ([]byte, error) {
	t.Helper()
	it, err := newQueueBucket().IterAll(db)
	assert.Nil(t, err)
	defer it.Release()
	return it.Next(dest)
}

func jsonUnmarshal(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(raw), dest)
}
