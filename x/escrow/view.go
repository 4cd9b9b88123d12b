package escrow

import (
	"encoding/json"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// PendingEscrow is the public view of a buyer's escrow.
type PendingEscrow struct {
	ReceiverID  weave.Address  `json:"receiver_id"`
	Amount      uint64         `json:"amount"`
	TimeCreated weave.UnixTime `json:"time_created"`
}

// View returns the escrow of the buyer. Zero value is returned when the
// buyer has no escrow.
func View(db weave.ReadOnlyKVStore, buyer weave.Address) (*PendingEscrow, error) {
	return NewLedger().View(db, buyer)
}

// View returns the public view of the buyer's record, zero value when
// there is none.
func (l Ledger) View(db weave.ReadOnlyKVStore, buyer weave.Address) (*PendingEscrow, error) {
	e, err := l.Get(db, buyer)
	switch {
	case errors.ErrNotFound.Is(err):
		return &PendingEscrow{}, nil
	case err != nil:
		return nil, err
	}
	return &PendingEscrow{
		ReceiverID:  e.Seller,
		Amount:      e.LockedAmount,
		TimeCreated: e.CreatedAt,
	}, nil
}

// viewQuery returns the JSON encoded view of the escrow of the buyer whose
// address is given as the query data.
type viewQuery struct {
	ledger Ledger
}

var _ weave.QueryHandler = viewQuery{}

func (q viewQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	buyer := weave.Address(data)
	if err := buyer.Validate(); err != nil {
		return nil, errors.Wrap(err, "buyer")
	}
	view, err := q.ledger.View(db, buyer)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return []weave.Model{weave.Pair(buyer, raw)}, nil
}
