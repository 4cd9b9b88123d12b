package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/sigs"
)

var (
	_ weave.Tx      = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// NewTx wraps given message into a transaction without signatures.
func NewTx(msg weave.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Tx{Path: msg.Path(), Msg: raw}, nil
}

// MsgPath returns the path of the carried message.
func (tx *Tx) MsgPath() string {
	return tx.Path
}

// MsgBytes returns the serialized message.
func (tx *Tx) MsgBytes() []byte {
	return tx.Msg
}

// GetSignatures returns the signatures on the tx
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign, which is the whole
// transaction with the signatures removed.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Path: tx.Path, Msg: tx.Msg}
	return unsigned.Marshal()
}

// DecodeTx is the weave.TxDecoder of the escrow chain.
func DecodeTx(raw []byte) (weave.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if tx.Path == "" {
		return nil, errors.Wrap(errors.ErrInput, "missing message path")
	}
	return &tx, nil
}
