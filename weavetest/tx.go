package weavetest

import (
	weave "github.com/iov-one/weave-escrow"
)

// Tx represents a weave transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg weave.Msg
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) MsgPath() string {
	if tx.Msg == nil {
		return ""
	}
	return tx.Msg.Path()
}

func (tx *Tx) MsgBytes() []byte {
	if tx.Msg == nil {
		return nil
	}
	raw, err := tx.Msg.Marshal()
	if err != nil {
		panic(err)
	}
	return raw
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a weave message.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
