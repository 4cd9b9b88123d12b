package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/errors"
)

// Counter could be used for sequence, but mainly just for test
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

var _ Model = (*Counter)(nil)

// Validate returns an error for negative counters.
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *Counter) Marshal() ([]byte, error) { return proto.Marshal((*counterPB)(c)) }

func (c *Counter) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*counterPB)(c)) }

type counterPB Counter

func (m *counterPB) Reset()         { *m = counterPB{} }
func (m *counterPB) String() string { return proto.CompactTextString(m) }
func (*counterPB) ProtoMessage()    {}
