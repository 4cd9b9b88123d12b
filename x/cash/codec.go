package cash

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// Wallet holds the native currency balance of a single address.
type Wallet struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Wallet) Marshal() ([]byte, error) { return proto.Marshal((*walletPB)(m)) }

func (m *Wallet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*walletPB)(m)) }

type walletPB Wallet

func (m *walletPB) Reset()         { *m = walletPB{} }
func (m *walletPB) String() string { return proto.CompactTextString(m) }
func (*walletPB) ProtoMessage()    {}

// SendMsg transfers native currency from the signer to another account.
type SendMsg struct {
	Source      weave.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination weave.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string        `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Marshal() ([]byte, error) { return proto.Marshal((*sendMsgPB)(m)) }

func (m *SendMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*sendMsgPB)(m)) }

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}
