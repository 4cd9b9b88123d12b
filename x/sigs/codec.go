package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/crypto"
)

// UserData is the state kept for every account that ever signed a
// transaction.
type UserData struct {
	Pubkey   crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64            `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Marshal() ([]byte, error) { return proto.Marshal((*userDataPB)(m)) }

func (m *UserData) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*userDataPB)(m)) }

type userDataPB UserData

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

// StdSignature represents one signature of a transaction.
type StdSignature struct {
	Pubkey    crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte           `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Sequence  int64            `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*stdSignaturePB)(m)) }

func (m *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignaturePB)(m))
}

type stdSignaturePB StdSignature

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}
