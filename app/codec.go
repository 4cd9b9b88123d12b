package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/weave-escrow/x/sigs"
)

// ResultSet contains a list of keys or values
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Marshal() ([]byte, error) { return proto.Marshal((*resultSetPB)(m)) }

func (m *ResultSet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*resultSetPB)(m)) }

type resultSetPB ResultSet

func (m *resultSetPB) Reset()         { *m = resultSetPB{} }
func (m *resultSetPB) String() string { return proto.CompactTextString(m) }
func (*resultSetPB) ProtoMessage()    {}

// Tx is the envelope of every message sent to the escrow chain.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path,omitempty"`
	Msg        []byte               `protobuf:"bytes,3,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txPB)(m)) }

func (m *Tx) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*txPB)(m)) }

type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}
