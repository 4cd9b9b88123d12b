package remote

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// Call is a message queued for execution on behalf of the caller.
type Call struct {
	Caller   weave.Condition `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	Target   weave.Address   `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Path     string          `protobuf:"bytes,3,opt,name=path,proto3" json:"path,omitempty"`
	Msg      []byte          `protobuf:"bytes,4,opt,name=msg,proto3" json:"msg,omitempty"`
	Then     *Continuation   `protobuf:"bytes,5,opt,name=then,proto3" json:"then,omitempty"`
	Upstream *CallResult     `protobuf:"bytes,6,opt,name=upstream,proto3" json:"upstream,omitempty"`
}

func (m *Call) Marshal() ([]byte, error) { return proto.Marshal((*callPB)(m)) }

func (m *Call) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*callPB)(m)) }

type callPB Call

func (m *callPB) Reset()         { *m = callPB{} }
func (m *callPB) String() string { return proto.CompactTextString(m) }
func (*callPB) ProtoMessage()    {}

// Continuation is a message delivered to the caller after a call is done.
type Continuation struct {
	Path string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Msg  []byte `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Continuation) Marshal() ([]byte, error) { return proto.Marshal((*continuationPB)(m)) }

func (m *Continuation) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*continuationPB)(m))
}

type continuationPB Continuation

func (m *continuationPB) Reset()         { *m = continuationPB{} }
func (m *continuationPB) String() string { return proto.CompactTextString(m) }
func (*continuationPB) ProtoMessage()    {}

// CallResult is the outcome of an executed call.
type CallResult struct {
	Successful bool           `protobuf:"varint,1,opt,name=successful,proto3" json:"successful,omitempty"`
	Info       string         `protobuf:"bytes,2,opt,name=info,proto3" json:"info,omitempty"`
	Data       []byte         `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
	ExecTime   weave.UnixTime `protobuf:"varint,4,opt,name=exec_time,json=execTime,proto3" json:"exec_time,omitempty"`
	Next       []byte         `protobuf:"bytes,5,opt,name=next,proto3" json:"next,omitempty"`
}

func (m *CallResult) Marshal() ([]byte, error) { return proto.Marshal((*callResultPB)(m)) }

func (m *CallResult) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*callResultPB)(m))
}

type callResultPB CallResult

func (m *callResultPB) Reset()         { *m = callResultPB{} }
func (m *callResultPB) String() string { return proto.CompactTextString(m) }
func (*callResultPB) ProtoMessage()    {}

// Configuration is the remote call fee setup.
type Configuration struct {
	CallFee          uint64        `protobuf:"varint,1,opt,name=call_fee,json=callFee,proto3" json:"call_fee,omitempty"`
	Collector        weave.Address `protobuf:"bytes,2,opt,name=collector,proto3" json:"collector,omitempty"`
	MaxCallsPerBlock int32         `protobuf:"varint,3,opt,name=max_calls_per_block,json=maxCallsPerBlock,proto3" json:"max_calls_per_block,omitempty"`
}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationPB)(m)) }

func (m *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(m))
}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}
