package escrow

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// Escrow is the ledger record of a confirmed purchase, keyed by the buyer.
type Escrow struct {
	Seller        weave.Address  `protobuf:"bytes,1,opt,name=seller,proto3" json:"seller,omitempty"`
	LockedAmount  uint64         `protobuf:"varint,2,opt,name=locked_amount,json=lockedAmount,proto3" json:"locked_amount,omitempty"`
	AssetContract weave.Address  `protobuf:"bytes,3,opt,name=asset_contract,json=assetContract,proto3" json:"asset_contract,omitempty"`
	Quantity      uint64         `protobuf:"varint,4,opt,name=quantity,proto3" json:"quantity,omitempty"`
	CreatedAt     weave.UnixTime `protobuf:"varint,5,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

func (m *Escrow) Marshal() ([]byte, error) { return proto.Marshal((*escrowPB)(m)) }

func (m *Escrow) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*escrowPB)(m)) }

type escrowPB Escrow

func (m *escrowPB) Reset()         { *m = escrowPB{} }
func (m *escrowPB) String() string { return proto.CompactTextString(m) }
func (*escrowPB) ProtoMessage()    {}

// PendingPurchase is stored by the buyer between initiating a purchase and
// its confirmation.
type PendingPurchase struct {
	Seller        weave.Address  `protobuf:"bytes,1,opt,name=seller,proto3" json:"seller,omitempty"`
	AssetContract weave.Address  `protobuf:"bytes,2,opt,name=asset_contract,json=assetContract,proto3" json:"asset_contract,omitempty"`
	LockedAmount  uint64         `protobuf:"varint,3,opt,name=locked_amount,json=lockedAmount,proto3" json:"locked_amount,omitempty"`
	CreatedAt     weave.UnixTime `protobuf:"varint,4,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
	CallID        []byte         `protobuf:"bytes,5,opt,name=call_id,json=callId,proto3" json:"call_id,omitempty"`
}

func (m *PendingPurchase) Marshal() ([]byte, error) { return proto.Marshal((*pendingPurchasePB)(m)) }

func (m *PendingPurchase) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*pendingPurchasePB)(m))
}

type pendingPurchasePB PendingPurchase

func (m *pendingPurchasePB) Reset()         { *m = pendingPurchasePB{} }
func (m *pendingPurchasePB) String() string { return proto.CompactTextString(m) }
func (*pendingPurchasePB) ProtoMessage()    {}

// Configuration is set at genesis.
type Configuration struct {
	Operator weave.Address      `protobuf:"bytes,1,opt,name=operator,proto3" json:"operator,omitempty"`
	Timeout  weave.UnixDuration `protobuf:"varint,2,opt,name=timeout,proto3" json:"timeout,omitempty"`
}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationPB)(m)) }

func (m *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(m))
}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

// Reserve tracks the native currency the contract owes to buyers and
// sellers.
type Reserve struct {
	Locked uint64 `protobuf:"varint,1,opt,name=locked,proto3" json:"locked,omitempty"`
}

func (m *Reserve) Marshal() ([]byte, error) { return proto.Marshal((*reservePB)(m)) }

func (m *Reserve) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*reservePB)(m)) }

type reservePB Reserve

func (m *reservePB) Reset()         { *m = reservePB{} }
func (m *reservePB) String() string { return proto.CompactTextString(m) }
func (*reservePB) ProtoMessage()    {}

// InitiateMsg starts a purchase. Amount is the attached payment, including
// the remote call fees.
type InitiateMsg struct {
	Seller        weave.Address `protobuf:"bytes,1,opt,name=seller,proto3" json:"seller,omitempty"`
	AssetContract weave.Address `protobuf:"bytes,2,opt,name=asset_contract,json=assetContract,proto3" json:"asset_contract,omitempty"`
	Amount        uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *InitiateMsg) Marshal() ([]byte, error) { return proto.Marshal((*initiateMsgPB)(m)) }

func (m *InitiateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*initiateMsgPB)(m)) }

type initiateMsgPB InitiateMsg

func (m *initiateMsgPB) Reset()         { *m = initiateMsgPB{} }
func (m *initiateMsgPB) String() string { return proto.CompactTextString(m) }
func (*initiateMsgPB) ProtoMessage()    {}

// ConfirmMsg is the continuation of a purchase, executed by the contract
// itself.
type ConfirmMsg struct {
	Buyer weave.Address `protobuf:"bytes,1,opt,name=buyer,proto3" json:"buyer,omitempty"`
}

func (m *ConfirmMsg) Marshal() ([]byte, error) { return proto.Marshal((*confirmMsgPB)(m)) }

func (m *ConfirmMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*confirmMsgPB)(m)) }

type confirmMsgPB ConfirmMsg

func (m *confirmMsgPB) Reset()         { *m = confirmMsgPB{} }
func (m *confirmMsgPB) String() string { return proto.CompactTextString(m) }
func (*confirmMsgPB) ProtoMessage()    {}

// ApproveMsg pays the seller of the signer's escrow.
type ApproveMsg struct{}

func (m *ApproveMsg) Marshal() ([]byte, error) { return proto.Marshal((*approveMsgPB)(m)) }

func (m *ApproveMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*approveMsgPB)(m)) }

type approveMsgPB ApproveMsg

func (m *approveMsgPB) Reset()         { *m = approveMsgPB{} }
func (m *approveMsgPB) String() string { return proto.CompactTextString(m) }
func (*approveMsgPB) ProtoMessage()    {}

// CancelMsg refunds the signer's escrow and returns the asset.
type CancelMsg struct{}

func (m *CancelMsg) Marshal() ([]byte, error) { return proto.Marshal((*cancelMsgPB)(m)) }

func (m *CancelMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*cancelMsgPB)(m)) }

type cancelMsgPB CancelMsg

func (m *cancelMsgPB) Reset()         { *m = cancelMsgPB{} }
func (m *cancelMsgPB) String() string { return proto.CompactTextString(m) }
func (*cancelMsgPB) ProtoMessage()    {}

// TimeoutScanMsg pays out all escrows older than the timeout.
type TimeoutScanMsg struct{}

func (m *TimeoutScanMsg) Marshal() ([]byte, error) { return proto.Marshal((*timeoutScanMsgPB)(m)) }

func (m *TimeoutScanMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*timeoutScanMsgPB)(m))
}

type timeoutScanMsgPB TimeoutScanMsg

func (m *timeoutScanMsgPB) Reset()         { *m = timeoutScanMsgPB{} }
func (m *timeoutScanMsgPB) String() string { return proto.CompactTextString(m) }
func (*timeoutScanMsgPB) ProtoMessage()    {}
