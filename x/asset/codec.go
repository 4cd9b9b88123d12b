package asset

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/weave-escrow"
)

// Service is the configuration of a single asset service.
type Service struct {
	Name      string        `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	UnitPrice uint64        `protobuf:"varint,2,opt,name=unit_price,json=unitPrice,proto3" json:"unit_price,omitempty"`
	Escrow    weave.Address `protobuf:"bytes,3,opt,name=escrow,proto3" json:"escrow,omitempty"`
}

func (m *Service) Marshal() ([]byte, error) { return proto.Marshal((*servicePB)(m)) }

func (m *Service) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*servicePB)(m)) }

type servicePB Service

func (m *servicePB) Reset()         { *m = servicePB{} }
func (m *servicePB) String() string { return proto.CompactTextString(m) }
func (*servicePB) ProtoMessage()    {}

// Holding is the number of units an account has within a service.
type Holding struct {
	Quantity uint64 `protobuf:"varint,1,opt,name=quantity,proto3" json:"quantity,omitempty"`
	Reserved uint64 `protobuf:"varint,2,opt,name=reserved,proto3" json:"reserved,omitempty"`
}

func (m *Holding) Marshal() ([]byte, error) { return proto.Marshal((*holdingPB)(m)) }

func (m *Holding) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*holdingPB)(m)) }

type holdingPB Holding

func (m *holdingPB) Reset()         { *m = holdingPB{} }
func (m *holdingPB) String() string { return proto.CompactTextString(m) }
func (*holdingPB) ProtoMessage()    {}

// EscrowPurchaseMsg reserves as many units of the seller as the amount pays
// for.
type EscrowPurchaseMsg struct {
	Seller weave.Address `protobuf:"bytes,1,opt,name=seller,proto3" json:"seller,omitempty"`
	Buyer  weave.Address `protobuf:"bytes,2,opt,name=buyer,proto3" json:"buyer,omitempty"`
	Amount uint64        `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *EscrowPurchaseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*escrowPurchaseMsgPB)(m))
}

func (m *EscrowPurchaseMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*escrowPurchaseMsgPB)(m))
}

type escrowPurchaseMsgPB EscrowPurchaseMsg

func (m *escrowPurchaseMsgPB) Reset()         { *m = escrowPurchaseMsgPB{} }
func (m *escrowPurchaseMsgPB) String() string { return proto.CompactTextString(m) }
func (*escrowPurchaseMsgPB) ProtoMessage()    {}

// TransferMsg moves units between two holdings of the same service.
type TransferMsg struct {
	Quantity uint64        `protobuf:"varint,1,opt,name=quantity,proto3" json:"quantity,omitempty"`
	From     weave.Address `protobuf:"bytes,2,opt,name=from,proto3" json:"from,omitempty"`
	To       weave.Address `protobuf:"bytes,3,opt,name=to,proto3" json:"to,omitempty"`
	Reserved bool          `protobuf:"varint,4,opt,name=reserved,proto3" json:"reserved,omitempty"`
}

func (m *TransferMsg) Marshal() ([]byte, error) { return proto.Marshal((*transferMsgPB)(m)) }

func (m *TransferMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*transferMsgPB)(m)) }

type transferMsgPB TransferMsg

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}

// ReleaseMsg returns reserved units of the seller to its available
// quantity.
type ReleaseMsg struct {
	Seller   weave.Address `protobuf:"bytes,1,opt,name=seller,proto3" json:"seller,omitempty"`
	Quantity uint64        `protobuf:"varint,2,opt,name=quantity,proto3" json:"quantity,omitempty"`
}

func (m *ReleaseMsg) Marshal() ([]byte, error) { return proto.Marshal((*releaseMsgPB)(m)) }

func (m *ReleaseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*releaseMsgPB)(m)) }

type releaseMsgPB ReleaseMsg

func (m *releaseMsgPB) Reset()         { *m = releaseMsgPB{} }
func (m *releaseMsgPB) String() string { return proto.CompactTextString(m) }
func (*releaseMsgPB) ProtoMessage()    {}

// PurchaseReceipt is returned by a successful EscrowPurchaseMsg.
type PurchaseReceipt struct {
	Service  weave.Address `protobuf:"bytes,1,opt,name=service,proto3" json:"service,omitempty"`
	Seller   weave.Address `protobuf:"bytes,2,opt,name=seller,proto3" json:"seller,omitempty"`
	Buyer    weave.Address `protobuf:"bytes,3,opt,name=buyer,proto3" json:"buyer,omitempty"`
	Quantity uint64        `protobuf:"varint,4,opt,name=quantity,proto3" json:"quantity,omitempty"`
	Amount   uint64        `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *PurchaseReceipt) Marshal() ([]byte, error) { return proto.Marshal((*purchaseReceiptPB)(m)) }

func (m *PurchaseReceipt) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*purchaseReceiptPB)(m))
}

type purchaseReceiptPB PurchaseReceipt

func (m *purchaseReceiptPB) Reset()         { *m = purchaseReceiptPB{} }
func (m *purchaseReceiptPB) String() string { return proto.CompactTextString(m) }
func (*purchaseReceiptPB) ProtoMessage()    {}
