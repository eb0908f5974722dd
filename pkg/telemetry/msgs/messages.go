// Package msgs defines the telemetry wire messages. Messages are
// hand-written protobuf types wrapped in a Typed envelope carrying a
// type ID, so subscribers can decode without out-of-band context.
package msgs

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
)

// Message kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// GroupExperiment is the type ID group of the flash experiment.
const GroupExperiment uint32 = 0x00010000

// TypeIDs
const (
	ProgressEventTypeID uint32 = TypeIDKindEvent | GroupExperiment | 0x0000
)

// SerializableMessage can be wrapped in a Typed envelope.
type SerializableMessage interface {
	proto.Message
	TypeID() uint32
	New() SerializableMessage
}

// MessageTypes maps type IDs to message prototypes.
var MessageTypes = map[uint32]SerializableMessage{
	ProgressEventTypeID: (*Progress)(nil),
}

// ErrUnknownType indicates an unregistered type ID.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

// Typed wraps an encoded message with its type ID.
type Typed struct {
	TypeId  uint32 `protobuf:"varint,1,opt,name=type_id,proto3" json:"type_id,omitempty"`
	Message []byte `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (p *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (p *Typed) Reset() { *p = Typed{} }

// String implements proto.Message.
func (p *Typed) String() string { return proto.CompactTextString(p) }

// TypedFrom wraps a message into a Typed envelope.
func TypedFrom(msg SerializableMessage) (*Typed, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: msg.TypeID(), Message: data}, nil
}

// Encode encodes the envelope to bytes.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Decode decodes the wrapped message.
func (p *Typed) Decode() (SerializableMessage, error) {
	prototype, ok := MessageTypes[p.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: p.TypeId}
	}
	msg := prototype.New()
	if err := proto.Unmarshal(p.Message, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DecodeTyped decodes bytes into a Typed envelope.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}

// IsEvent determines if the wrapped message is an event.
func (p *Typed) IsEvent() bool {
	return p.TypeId&TypeIDMaskKind == TypeIDKindEvent
}

// Progress is the event published at the display refresh cadence,
// mirroring the two display lines.
type Progress struct {
	Pattern   string `protobuf:"bytes,1,opt,name=pattern,proto3" json:"pattern,omitempty"`
	Phase     string `protobuf:"bytes,2,opt,name=phase,proto3" json:"phase,omitempty"`
	StartAddr uint32 `protobuf:"varint,3,opt,name=start_addr,proto3" json:"start_addr,omitempty"`
	ErrCount  uint32 `protobuf:"varint,4,opt,name=err_count,proto3" json:"err_count,omitempty"`
	Passed    bool   `protobuf:"varint,5,opt,name=passed,proto3" json:"passed,omitempty"`
	Done      bool   `protobuf:"varint,6,opt,name=done,proto3" json:"done,omitempty"`
}

// TypeID implements SerializableMessage.
func (m *Progress) TypeID() uint32 { return ProgressEventTypeID }

// New implements SerializableMessage.
func (m *Progress) New() SerializableMessage { return &Progress{} }

// ProtoMessage implements proto.Message.
func (m *Progress) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Progress) Reset() { *m = Progress{} }

// String implements proto.Message.
func (m *Progress) String() string { return proto.CompactTextString(m) }
