package gatt

import (
	"github.com/mdzio/go-bgapi/bgapi"
)

// message classes
const (
	classConnection = 3
	classAttClient  = 4
	classGAP        = 6
)

// GAP discover modes
const (
	DiscoverLimited     = 0
	DiscoverGeneric     = 1
	DiscoverObservation = 2
)

// device address types
const (
	AddressTypePublic = 0
	AddressTypeRandom = 1
)

// connection status flags
const (
	FlagConnected         = 0x01
	FlagEncrypted         = 0x02
	FlagCompleted         = 0x04
	FlagParametersChanged = 0x08
)

// DiscoverCommand starts a GAP discovery procedure.
type DiscoverCommand struct {
	Mode uint8
}

func (DiscoverCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 2}
}

type DiscoverResponse struct {
	Result uint16
}

func (DiscoverResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 2}
}

// ScanResponseEvent reports one received advertisement. The frame tail
// carries the advertisement data.
type ScanResponseEvent struct {
	RSSI        int8
	PacketType  uint8
	Sender      Address
	AddressType uint8
	Bond        uint8
	DataLen     uint8
}

func (ScanResponseEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 0, Partial: true}
}

// EndProcedureCommand stops the running GAP procedure.
type EndProcedureCommand struct{}

func (EndProcedureCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 4}
}

type EndProcedureResponse struct {
	Result uint16
}

func (EndProcedureResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 4}
}

// ConnectDirectCommand initiates a connection to a single device. The
// interval fields are in units of 1.25 ms, the timeout in units of 10 ms.
type ConnectDirectCommand struct {
	Address         Address
	AddressType     uint8
	ConnIntervalMin uint16
	ConnIntervalMax uint16
	Timeout         uint16
	Latency         uint16
}

func (ConnectDirectCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 3}
}

type ConnectDirectResponse struct {
	Result     uint16
	Connection uint8
}

func (ConnectDirectResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classGAP, CommandID: 3}
}

// StatusEvent reports the state of a connection.
type StatusEvent struct {
	Connection   uint8
	Flags        uint8
	Address      Address
	AddressType  uint8
	ConnInterval uint16
	Timeout      uint16
	Latency      uint16
	Bonding      uint8
}

func (StatusEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classConnection, CommandID: 0}
}

// DisconnectCommand closes a connection.
type DisconnectCommand struct {
	Connection uint8
}

func (DisconnectCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classConnection, CommandID: 0}
}

type DisconnectResponse struct {
	Connection uint8
	Result     uint16
}

func (DisconnectResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classConnection, CommandID: 0}
}

// DisconnectedEvent reports a closed connection.
type DisconnectedEvent struct {
	Connection uint8
	Reason     uint16
}

func (DisconnectedEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classConnection, CommandID: 4}
}

// FindInformationCommand starts the discovery of the attributes in the
// given handle range.
type FindInformationCommand struct {
	Connection uint8
	Start      uint16
	End        uint16
}

func (FindInformationCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 3}
}

type FindInformationResponse struct {
	Connection uint8
	Result     uint16
}

func (FindInformationResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 3}
}

// FindInformationFoundEvent reports one discovered attribute. The frame
// tail carries the attribute UUID in wire order.
type FindInformationFoundEvent struct {
	Connection uint8
	Handle     uint16
	UUIDLen    uint8
}

func (FindInformationFoundEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 4, Partial: true}
}

// ReadByHandleCommand reads the value of a single attribute.
type ReadByHandleCommand struct {
	Connection uint8
	Handle     uint16
}

func (ReadByHandleCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 4}
}

type ReadByHandleResponse struct {
	Connection uint8
	Result     uint16
}

func (ReadByHandleResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 4}
}

// AttributeWriteCommand writes an attribute value with acknowledgement.
// The frame tail carries the value.
type AttributeWriteCommand struct {
	Connection uint8
	Handle     uint16
	DataLen    uint8
}

func (AttributeWriteCommand) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 5, Partial: true}
}

type AttributeWriteResponse struct {
	Connection uint8
	Result     uint16
}

func (AttributeWriteResponse) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 5}
}

// ProcedureCompletedEvent ends an attribute protocol procedure. A result
// other than zero reports the failure reason.
type ProcedureCompletedEvent struct {
	Connection uint8
	Result     uint16
	Handle     uint16
}

func (ProcedureCompletedEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 1}
}

// AttributeValueEvent carries an attribute value, either read explicitly
// or pushed by the peripheral as notification or indication. The frame
// tail carries the value.
type AttributeValueEvent struct {
	Connection uint8
	Handle     uint16
	Type       uint8
	ValueLen   uint8
}

func (AttributeValueEvent) MessageType() bgapi.Type {
	return bgapi.Type{ClassID: classAttClient, CommandID: 5, Partial: true}
}
