// Package bgapi implements the framing and dispatch layer of the BGAPI
// binary protocol spoken by Bluegiga BLE modules, e.g. the BLED112 USB
// dongle. Commands, responses and events travel as frames: a 4 byte header
// followed by a payload of fixed-layout fields, optionally with a variable
// length data tail.
package bgapi

import (
	"errors"
	"fmt"
)

const (
	headerSize = 4

	// payload length field is 2 bytes wide
	maxPayloadSize = 0xFFFF
)

var (
	// ErrTypeMismatch signals that a received frame does not carry the
	// expected message class or command.
	ErrTypeMismatch = errors.New("Message class or command does not match the expected value")

	// ErrLengthMismatch signals that the payload length announced by a
	// received header does not fit the expected message.
	ErrLengthMismatch = errors.New("Payload size does not match the expected value")
)

// Type describes a BGAPI message type: the command class, the command or
// event id within the class, and whether the payload carries a variable
// length data tail after the fixed fields. A (class, command) pair names
// exactly one message type within one direction of the protocol.
type Type struct {
	ClassID   uint8
	CommandID uint8
	Partial   bool
}

func (t Type) String() string {
	return fmt.Sprintf("%d/%d", t.ClassID, t.CommandID)
}

// Message is implemented by all BGAPI payload structs. A message struct
// must contain only fields of fixed wire size (integers up to 32 bits and
// byte arrays) in protocol order. The variable length tail of a partial
// message is not part of the struct, it is passed separately.
type Message interface {
	MessageType() Type
}

// header precedes every frame on the wire: class id, command id and
// payload length, packed little endian.
type header struct {
	ClassID   uint8
	CommandID uint8
	Length    uint16
}

// validate checks a received header against the expectations of message
// type t with fixed payload size. The length of a partial message is data
// dependent, only the fixed prefix must fit.
func validate(h header, t Type, size int) error {
	if h.ClassID != t.ClassID || h.CommandID != t.CommandID {
		return fmt.Errorf("%w: expected message %s, received %d/%d", ErrTypeMismatch, t, h.ClassID, h.CommandID)
	}
	if !t.Partial && int(h.Length) != size {
		return fmt.Errorf("%w: message %s has %d payload bytes, header announces %d", ErrLengthMismatch, t, size, h.Length)
	}
	if t.Partial && int(h.Length) < size {
		return fmt.Errorf("%w: message %s needs at least %d payload bytes, header announces %d", ErrLengthMismatch, t, size, h.Length)
	}
	return nil
}

// headerFor builds the header for sending message m with extra bytes of
// appended tail data.
func headerFor(m Message, extra int) (header, error) {
	size, err := wireSize(m)
	if err != nil {
		return header{}, err
	}
	if size+extra > maxPayloadSize {
		return header{}, fmt.Errorf("Payload of message %s is too large: %d bytes", m.MessageType(), size+extra)
	}
	t := m.MessageType()
	return header{ClassID: t.ClassID, CommandID: t.CommandID, Length: uint16(size + extra)}, nil
}
